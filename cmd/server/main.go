package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/waitlist-site/backend/internal/common/bootstrap"
	srv "github.com/waitlist-site/backend/internal/common/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.NewApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	server := srv.NewServer(srv.DefaultServerConfig(app.Config.HTTPPort), app.Handler)

	if err := srv.Run(ctx, server, app.Log, "site", app.Hooks); err != nil {
		app.Log.Fatalf("%v", err)
	}
}
