package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/waitlist-site/backend/internal/tools/hashsecret"
)

func main() {
	cfg, err := hashsecret.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		exitf("parse flags: %v", err)
	}
	if err := hashsecret.Run(cfg, os.Stdin, os.Stdout); err != nil {
		exitf("hash secret: %v", err)
	}
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
