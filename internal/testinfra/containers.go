//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/waitlist-site/backend/internal/common/db"
	"github.com/waitlist-site/backend/internal/common/logger"
	"github.com/waitlist-site/backend/internal/common/mongostore"
)

const (
	postgresImage = "postgres:16-alpine"
	mongoImage    = "mongo:7"
	startTimeout  = 90 * time.Second
)

// SkipUnlessIntegration skips in short mode or when no Docker daemon answers.
func SkipUnlessIntegration(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("skipping integration test: docker not available")
	}
}

func start(t *testing.T, req testcontainers.ContainerRequest) (string, string) {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("start %s: %v", req.Image, err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate %s: %v", req.Image, err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, nat.Port(req.ExposedPorts[0]))
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return host, port.Port()
}

// StartPostgres returns a pool on a fresh database with the schema applied.
func StartPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	SkipUnlessIntegration(t)

	host, port := start(t, testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "site",
			"POSTGRES_PASSWORD": "site",
			"POSTGRES_DB":       "site",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithStartupTimeout(startTimeout),
	})

	ctx := context.Background()
	log, _ := logger.New("", "test", "error")
	url := fmt.Sprintf("postgres://site:site@%s:%s/site?sslmode=disable", host, port)

	pool, err := db.NewPool(ctx, log, url)
	if err != nil {
		t.Fatalf("connect postgres: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.EnsureSchema(ctx, pool); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return pool
}

type MongoServer struct {
	URI string
}

func StartMongo(t *testing.T) *MongoServer {
	t.Helper()
	SkipUnlessIntegration(t)

	host, port := start(t, testcontainers.ContainerRequest{
		Image:        mongoImage,
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Waiting for connections"),
			wait.ForListeningPort("27017/tcp"),
		).WithStartupTimeout(startTimeout),
	})
	return &MongoServer{URI: fmt.Sprintf("mongodb://%s:%s", host, port)}
}

// Database connects to a named database with indexes ensured. Each name is
// an independent, empty store.
func (s *MongoServer) Database(t *testing.T, name string) *mongo.Database {
	t.Helper()
	ctx := context.Background()
	log, _ := logger.New("", "test", "error")

	store, err := mongostore.Connect(ctx, log, s.URI, name)
	if err != nil {
		t.Fatalf("connect mongo: %v", err)
	}
	t.Cleanup(func() { _ = store.Disconnect(context.Background()) })

	if err := mongostore.EnsureIndexes(ctx, store.Database()); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	return store.Database()
}
