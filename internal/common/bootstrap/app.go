package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/waitlist-site/backend/internal/common/clock"
	"github.com/waitlist-site/backend/internal/common/config"
	"github.com/waitlist-site/backend/internal/common/constants"
	"github.com/waitlist-site/backend/internal/common/crypto"
	"github.com/waitlist-site/backend/internal/common/db"
	"github.com/waitlist-site/backend/internal/common/logger"
	"github.com/waitlist-site/backend/internal/common/mongostore"
	"github.com/waitlist-site/backend/internal/common/server"
	newsrepo "github.com/waitlist-site/backend/internal/news/repository"
	userrepo "github.com/waitlist-site/backend/internal/user/repository"
	visitrepo "github.com/waitlist-site/backend/internal/visit/repository"
)

const serviceName = "site"

// Stores are the three collections, all backed by the same store handle.
type Stores struct {
	Users  userrepo.Repository
	Visits visitrepo.Repository
	News   newsrepo.Repository
}

type App struct {
	Log     *logger.Logger
	Config  config.SiteConfig
	Handler http.Handler
	Hooks   []server.ShutdownHook
}

// NewApp loads configuration, opens the configured store and assembles the
// handler tree. Background work started here stops when ctx is cancelled.
func NewApp(ctx context.Context) (*App, error) {
	cfg, err := config.LoadSiteConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogDir, serviceName, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	stores, hooks, err := openStores(ctx, cfg, log)
	if err != nil {
		_ = log.Close()
		return nil, err
	}
	hooks = append(hooks, func(context.Context) error { return log.Close() })

	handler := NewHandler(cfg, log, Deps{
		Stores: stores,
		Secret: SecretFromConfig(cfg),
		IDs:    crypto.NewUUIDGenerator(),
		Clock:  clock.NewRealClock(),
	})

	return &App{
		Log:     log,
		Config:  cfg,
		Handler: handler,
		Hooks:   hooks,
	}, nil
}

// SecretFromConfig prefers the bcrypt hash when both forms are configured.
func SecretFromConfig(cfg config.SiteConfig) crypto.SecretMatcher {
	if cfg.AdminPasswordHash != "" {
		return crypto.NewBcryptSecret(cfg.AdminPasswordHash)
	}
	return crypto.NewPlainSecret(cfg.AdminPassword)
}

func openStores(ctx context.Context, cfg config.SiteConfig, log *logger.Logger) (Stores, []server.ShutdownHook, error) {
	switch cfg.Store {
	case config.StorePostgres:
		return openPostgres(ctx, cfg, log)
	case config.StoreMongo:
		return openMongo(ctx, cfg, log)
	default:
		return Stores{}, nil, fmt.Errorf("%w: %q", config.ErrUnsupportedStore, cfg.Store)
	}
}

func openPostgres(ctx context.Context, cfg config.SiteConfig, log *logger.Logger) (Stores, []server.ShutdownHook, error) {
	pool, err := db.NewPool(ctx, log, cfg.StoreURL())
	if err != nil {
		return Stores{}, nil, err
	}

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Errorf("database schema not applied, retrying in background: %v", err)
		go db.EnsureSchemaInBackground(ctx, pool, log, constants.DBPoolRetryDelay*5)
	}

	stores := Stores{
		Users:  userrepo.NewPgRepository(pool),
		Visits: visitrepo.NewPgRepository(pool),
		News:   newsrepo.NewPgRepository(pool),
	}
	closePool := func(context.Context) error {
		log.Infof("closing database pool")
		pool.Close()
		return nil
	}
	return stores, []server.ShutdownHook{closePool}, nil
}

func openMongo(ctx context.Context, cfg config.SiteConfig, log *logger.Logger) (Stores, []server.ShutdownHook, error) {
	store, err := mongostore.Connect(ctx, log, cfg.StoreURL(), cfg.MongoDatabase)
	if err != nil {
		return Stores{}, nil, err
	}

	indexCtx, cancel := context.WithTimeout(ctx, constants.MongoPingTimeout)
	defer cancel()
	if err := mongostore.EnsureIndexes(indexCtx, store.Database()); err != nil {
		log.Warnf("mongo indexes not ensured: %v", err)
	}

	stores := Stores{
		Users:  userrepo.NewMongoRepository(store.Database()),
		Visits: visitrepo.NewMongoRepository(store.Database()),
		News:   newsrepo.NewMongoRepository(store.Database()),
	}
	disconnect := func(ctx context.Context) error {
		log.Infof("disconnecting from mongo")
		return store.Disconnect(ctx)
	}
	return stores, []server.ShutdownHook{disconnect}, nil
}
