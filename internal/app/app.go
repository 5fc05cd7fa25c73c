package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/linemk/shop-catalog/internal/config"
	"github.com/linemk/shop-catalog/internal/storage"
	"github.com/linemk/shop-catalog/internal/storage/mongostore"
	"github.com/linemk/shop-catalog/internal/storage/postgres"
	"github.com/pkg/errors"
)

type App struct {
	Config *config.Config
	Logger *slog.Logger
	Store  storage.Gateway
}

// NewApp создаёт новый экземпляр App: открывает хранилище выбранным драйвером и проверяет его доступность
func NewApp(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Storage.ConnectTimeout)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		_ = store.Close(ctx)
		return nil, errors.Wrap(err, "failed to ping store")
	}
	log.Info("store connected", slog.String("driver", cfg.Storage.Driver))

	return &App{
		Config: cfg,
		Logger: log,
		Store:  store,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Gateway, error) {
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, cfg.Storage.ConnectTimeout)
		defer cancel()

		client, err := mongostore.Connect(connectCtx, cfg.Mongo.URI)
		if err != nil {
			return nil, err
		}
		return mongostore.NewGateway(client, cfg.Mongo.Database, cfg.Mongo.ProductsCollection, cfg.Mongo.OrdersCollection), nil

	case config.DriverPostgres:
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD environment variable is not set")
		}
		db, err := sql.Open("postgres", BuildPostgresDSN(cfg.Database))
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		return postgres.NewGateway(db), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// BuildPostgresDSN собирает строку подключения (DSN) из отдельных параметров
func BuildPostgresDSN(dbCfg config.DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.Name,
	)
}
