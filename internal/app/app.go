package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/poofware/rental-service/internal/config"
	"github.com/poofware/rental-service/internal/migrations"
	"github.com/poofware/rental-service/internal/repositories"
	"github.com/poofware/rental-service/internal/repositories/gormrepo"
	"github.com/poofware/rental-service/internal/utils"
	"gorm.io/gorm"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
)

// App owns the database handle for the configured driver and the store
// built on it.
type App struct {
	Config *config.Config
	Store  repositories.Store

	pool   *pgxpool.Pool
	gormDB *gorm.DB
}

func NewApp(cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	switch cfg.DBDriver {
	case config.DBDriverPostgres:
		pool, err := connectWithRetry(cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		a.pool = pool
		a.Store = repositories.NewPostgresStore(pool)
	case config.DBDriverSQLite:
		db, err := gormrepo.OpenSQLite(cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		a.gormDB = db
		a.Store = gormrepo.NewStore(db)
		utils.Logger.Infof("rental-service using sqlite store at %s", cfg.DBUrl)
	default:
		return nil, fmt.Errorf("unsupported DB driver %q", cfg.DBDriver)
	}
	return a, nil
}

// Migrate brings the schema up to date.
func (a *App) Migrate(ctx context.Context) error {
	if a.gormDB != nil {
		if err := gormrepo.AutoMigrate(a.gormDB.WithContext(ctx)); err != nil {
			return fmt.Errorf("auto-migrate sqlite: %w", err)
		}
		return nil
	}

	// The advisory lock is session-scoped, so every statement has to run on
	// the same connection.
	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire migration connection: %w", err)
	}
	defer conn.Release()
	return migrations.Up(ctx, conn)
}

func (a *App) Ping(ctx context.Context) error {
	if a.pool != nil {
		return a.pool.Ping(ctx)
	}
	sqlDB, err := a.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
		utils.Logger.Info("rental-service DB connection closed.")
	}
	if a.gormDB != nil {
		if sqlDB, err := a.gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
		utils.Logger.Info("rental-service sqlite store closed.")
	}
}

func connectWithRetry(databaseURL string) (*pgxpool.Pool, error) {
	var (
		dbPool  *pgxpool.Pool
		err     error
		backoff = initialBackoff
	)

	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		dbPool, err = newDBPool(ctx, databaseURL)
		cancel()
		if err == nil {
			utils.Logger.Infof("rental-service connected to DB on attempt %d", i)
			return dbPool, nil
		}

		utils.Logger.WithError(err).Warnf(
			"Failed DB connect on attempt %d/%d. Retrying in %v...",
			i, maxRetries, backoff,
		)
		if i == maxRetries {
			break
		}
		time.Sleep(backoff)
		backoff *= 2
	}
	return nil, fmt.Errorf("unable to connect after %d attempts: %w", maxRetries, err)
}

func newDBPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second
	return pgxpool.ConnectConfig(ctx, cfg)
}
