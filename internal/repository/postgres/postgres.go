package postgres

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/subway-admin/internal/config"
	"go.uber.org/zap"
)

// DB is the subway schema's connection pool.
type DB struct {
	*sqlx.DB
	logger *zap.Logger
}

// New opens the pool described by cfg.Database and, when DB_AUTO_MIGRATE is set,
// brings the subway schema up to date before returning.
func New(cfg *config.Config, logger *zap.Logger) (*DB, error) {
	dbCfg := cfg.Database

	conn, err := sqlx.Connect("pgx", cfg.GetDatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s at %s:%d: %w", dbCfg.DBName, dbCfg.Host, dbCfg.Port, err)
	}
	configurePool(conn, &dbCfg)

	db := &DB{DB: conn, logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if dbCfg.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}

	logger.Info("PostgreSQL connected",
		zap.String("host", dbCfg.Host),
		zap.Int("port", dbCfg.Port),
		zap.String("database", dbCfg.DBName),
		zap.Bool("auto_migrate", dbCfg.AutoMigrate),
	)
	return db, nil
}

func configurePool(conn *sqlx.DB, cfg *config.DatabaseConfig) {
	conn.SetMaxOpenConns(cfg.MaxConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	conn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
}

func (db *DB) Close() error {
	db.logger.Info("Closing PostgreSQL connection")
	return db.DB.Close()
}

// Health satisfies the server's health checker.
func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// NewDBForTest wraps an already open connection, skipping migrations.
func NewDBForTest(sqlxDB *sqlx.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{
		DB:     sqlxDB,
		logger: logger,
	}
}
