package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"activityBooker/internal/config"

	"github.com/avast/retry-go"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
)

const (
	DriverPQ  = "postgres"
	DriverPGX = "pgx"
)

//go:embed schema.sql
var schema string

type Storage struct {
	DB *sql.DB
}

// InitDB opens a pool with the configured driver ("postgres" for lib/pq, "pgx" for pgx stdlib)
// and waits for the server to accept connections.
func InitDB(ctx context.Context, dbCfg *config.Storage) (*Storage, error) {
	const op = "storage.postgres.InitDB"

	driver := dbCfg.Driver
	if driver != DriverPQ && driver != DriverPGX {
		return nil, fmt.Errorf("%s: unsupported driver %q", op, driver)
	}

	db, err := sql.Open(driver, dbCfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open the database: %w", op, err)
	}

	db.SetMaxOpenConns(dbCfg.MaxOpenConns)
	db.SetMaxIdleConns(dbCfg.MaxIdleConns)
	db.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)

	err = retry.Do(
		func() error {
			return db.PingContext(ctx)
		},
		retry.Attempts(5),
		retry.Delay(time.Second),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: failed to connect to the database: %w", op, err)
	}

	s := &Storage{DB: db}

	if dbCfg.Migrate {
		if err = s.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return s, nil
}

// Migrate creates the tables and constraints if they do not exist yet.
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.postgres.Migrate"

	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
