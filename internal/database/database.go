package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"products-api/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Service exposes the shared database handle and its health state
type Service interface {
	DB() *sql.DB
	Health() map[string]string
	Close() error
}

type service struct {
	db *sql.DB
}

// New opens a pooled connection to Postgres using the pgx stdlib driver
func New(cfg *config.Config) (Service, error) {
	connStr := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Database,
		cfg.Database.Schema,
	)

	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &service{db: db}, nil
}

func (s *service) DB() *sql.DB {
	return s.db
}

// Health pings the database with a short timeout
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return map[string]string{
			"status": "down",
			"error":  err.Error(),
		}
	}

	return map[string]string{
		"status": "up",
	}
}

func (s *service) Close() error {
	return s.db.Close()
}
