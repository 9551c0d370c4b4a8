package db

import (
	"context"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the shared pool over the picks schema: games, predictions, users.
var DB *pgxpool.Pool

// Connect opens the pool from POSTGRES_URL and verifies it with a ping
// before any store touches it.
func Connect() (*pgxpool.Pool, error) {
	dsn := os.Getenv("POSTGRES_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	DB = pool

	return pool, nil
}

// ClosePool releases the pool during graceful shutdown.
func ClosePool() {
	if DB != nil {
		DB.Close()
	}
}
