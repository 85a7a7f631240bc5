package db

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres(dsn string) *pgxpool.Pool {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	if err := initSchema(pool); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	log.Println("Connected to PostgreSQL")
	return pool
}

// initSchema creates the single KV table the kiosk persists into.
func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	kvTableSQL := `
		CREATE TABLE IF NOT EXISTS kiosk_state (
			key VARCHAR(64) PRIMARY KEY,
			value JSONB NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := pool.Exec(ctx, kvTableSQL); err != nil {
		return err
	}

	return nil
}
