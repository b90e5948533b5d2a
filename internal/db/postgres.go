package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func ConnectPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, errors.New("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	log.Info().Str("host", config.ConnConfig.Host).Msg("connected to postgres")

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return db, nil
}

// schema is applied in order on every start; each statement is idempotent.
var schema = []struct {
	name string
	sql  string
}{
	// -------------------------------
	// USERS
	// -------------------------------
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'customer',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`},
	{"users profile columns", `
		ALTER TABLE users ADD COLUMN IF NOT EXISTS phone VARCHAR(32) UNIQUE;
		ALTER TABLE users ADD COLUMN IF NOT EXISTS gender VARCHAR(32) NOT NULL DEFAULT '';
		ALTER TABLE users ADD COLUMN IF NOT EXISTS extra TEXT NOT NULL DEFAULT '';
	`},

	// -------------------------------
	// RESTAURANTS
	// -------------------------------
	{"restaurants", `
		CREATE TABLE IF NOT EXISTS restaurants (
			id TEXT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			type VARCHAR(100) NOT NULL DEFAULT '',
			image VARCHAR(500) NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`},

	// -------------------------------
	// DISHES
	// -------------------------------
	{"dishes", `
		CREATE TABLE IF NOT EXISTS dishes (
			id TEXT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(100) NOT NULL DEFAULT '',
			type VARCHAR(100) NOT NULL DEFAULT '',
			price DOUBLE PRECISION NOT NULL DEFAULT 0,
			image VARCHAR(500) NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			restaurant_ids TEXT[] NOT NULL DEFAULT '{}',
			rating DOUBLE PRECISION NULL,
			available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`},
	{"dishes indexes", `
		CREATE INDEX IF NOT EXISTS idx_dishes_restaurant_ids ON dishes USING GIN (restaurant_ids)
	`},

	// -------------------------------
	// PROMOTIONS
	// -------------------------------
	{"promotions", `
		CREATE TABLE IF NOT EXISTS promotions (
			id TEXT PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			discount_percent DOUBLE PRECISION NOT NULL CHECK (discount_percent > 0 AND discount_percent <= 100),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`},

	// -------------------------------
	// REVIEWS
	// -------------------------------
	{"reviews", `
		CREATE TABLE IF NOT EXISTS reviews (
			id UUID PRIMARY KEY,
			dish_id TEXT NOT NULL REFERENCES dishes(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES users(id),
			user_name VARCHAR(255) NOT NULL,
			rating SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`},
	{"reviews indexes", `
		CREATE INDEX IF NOT EXISTS idx_reviews_dish_id ON reviews (dish_id, created_at DESC)
	`},

	// -------------------------------
	// ORDERS
	// -------------------------------
	{"orders", `
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			items JSONB NOT NULL,
			subtotal DOUBLE PRECISION NOT NULL,
			discount DOUBLE PRECISION NOT NULL DEFAULT 0,
			total DOUBLE PRECISION NOT NULL,
			promotion_id TEXT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`},
	{"orders indexes", `
		CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders (user_id, created_at DESC)
	`},
}

// initSchema creates or updates the database schema
func initSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, step := range schema {
		if _, err := db.Exec(ctx, step.sql); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	log.Info().Int("steps", len(schema)).Msg("schema initialized")
	return nil
}
