package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"repair-backend/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens the pgx pool and verifies the database is reachable
// before the server starts taking requests.
func Connect(cfg *config.Config) *pgxpool.Pool {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
	)

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("[Database] Invalid connection config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("[Database] Cannot reach %s:%d/%s: %v",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.Name, err)
	}

	log.Printf("[Database] Connected to %s", cfg.Database.Name)
	return pool
}
