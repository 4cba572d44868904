package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("========================================")
	fmt.Println("   Reset Database for Testing")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("WARNING: This will DELETE ALL REPAIR DATA!")
	fmt.Println()
	fmt.Println("This will:")
	fmt.Println("  - Delete all staff accounts (then recreate admin)")
	fmt.Println("  - Delete all repair jobs and photos")
	fmt.Println("  - Delete all SMS logs")
	fmt.Println("  - Reset all ID sequences")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "yes" {
		fmt.Println("Reset cancelled.")
		return
	}

	// Load environment variables
	godotenv.Load()

	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "repair_db")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		dbUser, dbPassword, dbHost, dbPort, dbName)

	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	fmt.Println()
	fmt.Println("Resetting database...")

	ctx := context.Background()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v\n", err)
	}
	defer tx.Rollback(ctx)

	// Disable foreign key checks
	_, err = tx.Exec(ctx, "SET session_replication_role = 'replica'")
	if err != nil {
		log.Fatalf("Failed to disable foreign key checks: %v\n", err)
	}

	tables := []string{
		"sms_logs",
		"repair_job_photos",
		"repair_jobs",
		"users",
	}

	for _, table := range tables {
		_, err = tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			log.Fatalf("Failed to truncate %s: %v\n", table, err)
		}
		fmt.Printf("  Cleared %s\n", table)
	}

	// Re-enable foreign key checks
	_, err = tx.Exec(ctx, "SET session_replication_role = 'origin'")
	if err != nil {
		log.Fatalf("Failed to enable foreign key checks: %v\n", err)
	}

	sequences := []string{
		"users_id_seq",
		"repair_jobs_id_seq",
		"repair_job_photos_id_seq",
		"sms_logs_id_seq",
	}

	for _, seq := range sequences {
		_, err = tx.Exec(ctx, fmt.Sprintf("ALTER SEQUENCE %s RESTART WITH 1", seq))
		if err != nil {
			log.Printf("Warning: Failed to reset sequence %s: %v\n", seq, err)
		}
	}
	fmt.Println("  Reset ID sequences")

	// Create default admin user
	// Password: admin123
	_, err = tx.Exec(ctx, `
		INSERT INTO users (username, name, password_hash, is_admin, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, TRUE, TRUE, NOW(), NOW())`,
		"admin",
		"Administrator",
		"$2a$10$N9qo8uLOickgx2ZMRZoMye7U4hWJQbFlLwt7xW.hQOKvH8QhPVN8S",
	)
	if err != nil {
		log.Fatalf("Failed to create admin user: %v\n", err)
	}
	fmt.Println("  Created admin user")

	err = tx.Commit(ctx)
	if err != nil {
		log.Fatalf("Failed to commit transaction: %v\n", err)
	}

	fmt.Println()
	fmt.Println("Database reset successful!")
	fmt.Println()
	fmt.Println("Default credentials:")
	fmt.Println("  Username: admin")
	fmt.Println("  Password: admin123")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
