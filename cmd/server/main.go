package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/casetrace/casetrace/internal/api"
	"github.com/casetrace/casetrace/internal/monitor"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	port := getEnv("PORT", "8080")
	databaseURL := getEnv("DATABASE_URL", "postgres://localhost/casetrace?sslmode=disable")
	jwtSecret := os.Getenv("JWT_SECRET")

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	server := api.NewServer(api.ServerConfig{
		Port:      port,
		JWTSecret: jwtSecret,
		DB:        db,
		Monitor:   monitorClient(),
	})

	if err := server.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// monitorClient builds the analysis-mirroring client when MONITOR_URL is
// set. A failed session handshake disables mirroring rather than blocking
// startup.
func monitorClient() *monitor.Client {
	monitorURL := os.Getenv("MONITOR_URL")
	if monitorURL == "" {
		return nil
	}

	config := monitor.DefaultConfig()
	config.BaseURL = monitorURL
	client := monitor.NewClient(config)

	wd, _ := os.Getwd()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.StartSession(ctx, wd, "casetrace analysis mirror"); err != nil {
		log.Printf("monitor unavailable, mirroring disabled: %v", err)
		return nil
	}

	return client
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
