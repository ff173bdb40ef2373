package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"fishbowl/internal/config"
	"fishbowl/internal/db"
	"fishbowl/internal/server"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}

	conn, err := db.Open()
	if err != nil {
		log.Printf("running without a database: %v", err)
		conn = nil
	} else {
		if err := db.ConfigurePool(conn,
			cfg.DBMaxOpenConns,
			cfg.DBMaxIdleConns,
			time.Duration(cfg.DBConnMaxLifetimeSeconds)*time.Second,
			time.Duration(cfg.DBConnMaxIdleTimeSeconds)*time.Second,
		); err != nil {
			log.Fatalf("db pool configuration failed: %v", err)
		}
	}

	srv := server.New(conn, cfg)
	srv.StartReaper(context.Background())

	log.Printf("fishbowl server listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
