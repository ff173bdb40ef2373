package main

import (
	"flag"
	"log"

	"fishbowl/internal/config"
	"fishbowl/internal/db"
)

func main() {
	filePath := flag.String("file", "characters.csv", "path to characters csv (category,name)")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	conn, err := db.Open()
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	inserted, err := db.LoadCharacterLibrary(conn, *filePath)
	if err != nil {
		log.Fatalf("failed to load characters: %v", err)
	}
	log.Printf("loaded %d characters", inserted)
}
