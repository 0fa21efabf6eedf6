package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"skybound/flightline/internal/db"
	"skybound/flightline/internal/db/repositories"
)

// Mints an API key for one school. Run once per integration client:
//
//	go run ./cmd/api_key_gen -school <school-uuid>
func main() {
	schoolID := flag.String("school", "", "school UUID the key belongs to")
	flag.Parse()

	if *schoolID == "" {
		log.Fatal("missing -school flag")
	}

	_ = godotenv.Load()

	if err := db.InitPostgres(); err != nil {
		log.Fatalf("connect postgres: %v", err)
	}

	key := uuid.New().String()
	repo := repositories.NewApiKeysRepo(db.DB)
	if err := repo.Insert(context.Background(), key, *schoolID); err != nil {
		log.Fatalf("insert api key: %v", err)
	}

	fmt.Println("New API key:", key)
}
