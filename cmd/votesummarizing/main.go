package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	_ "github.com/lib/pq"

	"github.com/apakou/alx-poll/internal/adapters/repository/postgres"
	"github.com/apakou/alx-poll/internal/config"
	"github.com/apakou/alx-poll/internal/core/services"
)

func main() {
	cfg, err := config.LoadJob()
	if err != nil {
		log.Fatal(err)
	}

	var dbURL string
	flag.StringVar(&dbURL, "database-url", cfg.DatabaseURL, "Database URL")
	flag.Parse()

	if dbURL == "" {
		log.Fatal("a database URL is required")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	pollRepo := postgres.NewPollRepository(db)
	resultRepo := postgres.NewPollResultRepository(db)
	summaryService := services.NewSummaryService(pollRepo, resultRepo)

	// a timeout keeps a stuck run from hanging the scheduler slot
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Println("Starting vote summarization job...")
	if err := summaryService.SummarizeAllVotes(ctx); err != nil {
		log.Fatal(err)
	}
	log.Println("Vote summarization finished.")
}
