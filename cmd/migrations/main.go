package main

import (
	"errors"
	"flag"
	"log"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/apakou/alx-poll/internal/config"
)

func main() {
	cfg, err := config.LoadJob()
	if err != nil {
		log.Fatal(err)
	}

	var dbURL, source string
	flag.StringVar(&dbURL, "database-url", cfg.DatabaseURL, "Database URL")
	flag.StringVar(&source, "source", "file://internal/adapters/repository/postgres/migrations", "Migration source")
	flag.Parse()

	if dbURL == "" {
		log.Fatal("a database URL is required")
	}

	direction := "up"
	if flag.NArg() > 0 {
		direction = flag.Arg(0)
	}

	m, err := migrate.New(source, dbURL)
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	default:
		log.Fatalf("unknown direction %q", direction)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal(err)
	}
	log.Println("Migrations applied successfully.")
}
