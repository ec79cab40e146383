package main

import (
	"flag"
	"log"

	"github.com/omnia28/task-manager-api/internal/config"
	"github.com/omnia28/task-manager-api/internal/db"
	"github.com/omnia28/task-manager-api/internal/domain"
)

func main() {
	drop := flag.Bool("drop", false, "drop the tasks table before migrating")
	flag.Parse()

	cfg := config.Load()

	database := db.Connect(cfg.DatabaseURL)
	defer db.Close(database)

	if *drop {
		if err := database.Migrator().DropTable(&domain.Task{}); err != nil {
			log.Fatalf("drop table: %v", err)
		}
		log.Println("dropped tasks table")
	}

	if err := db.Migrate(database); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("migration applied")
}
