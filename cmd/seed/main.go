// Command seed fills a development database with demo landlords, renters and
// listings.
package main

import (
	"context"
	"flag"
	"log"

	"hanapbahay/internal/config"
	"hanapbahay/internal/database"
	"hanapbahay/internal/seed"
)

func main() {
	landlords := flag.Int("landlords", 5, "number of demo landlords (each gets a paired renter)")
	listings := flag.Int("listings", 4, "listings per landlord")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" {
		log.Fatal("Refusing to seed demo data into a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.SeedDemoData(context.Background(), db, *landlords, *listings); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Seeded %d landlords with %d listings each", *landlords, *listings)
}
