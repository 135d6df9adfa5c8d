// Command main loads demo data into the configured database.
package main

import (
	"context"
	"flag"
	"log"

	"classifieds/internal/config"
	"classifieds/internal/database"
	"classifieds/internal/seed"
)

func main() {
	fakeAds := flag.Int("fake", 0, "Number of generated listings to add")
	fakeUsers := flag.Int("users", 3, "Number of generated accounts owning the generated listings")
	randSeed := flag.Int64("seed", 0, "Random seed for generated data (0 = time based)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	res, err := seed.Run(context.Background(), db, seed.Options{
		FakeAds:   *fakeAds,
		FakeUsers: *fakeUsers,
		Seed:      *randSeed,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	if res.Skipped {
		log.Println("Database already populated, nothing to do")
		return
	}
	log.Printf("Created %d users and %d ads", res.Users, res.Ads)
	log.Printf("Demo login: %s / %s", seed.DemoEmail, seed.DemoPassword)
}
