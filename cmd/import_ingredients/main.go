package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/database"
	"github.com/foodgram/backend/internal/service"
)

// Loads the ingredient reference data from a CSV file with
// "name,measurement_unit" rows. Rows that already exist are skipped.
func main() {
	path := flag.String("file", "data/ingredients.csv", "Path to the ingredients CSV file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewGorm(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *path, err)
	}
	defer f.Close()

	catalog := service.NewCatalogService(db)
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	ctx := context.Background()
	var created, skipped int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Failed to read CSV: %v", err)
		}

		name, unit := record[0], record[1]
		if name == "" || unit == "" {
			log.Printf("Skipping malformed row: %q", record)
			continue
		}

		_, isNew, err := catalog.GetOrCreateIngredient(ctx, name, unit)
		if err != nil {
			log.Fatalf("Failed to import %q (%s): %v", name, unit, err)
		}
		if isNew {
			created++
		} else {
			skipped++
		}
	}

	log.Printf("Imported %d ingredients, skipped %d existing", created, skipped)
}
