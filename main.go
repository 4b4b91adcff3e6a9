package main

import (
	"errors"
	"fmt"
	"os"

	"matrix-scraper/config"
	"matrix-scraper/models"
	"matrix-scraper/scraper/matrix"
	"matrix-scraper/services"
	"matrix-scraper/storage"
	"matrix-scraper/utils"
)

func main() {
	logger := utils.NewLogger()
	if err := run(logger); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

// run drives the whole linear flow. Cleanup is deferred so the browser and
// both writers are released exactly once, on the success and failure paths
// alike.
func run(logger *utils.Logger) error {
	cfg := config.Load()

	logger.Info("=== Matrix MLS Extraction starting ===")
	logger.Info("Config — portal: %s | row selector: %s | operator deadlines: %ds login / %ds results",
		cfg.PortalURL, cfg.ResultRowSelector, cfg.LoginWaitSec, cfg.ResultsWaitSec)

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		return fmt.Errorf("create CSV writer: %w", err)
	}
	defer csvWriter.Close()

	pgWriter, err := storage.NewPostgresWriter(cfg.DSN())
	if err != nil {
		logger.Error("Make sure Docker is running: docker compose up -d")
		return fmt.Errorf("connect to PostgreSQL: %w", err)
	}
	defer pgWriter.Close()

	session := matrix.New(cfg, logger)
	defer session.Close()

	listings, err := session.Scrape()
	if err != nil {
		switch {
		case errors.Is(err, matrix.ErrOperatorTimeout):
			logger.Error("Operator step was not completed in time — raise LOGIN_WAIT_SEC / RESULTS_WAIT_SEC if needed")
		case errors.Is(err, matrix.ErrNavigation):
			logger.Error("Portal could not be reached — check MATRIX_URL and your network")
		}
		return err
	}

	printSample(listings, cfg.SampleSize)

	if len(listings) == 0 {
		logger.Warn("No listing rows matched %q — nothing to store", cfg.ResultRowSelector)
		return nil
	}

	if err := csvWriter.WriteRaw(listings); err != nil {
		logger.Error("CSV write failed: %v", err)
	} else {
		logger.Info("Raw listings saved to %s", cfg.CSVOutputPath)
	}

	cleaner := services.NewCleaner(logger)
	properties := cleaner.Clean(listings)

	if len(properties) == 0 {
		logger.Warn("All rows were dropped during cleaning — skipping storage and report")
		return nil
	}

	if err := pgWriter.Write(properties); err != nil {
		logger.Error("PostgreSQL write failed: %v", err)
	} else {
		logger.Info("Clean properties stored in PostgreSQL (table: properties)")
	}

	dbProperties, err := pgWriter.FetchAll()
	if err != nil {
		logger.Error("Failed to fetch properties from DB for the report: %v", err)
		dbProperties = properties
	}

	insightSvc := services.NewInsightService(logger)
	report := insightSvc.Generate(dbProperties)
	insightSvc.Print(report)

	fmt.Printf("  Done. Raw CSV → %s | Clean data → PostgreSQL (properties table)\n\n",
		cfg.CSVOutputPath)
	return nil
}

// printSample reports the extracted count and up to sampleSize records.
func printSample(listings []*models.PropertyListing, sampleSize int) {
	fmt.Printf("\nExtracted %d listing rows\n", len(listings))
	for i, l := range listings {
		if i >= sampleSize {
			break
		}
		fmt.Printf("  %d. MLS %-12s %-36s %-12s %s bd / %s ba / %s sqft\n",
			i+1, l.MLSNumber, l.Address, l.Price, l.Beds, l.Baths, l.Sqft)
	}
	fmt.Println()
}
