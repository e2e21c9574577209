package main

import (
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/al-solutions/salesdash/internal/synthetic"
)

const dateLayout = "2006-01-02"

func main() {
	rows := flag.Int("rows", 50000, "number of rows to generate")
	out := flag.String("out", "data/sales_events.csv", "output CSV path")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	start := flag.String("start", "2024-01-01", "first event date (YYYY-MM-DD)")
	end := flag.String("end", "2025-05-31", "last event date (YYYY-MM-DD)")
	flag.Parse()

	startDate, err := time.Parse(dateLayout, *start)
	if err != nil {
		log.Fatal().Err(err).Str("start", *start).Msg("Invalid start date")
	}
	endDate, err := time.Parse(dateLayout, *end)
	if err != nil {
		log.Fatal().Err(err).Str("end", *end).Msg("Invalid end date")
	}
	if *rows <= 0 {
		log.Fatal().Int("rows", *rows).Msg("Row count must be positive")
	}
	if endDate.Before(startDate) {
		log.Fatal().Str("start", *start).Str("end", *end).Msg("End date precedes start date")
	}

	generated := synthetic.New(*seed, startDate, endDate).Rows(*rows)

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal().Err(err).Str("dir", dir).Msg("Failed to create output directory")
		}
	}
	f, err := os.Create(*out)
	if err != nil {
		log.Fatal().Err(err).Str("path", *out).Msg("Failed to create output file")
	}
	if err := synthetic.WriteCSV(f, generated); err != nil {
		f.Close()
		log.Fatal().Err(err).Msg("Failed to write dataset")
	}
	if err := f.Close(); err != nil {
		log.Fatal().Err(err).Str("path", *out).Msg("Failed to close output file")
	}

	log.Info().
		Int("rows", *rows).
		Str("path", *out).
		Int64("seed", *seed).
		Str("start", *start).
		Str("end", *end).
		Msg("Dataset generated")
}
