// Command seed registers stores and the initial fee schedule.
//
//	SEED_STORES="Corner Shop:0.03,Kiosk:0" go run ./cmd/seed
//
// Stores whose name is already registered are skipped.
package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"payout/internal/config"
	"payout/internal/logging"
	"payout/internal/models"
	"payout/internal/services/fee"
	"payout/internal/services/store"
	"payout/internal/storage"

	"github.com/shopspring/decimal"
)

type seedStore struct {
	Name string
	FeeC decimal.Decimal
}

func main() {
	cfg := config.MustLoad()
	logger := logging.New(cfg.LogLevel)

	seeds, err := parseStores(config.GetEnv("SEED_STORES", ""))
	if err != nil {
		log.Fatalf("invalid SEED_STORES: %v", err)
	}
	if len(seeds) == 0 {
		log.Fatal("SEED_STORES must be set, e.g. \"Corner Shop:0.03,Kiosk:0\"")
	}

	repos, err := storage.Open(cfg)
	if err != nil {
		log.Fatalf("failed to open storage: %v", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	ctx := context.Background()

	a, b, d, err := cfg.Fees.Values()
	if err != nil {
		log.Fatal(err)
	}
	schedule, err := fee.NewSchedule(models.FeeSchedule{A: a, B: b, D: d}, repos.FeeSchedules, logger)
	if err != nil {
		log.Fatal(err)
	}
	if err := schedule.Load(ctx); err != nil {
		log.Fatalf("failed to seed fee schedule: %v", err)
	}

	stores := store.NewService(repos.Stores, nil, logger)
	existing, err := stores.List(ctx)
	if err != nil {
		log.Fatalf("failed to list stores: %v", err)
	}
	registered := make(map[string]bool, len(existing))
	for _, s := range existing {
		registered[s.Name] = true
	}

	for _, seed := range seeds {
		if registered[seed.Name] {
			log.Printf("store %q already exists", seed.Name)
			continue
		}
		s, err := stores.Register(ctx, seed.Name, seed.FeeC)
		if err != nil {
			log.Fatalf("failed to register %q: %v", seed.Name, err)
		}
		log.Printf("registered store %q with id %d", s.Name, s.ID)
	}
}

// parseStores reads "name:feeC" pairs separated by commas.
func parseStores(raw string) ([]seedStore, error) {
	var seeds []seedStore
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		idx := strings.LastIndex(entry, ":")
		if idx <= 0 {
			return nil, fmt.Errorf("entry %q is not name:fee_c", entry)
		}
		feeC, err := decimal.NewFromString(strings.TrimSpace(entry[idx+1:]))
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", entry, err)
		}
		seeds = append(seeds, seedStore{Name: strings.TrimSpace(entry[:idx]), FeeC: feeC})
	}
	return seeds, nil
}
