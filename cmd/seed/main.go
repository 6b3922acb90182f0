// Command seed writes a demo dataset into a file-store directory so a fresh
// service starts with a populated checklist, contacts, and location. It uses
// the actual domain and store packages so the seeded state matches what the
// service itself would persist.
//
// Usage:
//
//	go run ./cmd/seed -data-dir ./data
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/preparedness-planner-service/internal/domain"
	"github.com/couchcryptid/preparedness-planner-service/internal/planner"
	"github.com/couchcryptid/preparedness-planner-service/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dataDir := flag.String("data-dir", "", "file store directory to seed")
	flag.Parse()

	if *dataDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -data-dir")
	}

	kv, err := store.NewFileKV(*dataDir)
	if err != nil {
		return fmt.Errorf("opening file store: %w", err)
	}

	// Fixed clock so seeded contact IDs are reproducible.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	ctx := context.Background()

	checked := map[string]bool{
		domain.CheckedKey(domain.CategoryFood, "Water"):            true,
		domain.CheckedKey(domain.CategoryFood, "Canned goods"):     true,
		domain.CheckedKey(domain.CategoryMedical, "First aid kit"): true,
		domain.CheckedKey(domain.CategoryTools, "Flashlights"):     true,
	}
	if err := write(ctx, kv, planner.KeySupplies, checked); err != nil {
		return err
	}
	log.Printf("seeded %d checked supplies", len(checked))

	contacts, err := seedContacts()
	if err != nil {
		return err
	}
	if err := write(ctx, kv, planner.KeyContacts, contacts); err != nil {
		return err
	}
	log.Printf("seeded %d contacts", len(contacts))

	prefs := planner.Preferences{SoundEnabled: true}
	if err := write(ctx, kv, planner.KeyPreferences, prefs); err != nil {
		return err
	}

	location := domain.Geo{Latitude: 40.75, Longitude: -73.98}
	if err := write(ctx, kv, planner.KeyLocation, location); err != nil {
		return err
	}

	log.Printf("seed complete: %s", *dataDir)
	return nil
}

func seedContacts() ([]domain.Contact, error) {
	specs := []struct {
		name, phone, relation string
		primary               bool
	}{
		{"Jordan Reyes", "555-0142", "spouse", true},
		{"Sam Okafor", "555-0178", "neighbor", false},
		{"Dr. Lena Park", "555-0190", "physician", false},
	}

	contacts := make([]domain.Contact, 0, len(specs))
	for _, sp := range specs {
		c, err := domain.NewContact(sp.name, sp.phone, sp.relation, sp.primary)
		if err != nil {
			return nil, fmt.Errorf("seeding contact %q: %w", sp.name, err)
		}
		// The fake clock never advances; keep IDs distinct by hand.
		if n := len(contacts); n > 0 && c.ID <= contacts[n-1].ID {
			c.ID = contacts[n-1].ID + 1
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

func write(ctx context.Context, kv store.KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
