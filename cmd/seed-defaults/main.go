// seed-defaults loads the default catalog data (car makes, work processes,
// turbo parts, part types, suppliers) and the default warehouse items.
// Existing rows are skipped, so the tool is safe to rerun.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-defaults
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/turboszerviz/turbo_backend/config"
	"github.com/turboszerviz/turbo_backend/models"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	if config.GetDB() == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	models.MigrateTable()

	if err := models.SeedBaseData(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "seeding base data failed: %v\n", err)
		os.Exit(1)
	}
	created, err := models.SeedDefaultInventoryItems(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seeding inventory items failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("defaults seeded (%d inventory items created)\n", created)
}
