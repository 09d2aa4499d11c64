// renumber-workorders reassigns dense work order sequences (1..N by creation
// time) and their zero-padded work numbers. Normally renumbering runs as part
// of work order deletion; this tool repairs databases that picked up gaps
// some other way (manual fixes, imports from the legacy system).
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/renumber-workorders
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

	if err := models.RenumberAllWorkOrders(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "renumbering failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("work orders renumbered")
}
