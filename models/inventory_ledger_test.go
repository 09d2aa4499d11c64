package models_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/turboszerviz/turbo_backend/models"
)

func TestInventoryMovementsKeepStockAndSnapshotsConsistent(t *testing.T) {
	setupTestDatabase(t)
	ctx := context.Background()

	item, err := models.CreateInventoryItem(ctx, &models.NewInventoryItem{
		Name:          "Geometria",
		Code:          "GEO-100",
		Category:      "turbo_parts",
		CurrentStock:  5,
		MinStock:      2,
		PurchasePrice: decimal.NewFromInt(85),
	})
	if err != nil {
		t.Fatalf("CreateInventoryItem: %v", err)
	}

	// Opening stock must already be on the ledger.
	opening, err := models.ListInventoryMovements(ctx, &models.InventoryMovementFilter{ItemId: item.ID})
	if err != nil {
		t.Fatalf("ListInventoryMovements: %v", err)
	}
	if len(opening) != 1 || opening[0].StockBefore != 0 || opening[0].StockAfter != 5 {
		t.Fatalf("opening movement missing or wrong: %+v", opening)
	}

	in, err := models.RecordInventoryMovement(ctx, &models.NewInventoryMovement{
		ItemId:       item.ID,
		MovementType: models.MovementTypeIn,
		Quantity:     10,
		Reason:       "szállítmány",
	})
	if err != nil {
		t.Fatalf("RecordInventoryMovement(IN): %v", err)
	}
	if in.StockBefore != 5 || in.StockAfter != 15 || in.Quantity != 10 {
		t.Errorf("IN snapshots: %+v", in)
	}

	out, err := models.RecordInventoryMovement(ctx, &models.NewInventoryMovement{
		ItemId:       item.ID,
		MovementType: models.MovementTypeOut,
		Quantity:     4,
		Reference:    "00012",
	})
	if err != nil {
		t.Fatalf("RecordInventoryMovement(OUT): %v", err)
	}
	// OUT rows store the quantity negated.
	if out.Quantity != -4 || out.StockBefore != 15 || out.StockAfter != 11 {
		t.Errorf("OUT snapshots: %+v", out)
	}

	// Draining more than the balance must fail and write nothing.
	if _, err := models.RecordInventoryMovement(ctx, &models.NewInventoryMovement{
		ItemId:       item.ID,
		MovementType: models.MovementTypeOut,
		Quantity:     100,
	}); err == nil {
		t.Fatalf("overdraw should fail")
	}

	current, err := models.GetInventoryItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetInventoryItem: %v", err)
	}
	if current.CurrentStock != 11 {
		t.Errorf("stock after failed overdraw: got %d, want 11", current.CurrentStock)
	}
	movements, err := models.ListInventoryMovements(ctx, &models.InventoryMovementFilter{ItemId: item.ID})
	if err != nil {
		t.Fatalf("ListInventoryMovements: %v", err)
	}
	if len(movements) != 3 {
		t.Errorf("ledger rows after failed overdraw: got %d, want 3", len(movements))
	}

	// The ledger replays to the balance.
	sum := 0
	for _, m := range movements {
		sum += m.Quantity
	}
	if sum != current.CurrentStock {
		t.Errorf("ledger sum %d != current stock %d", sum, current.CurrentStock)
	}

	// Negative adjustment carries its sign as given.
	adj, err := models.RecordInventoryMovement(ctx, &models.NewInventoryMovement{
		ItemId:       item.ID,
		MovementType: models.MovementTypeAdjustment,
		Quantity:     -3,
		Reason:       "leltár",
	})
	if err != nil {
		t.Fatalf("RecordInventoryMovement(ADJUSTMENT): %v", err)
	}
	if adj.Quantity != -3 || adj.StockAfter != 8 {
		t.Errorf("ADJUSTMENT snapshots: %+v", adj)
	}
}

func TestInventoryListDerivedStatusAndSoftDelete(t *testing.T) {
	setupTestDatabase(t)
	ctx := context.Background()

	if _, err := models.CreateInventoryItem(ctx, &models.NewInventoryItem{
		Name: "Tisztítószer", Code: "CLEAN-100", CurrentStock: 0, MinStock: 1,
	}); err != nil {
		t.Fatalf("CreateInventoryItem: %v", err)
	}
	if _, err := models.CreateInventoryItem(ctx, &models.NewInventoryItem{
		Name: "Aktuátor", Code: "ACT-100", CurrentStock: 2, MinStock: 3,
	}); err != nil {
		t.Fatalf("CreateInventoryItem: %v", err)
	}
	ok, err := models.CreateInventoryItem(ctx, &models.NewInventoryItem{
		Name: "Javító készlet", Code: "SET-100", CurrentStock: 50, MinStock: 5,
	})
	if err != nil {
		t.Fatalf("CreateInventoryItem: %v", err)
	}

	all, err := models.ListInventoryItems(ctx, &models.InventoryItemFilter{})
	if err != nil {
		t.Fatalf("ListInventoryItems: %v", err)
	}
	statuses := map[string]models.StockStatus{}
	for _, item := range all {
		statuses[item.Code] = item.StockStatus
	}
	if statuses["CLEAN-100"] != models.StockStatusCritical {
		t.Errorf("CLEAN-100 status: got %s, want critical", statuses["CLEAN-100"])
	}
	if statuses["ACT-100"] != models.StockStatusLow {
		t.Errorf("ACT-100 status: got %s, want low", statuses["ACT-100"])
	}
	if statuses["SET-100"] != models.StockStatusOk {
		t.Errorf("SET-100 status: got %s, want ok", statuses["SET-100"])
	}
	for _, item := range all {
		switch item.Code {
		case "SET-100":
			// Opening stock wrote one ledger row.
			if item.TotalMovements != 1 || item.LastMovement == nil {
				t.Errorf("SET-100 movement summary: count %d, last %v", item.TotalMovements, item.LastMovement)
			}
		case "CLEAN-100":
			if item.TotalMovements != 0 || item.LastMovement != nil {
				t.Errorf("CLEAN-100 movement summary: count %d, last %v", item.TotalMovements, item.LastMovement)
			}
		}
	}

	lowOnly, err := models.ListInventoryItems(ctx, &models.InventoryItemFilter{LowStockOnly: true})
	if err != nil {
		t.Fatalf("ListInventoryItems(low): %v", err)
	}
	if len(lowOnly) != 2 {
		t.Errorf("low stock filter: got %d items, want 2 (critical + low)", len(lowOnly))
	}

	// Soft delete: the item leaves listings but its history stays readable.
	if err := models.DeleteInventoryItem(ctx, ok.ID); err != nil {
		t.Fatalf("DeleteInventoryItem: %v", err)
	}
	after, err := models.ListInventoryItems(ctx, &models.InventoryItemFilter{})
	if err != nil {
		t.Fatalf("ListInventoryItems(after delete): %v", err)
	}
	for _, item := range after {
		if item.ID == ok.ID {
			t.Errorf("deactivated item still listed")
		}
	}
	movements, err := models.ListInventoryMovements(ctx, &models.InventoryMovementFilter{ItemId: ok.ID})
	if err != nil {
		t.Fatalf("ListInventoryMovements(after delete): %v", err)
	}
	if len(movements) != 1 {
		t.Errorf("movement history lost on soft delete")
	}
}

func TestInventoryDashboardCounts(t *testing.T) {
	setupTestDatabase(t)
	ctx := context.Background()

	seedItems := []models.NewInventoryItem{
		{Name: "A", Code: "A-1", CurrentStock: 0, MinStock: 1, PurchasePrice: decimal.NewFromInt(10)},
		{Name: "B", Code: "B-1", CurrentStock: 2, MinStock: 3, PurchasePrice: decimal.NewFromInt(5)},
		{Name: "C", Code: "C-1", CurrentStock: 10, MinStock: 2, PurchasePrice: decimal.NewFromInt(2)},
	}
	for i := range seedItems {
		if _, err := models.CreateInventoryItem(ctx, &seedItems[i]); err != nil {
			t.Fatalf("CreateInventoryItem(%s): %v", seedItems[i].Code, err)
		}
	}

	dashboard, err := models.GetInventoryDashboard(ctx)
	if err != nil {
		t.Fatalf("GetInventoryDashboard: %v", err)
	}

	if dashboard.TotalItems != 3 {
		t.Errorf("total items: got %d, want 3", dashboard.TotalItems)
	}
	if dashboard.OutOfStockItems != 1 {
		t.Errorf("out of stock: got %d, want 1", dashboard.OutOfStockItems)
	}
	// Items at zero are still at or below their minimum, so A counts in
	// both the low-stock and out-of-stock buckets.
	if dashboard.LowStockItems != 2 {
		t.Errorf("low stock: got %d, want 2", dashboard.LowStockItems)
	}
	// Opening movements for B and C.
	if dashboard.RecentMovements != 2 {
		t.Errorf("recent movements: got %d, want 2", dashboard.RecentMovements)
	}
	// 0*10 + 2*5 + 10*2
	if !dashboard.TotalStockValue.Equal(decimal.NewFromInt(30)) {
		t.Errorf("stock value: got %s, want 30", dashboard.TotalStockValue)
	}
}
