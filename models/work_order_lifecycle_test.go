package models_test

import (
	"context"
	"testing"

	"github.com/turboszerviz/turbo_backend/config"
	"github.com/turboszerviz/turbo_backend/models"
)

func createTestClient(t *testing.T, ctx context.Context, phone string) *models.Client {
	t.Helper()
	client, err := models.CreateClient(ctx, &models.NewClient{
		Name:  "Teszt Ügyfél",
		Phone: phone,
	})
	if err != nil {
		t.Fatalf("CreateClient: %v", err)
	}
	return client
}

func TestWorkOrderNumberingStaysDenseAcrossDeletes(t *testing.T) {
	setupTestDatabase(t)
	ctx := context.Background()

	client := createTestClient(t, ctx, "+36201234567")

	var orders []*models.WorkOrder
	for _, code := range []string{"GT1749V", "K03-052", "BV43-109"} {
		order, err := models.CreateWorkOrder(ctx, &models.NewWorkOrder{
			ClientId:  client.ID,
			TurboCode: code,
		})
		if err != nil {
			t.Fatalf("CreateWorkOrder(%s): %v", code, err)
		}
		orders = append(orders, order)
	}

	for i, order := range orders {
		wantSeq := i + 1
		if order.WorkSequence != wantSeq {
			t.Errorf("order %d: got sequence %d, want %d", i, order.WorkSequence, wantSeq)
		}
		wantNumber := models.FormatWorkNumber(wantSeq)
		if order.WorkNumber != wantNumber {
			t.Errorf("order %d: got number %q, want %q", i, order.WorkNumber, wantNumber)
		}
	}

	// Delete the middle order; the third must slide down to sequence 2.
	if err := models.DeleteWorkOrder(ctx, orders[1].ID); err != nil {
		t.Fatalf("DeleteWorkOrder: %v", err)
	}

	first, err := models.GetWorkOrder(ctx, orders[0].ID)
	if err != nil {
		t.Fatalf("GetWorkOrder(first): %v", err)
	}
	third, err := models.GetWorkOrder(ctx, orders[2].ID)
	if err != nil {
		t.Fatalf("GetWorkOrder(third): %v", err)
	}

	if first.WorkSequence != 1 || first.WorkNumber != "00001" {
		t.Errorf("first order: got %d/%q, want 1/00001", first.WorkSequence, first.WorkNumber)
	}
	if third.WorkSequence != 2 || third.WorkNumber != "00002" {
		t.Errorf("third order: got %d/%q, want 2/00002", third.WorkSequence, third.WorkNumber)
	}

	if _, err := models.GetWorkOrder(ctx, orders[1].ID); err == nil {
		t.Errorf("deleted order still fetchable")
	}

	// A new order picks up the next free sequence, not the old maximum.
	fourth, err := models.CreateWorkOrder(ctx, &models.NewWorkOrder{
		ClientId:  client.ID,
		TurboCode: "GTB1649V",
	})
	if err != nil {
		t.Fatalf("CreateWorkOrder(fourth): %v", err)
	}
	if fourth.WorkSequence != 3 || fourth.WorkNumber != "00003" {
		t.Errorf("fourth order: got %d/%q, want 3/00003", fourth.WorkSequence, fourth.WorkNumber)
	}
}

func TestFinalizeGuardsDeletionUntilUnfinalize(t *testing.T) {
	setupTestDatabase(t)
	ctx := context.Background()

	client := createTestClient(t, ctx, "+36307654321")
	order, err := models.CreateWorkOrder(ctx, &models.NewWorkOrder{
		ClientId:  client.ID,
		TurboCode: "GT2256V",
	})
	if err != nil {
		t.Fatalf("CreateWorkOrder: %v", err)
	}
	if order.Status != models.WorkStatusDraft {
		t.Errorf("new order status: got %s, want DRAFT", order.Status)
	}

	finalized, err := models.FinalizeWorkOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("FinalizeWorkOrder: %v", err)
	}
	if !finalized.IsFinalized || finalized.FinalizedAt == nil {
		t.Errorf("finalize did not set finalized state")
	}
	if finalized.Status != models.WorkStatusReceived {
		t.Errorf("finalize status: got %s, want RECEIVED", finalized.Status)
	}

	if _, err := models.FinalizeWorkOrder(ctx, order.ID); err == nil {
		t.Errorf("double finalize should fail")
	}

	if err := models.DeleteWorkOrder(ctx, order.ID); err == nil {
		t.Errorf("deleting a finalized order should fail")
	}

	reopened, err := models.UnfinalizeWorkOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("UnfinalizeWorkOrder: %v", err)
	}
	if reopened.IsFinalized || reopened.FinalizedAt != nil {
		t.Errorf("unfinalize did not clear finalized state")
	}
	if reopened.Status != models.WorkStatusDraft {
		t.Errorf("unfinalize status: got %s, want DRAFT", reopened.Status)
	}

	if err := models.DeleteWorkOrder(ctx, order.ID); err != nil {
		t.Errorf("delete after unfinalize: %v", err)
	}
}

func TestListWorkOrdersFiltersAndWarningFlags(t *testing.T) {
	setupTestDatabase(t)
	ctx := context.Background()

	client := createTestClient(t, ctx, "+36701112233")
	other := createTestClient(t, ctx, "+36704445566")

	flagged, err := models.CreateWorkOrder(ctx, &models.NewWorkOrder{
		ClientId:  client.ID,
		TurboCode: "GT1749V",
		CarMake:   "BMW",
		CarModel:  "320d",
	})
	if err != nil {
		t.Fatalf("CreateWorkOrder: %v", err)
	}
	if _, err := models.CreateWorkOrder(ctx, &models.NewWorkOrder{
		ClientId:  other.ID,
		TurboCode: "K03-052",
	}); err != nil {
		t.Fatalf("CreateWorkOrder: %v", err)
	}

	if _, err := models.CreateTurboNote(ctx, &models.NewTurboNote{
		TurboCode: "GT1749V",
		NoteType:  models.NoteTypeWarning,
		Title:     "Gyakori tengelytörés",
	}); err != nil {
		t.Fatalf("CreateTurboNote: %v", err)
	}
	if _, err := models.CreateCarNote(ctx, &models.NewCarNote{
		CarMake:  "BMW",
		CarModel: "320d",
		Title:    "Olajellátás ellenőrzendő",
	}); err != nil {
		t.Fatalf("CreateCarNote: %v", err)
	}

	all, err := models.ListWorkOrders(ctx, nil, nil, nil)
	if err != nil {
		t.Fatalf("ListWorkOrders: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d orders, want 2", len(all))
	}

	byClient, err := models.ListWorkOrders(ctx, nil, &client.ID, nil)
	if err != nil {
		t.Fatalf("ListWorkOrders(client): %v", err)
	}
	if len(byClient) != 1 || byClient[0].ID != flagged.ID {
		t.Fatalf("client filter returned wrong rows")
	}
	if !byClient[0].HasTurboWarning {
		t.Errorf("expected turbo warning flag")
	}
	if !byClient[0].HasCarWarning {
		t.Errorf("expected car warning flag")
	}
	if !byClient[0].TotalAmount.Equal(flagged.TotalAmount()) {
		t.Errorf("total amount: got %s, want %s", byClient[0].TotalAmount, flagged.TotalAmount())
	}

	search := "k03"
	bySearch, err := models.ListWorkOrders(ctx, nil, nil, &search)
	if err != nil {
		t.Fatalf("ListWorkOrders(search): %v", err)
	}
	if len(bySearch) != 1 || bySearch[0].TurboCode != "K03-052" {
		t.Fatalf("search filter returned wrong rows")
	}
	if bySearch[0].HasTurboWarning || bySearch[0].HasCarWarning {
		t.Errorf("unexpected warning flags on unflagged order")
	}
}

func TestUpdateWorkOrderAppliesOnlySuppliedFields(t *testing.T) {
	setupTestDatabase(t)
	ctx := context.Background()

	client := createTestClient(t, ctx, "+36209998877")
	order, err := models.CreateWorkOrder(ctx, &models.NewWorkOrder{
		ClientId:  client.ID,
		TurboCode: "GT1544V",
		CarMake:   "Audi",
	})
	if err != nil {
		t.Fatalf("CreateWorkOrder: %v", err)
	}

	status := models.WorkStatusWorking
	notes := "Lapátkerék sérült"
	updated, err := models.UpdateWorkOrder(ctx, order.ID, &models.UpdateWorkOrderInput{
		Status:       &status,
		GeneralNotes: &notes,
	})
	if err != nil {
		t.Fatalf("UpdateWorkOrder: %v", err)
	}

	if updated.Status != models.WorkStatusWorking {
		t.Errorf("status: got %s, want WORKING", updated.Status)
	}
	if updated.GeneralNotes != notes {
		t.Errorf("general notes not applied")
	}
	// Untouched fields keep their values.
	if updated.CarMake != "Audi" {
		t.Errorf("car make changed unexpectedly: %q", updated.CarMake)
	}
	if updated.WorkSequence != order.WorkSequence || updated.WorkNumber != order.WorkNumber {
		t.Errorf("numbering changed on update: %d/%q", updated.WorkSequence, updated.WorkNumber)
	}

	bad := models.WorkStatus("BOGUS")
	if _, err := models.UpdateWorkOrder(ctx, order.ID, &models.UpdateWorkOrderInput{Status: &bad}); err == nil {
		t.Errorf("invalid status should be rejected")
	}
}

func TestRenumberRepairsOutOfOrderSequences(t *testing.T) {
	setupTestDatabase(t)
	ctx := context.Background()

	client := createTestClient(t, ctx, "+36205550000")

	var orders []*models.WorkOrder
	for _, code := range []string{"GT2256V", "HX35W", "TD04L"} {
		order, err := models.CreateWorkOrder(ctx, &models.NewWorkOrder{
			ClientId:  client.ID,
			TurboCode: code,
		})
		if err != nil {
			t.Fatalf("CreateWorkOrder(%s): %v", code, err)
		}
		orders = append(orders, order)
	}

	// A legacy import left the stored numbering disagreeing with creation
	// order: the oldest row holds the highest sequence.
	db := config.GetDB()
	scrambled := []int{5, 1, 3}
	for i, order := range orders {
		err := db.Exec(
			"UPDATE work_orders SET work_sequence = ?, work_number = ? WHERE id = ?",
			scrambled[i], models.FormatWorkNumber(scrambled[i]), order.ID,
		).Error
		if err != nil {
			t.Fatalf("scramble order %d: %v", i, err)
		}
	}

	if err := models.RenumberAllWorkOrders(ctx); err != nil {
		t.Fatalf("RenumberAllWorkOrders: %v", err)
	}

	for i, order := range orders {
		got, err := models.GetWorkOrder(ctx, order.ID)
		if err != nil {
			t.Fatalf("GetWorkOrder(%d): %v", i, err)
		}
		wantSeq := i + 1
		if got.WorkSequence != wantSeq || got.WorkNumber != models.FormatWorkNumber(wantSeq) {
			t.Errorf("order %d: got %d/%q, want %d/%q",
				i, got.WorkSequence, got.WorkNumber, wantSeq, models.FormatWorkNumber(wantSeq))
		}
	}
}
