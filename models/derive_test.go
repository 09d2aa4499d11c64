package models_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/turboszerviz/turbo_backend/models"
)

func TestFormatWorkNumber(t *testing.T) {
	cases := []struct {
		sequence int
		want     string
	}{
		{1, "00001"},
		{42, "00042"},
		{99999, "99999"},
		{123456, "123456"},
	}
	for _, tc := range cases {
		if got := models.FormatWorkNumber(tc.sequence); got != tc.want {
			t.Errorf("FormatWorkNumber(%d) = %q, want %q", tc.sequence, got, tc.want)
		}
	}
}

func TestCarInfo(t *testing.T) {
	year := 2015
	cases := []struct {
		name     string
		carMake  string
		carModel string
		carYear  *int
		want     string
	}{
		{"make model year", "BMW", "320d", &year, "BMW 320d (2015)"},
		{"no year", "Audi", "A4", nil, "Audi A4"},
		{"model only", "", "Octavia", nil, "Octavia"},
		{"empty", "", "", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := models.CarInfo(tc.carMake, tc.carModel, tc.carYear); got != tc.want {
				t.Errorf("CarInfo(%q, %q) = %q, want %q", tc.carMake, tc.carModel, got, tc.want)
			}
		})
	}
}

func TestStockStatusPriority(t *testing.T) {
	cases := []struct {
		name             string
		current, min, max int
		want             models.StockStatus
	}{
		{"zero is critical", 0, 5, 100, models.StockStatusCritical},
		{"negative guard", -1, 5, 100, models.StockStatusCritical},
		{"at minimum is low", 5, 5, 100, models.StockStatusLow},
		{"under minimum is low", 3, 5, 100, models.StockStatusLow},
		{"at maximum is overstock", 100, 5, 100, models.StockStatusOverstock},
		{"normal", 50, 5, 100, models.StockStatusOk},
		// critical wins over low when both apply
		{"critical beats low", 0, 5, 100, models.StockStatusCritical},
		// min >= max: low wins over overstock
		{"low beats overstock", 5, 5, 5, models.StockStatusLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := models.StockStatusFor(tc.current, tc.min, tc.max)
			if got != tc.want {
				t.Errorf("StockStatusFor(%d, %d, %d) = %s, want %s", tc.current, tc.min, tc.max, got, tc.want)
			}
		})
	}
}

func TestWorkOrderTotalAmount(t *testing.T) {
	order := models.WorkOrder{
		CleaningPrice:       decimal.NewFromInt(170),
		ReconditioningPrice: decimal.NewFromInt(170),
		TurboPrice:          decimal.NewFromInt(240),
	}
	if !order.TotalAmount().Equal(decimal.NewFromInt(580)) {
		t.Errorf("TotalAmount() = %s, want 580", order.TotalAmount())
	}
}

func TestMovementTypeValidation(t *testing.T) {
	if !models.MovementTypeAdjustment.IsValid() {
		t.Errorf("ADJUSTMENT should be valid for inventory movements")
	}
	if models.MovementTypeAdjustment.IsValidSimple() {
		t.Errorf("ADJUSTMENT should not be valid for part stock movements")
	}
	if !models.MovementTypeIn.IsValidSimple() || !models.MovementTypeOut.IsValidSimple() {
		t.Errorf("IN and OUT should be valid for part stock movements")
	}
	if models.MovementType("BOGUS").IsValid() {
		t.Errorf("unknown movement type should be invalid")
	}
}

func TestWorkStatusValidation(t *testing.T) {
	for _, s := range []models.WorkStatus{
		models.WorkStatusDraft, models.WorkStatusReceived, models.WorkStatusWorking,
		models.WorkStatusDelivered, models.WorkStatusFinalized,
	} {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if models.WorkStatus("UNKNOWN").IsValid() {
		t.Errorf("UNKNOWN should be invalid")
	}
}
