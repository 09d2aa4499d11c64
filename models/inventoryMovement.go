package models

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/turboszerviz/turbo_backend/config"
	"github.com/turboszerviz/turbo_backend/utils"
)

// InventoryMovement is one row of the stock ledger. OUT movements store the
// quantity negated, so summing Quantity over an item reproduces its balance.
// Rows are append-only; there is no update or delete path.
type InventoryMovement struct {
	ID           string       `gorm:"primaryKey;size:36" json:"id"`
	ItemId       string       `gorm:"size:36;index;not null" json:"item_id"`
	MovementType MovementType `gorm:"size:20;not null" json:"movement_type"`
	Quantity     int          `gorm:"not null" json:"quantity"`
	StockBefore  int          `gorm:"not null" json:"stock_before"`
	StockAfter   int          `gorm:"not null" json:"stock_after"`
	Reason       string       `gorm:"size:255" json:"reason"`
	Reference    string       `gorm:"size:100" json:"reference"`
	Notes        string       `gorm:"type:text" json:"notes"`
	CreatedBy    string       `gorm:"size:100;default:System" json:"created_by"`
	CreatedAt    time.Time    `gorm:"autoCreateTime;index" json:"created_at"`
}

type NewInventoryMovement struct {
	ItemId       string       `json:"item_id" binding:"required,notblank"`
	MovementType MovementType `json:"movement_type" binding:"required"`
	Quantity     int          `json:"quantity" binding:"required"`
	Reason       string       `json:"reason"`
	Reference    string       `json:"reference"`
	Notes        string       `json:"notes"`
}

type InventoryMovementFilter struct {
	ItemId       string
	MovementType MovementType
	Limit        int
}

// RecordInventoryMovement applies a stock change atomically. The item row is
// locked FOR UPDATE for the span of the transaction, so concurrent movements
// on the same item serialize and each ledger row carries consistent
// before/after snapshots.
func RecordInventoryMovement(ctx context.Context, input *NewInventoryMovement) (*InventoryMovement, error) {

	if !input.MovementType.IsValid() {
		return nil, errors.New("invalid movement type")
	}
	if input.MovementType == MovementTypeAdjustment {
		if input.Quantity == 0 {
			return nil, errors.New("quantity must not be zero")
		}
	} else if input.Quantity <= 0 {
		return nil, errors.New("quantity must be positive")
	}

	var movement *InventoryMovement
	db := config.GetDB()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var item InventoryItem
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.ItemId).First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("inventory item not found")
			}
			return err
		}

		signedQuantity := input.Quantity
		if input.MovementType == MovementTypeOut {
			signedQuantity = -signedQuantity
		}

		stockBefore := item.CurrentStock
		stockAfter := stockBefore + signedQuantity
		if stockAfter < 0 {
			return errors.New("insufficient stock")
		}

		movement = &InventoryMovement{
			ID:           NewId(),
			ItemId:       item.ID,
			MovementType: input.MovementType,
			Quantity:     signedQuantity,
			StockBefore:  stockBefore,
			StockAfter:   stockAfter,
			Reason:       input.Reason,
			Reference:    input.Reference,
			Notes:        input.Notes,
			CreatedBy:    "System",
		}
		if err := tx.Create(movement).Error; err != nil {
			return err
		}
		return tx.Model(&item).Update("CurrentStock", stockAfter).Error
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// ListInventoryMovements returns ledger rows, newest first.
func ListInventoryMovements(ctx context.Context, filter *InventoryMovementFilter) ([]*InventoryMovement, error) {

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	db := config.GetDB().WithContext(ctx).Model(&InventoryMovement{})
	if filter.ItemId != "" {
		db = db.Where("item_id = ?", filter.ItemId)
	}
	if filter.MovementType != "" {
		db = db.Where("movement_type = ?", filter.MovementType)
	}

	var movements []*InventoryMovement
	err := db.Order("created_at DESC").Limit(limit).Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}

// InventoryDashboard is the shop-floor summary widget payload.
type InventoryDashboard struct {
	TotalItems      int64           `json:"total_items"`
	LowStockItems   int64           `json:"low_stock_items"`
	OutOfStockItems int64           `json:"out_of_stock_items"`
	RecentMovements int64           `json:"recent_movements"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	LastUpdated     time.Time       `json:"last_updated"`
}

// GetInventoryDashboard aggregates the headline numbers over active items:
// counts at or under minimum, counts at zero, movements over the trailing
// 7 days and the purchase-price valuation of everything on the shelf.
func GetInventoryDashboard(ctx context.Context) (*InventoryDashboard, error) {

	db := config.GetDB().WithContext(ctx)
	dashboard := InventoryDashboard{
		TotalStockValue: decimal.Zero,
		LastUpdated:     time.Now().UTC(),
	}

	err := db.Model(&InventoryItem{}).Where("active").
		Count(&dashboard.TotalItems).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&InventoryItem{}).
		Where("active AND current_stock <= min_stock").
		Count(&dashboard.LowStockItems).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&InventoryItem{}).
		Where("active AND current_stock <= 0").
		Count(&dashboard.OutOfStockItems).Error
	if err != nil {
		return nil, err
	}

	weekAgo := time.Now().UTC().AddDate(0, 0, -7)
	err = db.Model(&InventoryMovement{}).
		Where("created_at >= ?", weekAgo).
		Count(&dashboard.RecentMovements).Error
	if err != nil {
		return nil, err
	}

	var totalValue decimal.NullDecimal
	err = db.Model(&InventoryItem{}).Where("active").
		Select("SUM(current_stock * purchase_price)").Scan(&totalValue).Error
	if err != nil {
		return nil, err
	}
	if totalValue.Valid {
		dashboard.TotalStockValue = totalValue.Decimal
	}
	return &dashboard, nil
}
