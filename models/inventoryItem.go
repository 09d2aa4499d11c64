package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/turboszerviz/turbo_backend/config"
	"github.com/turboszerviz/turbo_backend/utils"
)

type InventoryItem struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Code          string          `gorm:"size:100;uniqueIndex;not null" json:"code"`
	Category      string          `gorm:"size:100;index;default:general" json:"category"`
	CurrentStock  int             `gorm:"not null;default:0" json:"current_stock"`
	MinStock      int             `gorm:"not null;default:0" json:"min_stock"`
	MaxStock      int             `gorm:"not null;default:1000" json:"max_stock"`
	Unit          string          `gorm:"size:20;default:db" json:"unit"`
	Location      string          `gorm:"size:100" json:"location"`
	Supplier      string          `gorm:"size:100" json:"supplier"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(20,6)" json:"purchase_price"`
	Notes         string          `gorm:"type:text" json:"notes"`
	Active        bool            `gorm:"default:true" json:"active"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// StockStatus is derived on read, never persisted.
func (i *InventoryItem) StockStatus() StockStatus {
	return StockStatusFor(i.CurrentStock, i.MinStock, i.MaxStock)
}

// InventoryItemWithStatus is the list/detail view: the item plus its derived
// status and a movement summary.
type InventoryItemWithStatus struct {
	InventoryItem
	StockStatus    StockStatus `json:"stock_status"`
	LastMovement   *time.Time  `json:"last_movement"`
	TotalMovements int64       `json:"total_movements"`
}

type NewInventoryItem struct {
	Name          string          `json:"name" binding:"required,notblank"`
	Code          string          `json:"code" binding:"required,notblank"`
	Category      string          `json:"category"`
	CurrentStock  int             `json:"current_stock" binding:"gte=0"`
	MinStock      int             `json:"min_stock" binding:"gte=0"`
	MaxStock      *int            `json:"max_stock"`
	Unit          string          `json:"unit"`
	Location      string          `json:"location"`
	Supplier      string          `json:"supplier"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Notes         string          `json:"notes"`
}

// UpdateInventoryItemInput cannot touch current_stock; stock only moves
// through recorded movements so the ledger stays complete.
type UpdateInventoryItemInput struct {
	Name          *string          `json:"name"`
	Code          *string          `json:"code"`
	Category      *string          `json:"category"`
	MinStock      *int             `json:"min_stock"`
	MaxStock      *int             `json:"max_stock"`
	Unit          *string          `json:"unit"`
	Location      *string          `json:"location"`
	Supplier      *string          `json:"supplier"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	Notes         *string          `json:"notes"`
	Active        *bool            `json:"active"`
}

type InventoryItemFilter struct {
	Category     string
	Search       string
	LowStockOnly bool
}

func CreateInventoryItem(ctx context.Context, input *NewInventoryItem) (*InventoryItem, error) {

	if err := utils.ValidateUnique[InventoryItem](ctx, "code", input.Code, ""); err != nil {
		return nil, errors.New("item code already exists")
	}

	item := InventoryItem{
		ID:            NewId(),
		Name:          input.Name,
		Code:          input.Code,
		Category:      input.Category,
		CurrentStock:  input.CurrentStock,
		MinStock:      input.MinStock,
		MaxStock:      1000,
		Unit:          input.Unit,
		Location:      input.Location,
		Supplier:      input.Supplier,
		PurchasePrice: input.PurchasePrice,
		Notes:         input.Notes,
		Active:        true,
	}
	if item.Category == "" {
		item.Category = "general"
	}
	if item.Unit == "" {
		item.Unit = "db"
	}
	if input.MaxStock != nil {
		item.MaxStock = *input.MaxStock
	}

	db := config.GetDB()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		// A non-zero opening stock gets its own ledger row so the history
		// explains the balance from day one.
		if item.CurrentStock > 0 {
			movement := InventoryMovement{
				ID:           NewId(),
				ItemId:       item.ID,
				MovementType: MovementTypeIn,
				Quantity:     item.CurrentStock,
				StockBefore:  0,
				StockAfter:   item.CurrentStock,
				Reason:       "Kezdő készlet",
				CreatedBy:    "System",
			}
			return tx.Create(&movement).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func GetInventoryItem(ctx context.Context, id string) (*InventoryItem, error) {
	result, err := utils.FetchModel[InventoryItem](ctx, id)
	if err != nil {
		return nil, utils.NotFoundError("inventory item not found")
	}
	return result, nil
}

// GetInventoryItemWithStatus loads an item together with its derived status
// and movement summary.
func GetInventoryItemWithStatus(ctx context.Context, id string) (*InventoryItemWithStatus, error) {

	item, err := GetInventoryItem(ctx, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB().WithContext(ctx)
	view := InventoryItemWithStatus{InventoryItem: *item, StockStatus: item.StockStatus()}

	err = db.Model(&InventoryMovement{}).
		Where("item_id = ?", item.ID).Count(&view.TotalMovements).Error
	if err != nil {
		return nil, err
	}
	if view.TotalMovements > 0 {
		var last time.Time
		err = db.Model(&InventoryMovement{}).
			Where("item_id = ?", item.ID).
			Select("MAX(created_at)").Scan(&last).Error
		if err != nil {
			return nil, err
		}
		view.LastMovement = &last
	}
	return &view, nil
}

// ListInventoryItems returns active items with their derived status and
// movement summaries, folded into one grouped query. The low-stock filter
// is applied after the scan because the status is derived, not stored.
func ListInventoryItems(ctx context.Context, filter *InventoryItemFilter) ([]*InventoryItemWithStatus, error) {

	sql := `
	SELECT
		i.*,
		COUNT(m.id) AS total_movements,
		MAX(m.created_at) AS last_movement
	FROM inventory_items i
	LEFT JOIN inventory_movements m ON m.item_id = i.id
	WHERE i.active
`
	args := make([]interface{}, 0, 3)
	if filter.Category != "" {
		sql += " AND i.category = ?"
		args = append(args, filter.Category)
	}
	if strings.TrimSpace(filter.Search) != "" {
		pattern := "%" + strings.TrimSpace(filter.Search) + "%"
		sql += " AND (i.name LIKE ? OR i.code LIKE ?)"
		args = append(args, pattern, pattern)
	}
	sql += " GROUP BY i.id ORDER BY i.name ASC"

	db := config.GetDB()
	var rows []*InventoryItemWithStatus
	if err := db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	results := make([]*InventoryItemWithStatus, 0, len(rows))
	for _, row := range rows {
		row.StockStatus = row.InventoryItem.StockStatus()
		if filter.LowStockOnly &&
			row.StockStatus != StockStatusLow && row.StockStatus != StockStatusCritical {
			continue
		}
		results = append(results, row)
	}
	return results, nil
}

func UpdateInventoryItem(ctx context.Context, id string, input *UpdateInventoryItemInput) (*InventoryItem, error) {

	item, err := GetInventoryItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Code != nil && *input.Code != item.Code {
		if err := utils.ValidateUnique[InventoryItem](ctx, "code", *input.Code, item.ID); err != nil {
			return nil, errors.New("item code already exists")
		}
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["Name"] = *input.Name
	}
	if input.Code != nil {
		updates["Code"] = *input.Code
	}
	if input.Category != nil {
		updates["Category"] = *input.Category
	}
	if input.MinStock != nil {
		updates["MinStock"] = *input.MinStock
	}
	if input.MaxStock != nil {
		updates["MaxStock"] = *input.MaxStock
	}
	if input.Unit != nil {
		updates["Unit"] = *input.Unit
	}
	if input.Location != nil {
		updates["Location"] = *input.Location
	}
	if input.Supplier != nil {
		updates["Supplier"] = *input.Supplier
	}
	if input.PurchasePrice != nil {
		updates["PurchasePrice"] = *input.PurchasePrice
	}
	if input.Notes != nil {
		updates["Notes"] = *input.Notes
	}
	if input.Active != nil {
		updates["Active"] = *input.Active
	}
	if len(updates) == 0 {
		return item, nil
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(item).Updates(updates).Error; err != nil {
		return nil, err
	}
	return GetInventoryItem(ctx, id)
}

// DeleteInventoryItem deactivates the item. The movement history is kept;
// an inactive item simply disappears from listings and exports.
func DeleteInventoryItem(ctx context.Context, id string) error {

	item, err := GetInventoryItem(ctx, id)
	if err != nil {
		return err
	}

	db := config.GetDB()
	return db.WithContext(ctx).Model(item).Update("Active", false).Error
}
