package models

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/turboszerviz/turbo_backend/config"
	"github.com/turboszerviz/turbo_backend/utils"
)

// TurboPart is a catalog entry offered on work orders, distinct from the
// warehouse inventory.
type TurboPart struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	Category  string          `gorm:"size:100;index" json:"category"`
	PartCode  string          `gorm:"size:100;uniqueIndex;not null" json:"part_code"`
	Supplier  string          `gorm:"size:100" json:"supplier"`
	Price     decimal.Decimal `gorm:"type:decimal(20,6)" json:"price"`
	InStock   bool            `gorm:"default:true" json:"in_stock"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewTurboPart struct {
	Category string          `json:"category" binding:"required,notblank"`
	PartCode string          `json:"part_code" binding:"required,notblank"`
	Supplier string          `json:"supplier"`
	Price    decimal.Decimal `json:"price"`
	InStock  *bool           `json:"in_stock"`
}

type UpdateTurboPartInput struct {
	Category *string          `json:"category"`
	PartCode *string          `json:"part_code"`
	Supplier *string          `json:"supplier"`
	Price    *decimal.Decimal `json:"price"`
	InStock  *bool            `json:"in_stock"`
}

func CreateTurboPart(ctx context.Context, input *NewTurboPart) (*TurboPart, error) {

	if err := utils.ValidateUnique[TurboPart](ctx, "part_code", input.PartCode, ""); err != nil {
		return nil, errors.New("part code already exists")
	}

	part := TurboPart{
		ID:       NewId(),
		Category: input.Category,
		PartCode: input.PartCode,
		Supplier: input.Supplier,
		Price:    input.Price,
		InStock:  true,
	}
	if input.InStock != nil {
		part.InStock = *input.InStock
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&part).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

func ListTurboParts(ctx context.Context, category string) ([]*TurboPart, error) {

	db := config.GetDB().WithContext(ctx).Model(&TurboPart{})
	if category != "" {
		db = db.Where("category = ?", category)
	}

	var parts []*TurboPart
	if err := db.Order("category ASC, part_code ASC").Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

func UpdateTurboPart(ctx context.Context, id string, input *UpdateTurboPartInput) (*TurboPart, error) {

	part, err := utils.FetchModel[TurboPart](ctx, id)
	if err != nil {
		return nil, utils.NotFoundError("turbo part not found")
	}

	if input.PartCode != nil && *input.PartCode != part.PartCode {
		if err := utils.ValidateUnique[TurboPart](ctx, "part_code", *input.PartCode, part.ID); err != nil {
			return nil, errors.New("part code already exists")
		}
	}

	updates := map[string]interface{}{}
	if input.Category != nil {
		updates["Category"] = *input.Category
	}
	if input.PartCode != nil {
		updates["PartCode"] = *input.PartCode
	}
	if input.Supplier != nil {
		updates["Supplier"] = *input.Supplier
	}
	if input.Price != nil {
		updates["Price"] = *input.Price
	}
	if input.InStock != nil {
		updates["InStock"] = *input.InStock
	}
	if len(updates) == 0 {
		return part, nil
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(part).Updates(updates).Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[TurboPart](ctx, id)
}

func DeleteTurboPart(ctx context.Context, id string) error {

	part, err := utils.FetchModel[TurboPart](ctx, id)
	if err != nil {
		return utils.NotFoundError("turbo part not found")
	}

	db := config.GetDB()
	return db.WithContext(ctx).Where("id = ?", part.ID).Delete(&TurboPart{}).Error
}
