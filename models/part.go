package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/turboszerviz/turbo_backend/config"
	"github.com/turboszerviz/turbo_backend/utils"
)

// Part is the typed parts register. It keeps its own simple quantity and
// ledger, separate from the warehouse inventory items.
type Part struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Code          string    `gorm:"size:100;uniqueIndex;not null" json:"code"`
	PartTypeId    string    `gorm:"size:36;index;not null" json:"part_type_id"`
	SupplierId    string    `gorm:"size:36;index;not null" json:"supplier_id"`
	Notes         string    `gorm:"type:text" json:"notes"`
	StockQuantity int       `gorm:"not null;default:0" json:"stock_quantity"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// StockMovement is the ledger for parts. Quantities stay positive; the
// direction lives in the movement type.
type StockMovement struct {
	ID           string       `gorm:"primaryKey;size:36" json:"id"`
	PartId       string       `gorm:"size:36;index;not null" json:"part_id"`
	MovementType MovementType `gorm:"size:20;not null" json:"movement_type"`
	Quantity     int          `gorm:"not null" json:"quantity"`
	Notes        string       `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time    `gorm:"autoCreateTime;index" json:"created_at"`
}

// PartWithDetails resolves the type and supplier names for listings.
type PartWithDetails struct {
	Part
	PartTypeName string `json:"part_type_name"`
	SupplierName string `json:"supplier_name"`
}

type NewPart struct {
	Code          string `json:"code" binding:"required,notblank"`
	PartTypeId    string `json:"part_type_id" binding:"required,notblank"`
	SupplierId    string `json:"supplier_id" binding:"required,notblank"`
	Notes         string `json:"notes"`
	StockQuantity int    `json:"stock_quantity" binding:"gte=0"`
}

type UpdatePartInput struct {
	Code       *string `json:"code"`
	PartTypeId *string `json:"part_type_id"`
	SupplierId *string `json:"supplier_id"`
	Notes      *string `json:"notes"`
}

type NewStockMovement struct {
	PartId       string       `json:"part_id" binding:"required,notblank"`
	MovementType MovementType `json:"movement_type" binding:"required"`
	Quantity     int          `json:"quantity" binding:"required,gt=0"`
	Notes        string       `json:"notes"`
}

func CreatePart(ctx context.Context, input *NewPart) (*Part, error) {

	if err := utils.ValidateResourceId[PartType](ctx, input.PartTypeId); err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			return nil, utils.NotFoundError("part type not found")
		}
		return nil, err
	}
	if err := utils.ValidateResourceId[Supplier](ctx, input.SupplierId); err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			return nil, utils.NotFoundError("supplier not found")
		}
		return nil, err
	}
	if err := utils.ValidateUnique[Part](ctx, "code", input.Code, ""); err != nil {
		return nil, errors.New("part code already exists")
	}

	part := Part{
		ID:            NewId(),
		Code:          input.Code,
		PartTypeId:    input.PartTypeId,
		SupplierId:    input.SupplierId,
		Notes:         input.Notes,
		StockQuantity: input.StockQuantity,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&part).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

// ListParts joins the type and supplier names; search matches the part code.
func ListParts(ctx context.Context, search string) ([]*PartWithDetails, error) {

	sql := `
	SELECT
		p.*,
		pt.name AS part_type_name,
		s.name AS supplier_name
	FROM parts p
	JOIN part_types pt ON pt.id = p.part_type_id
	JOIN suppliers s ON s.id = p.supplier_id
`
	args := []interface{}{}
	if strings.TrimSpace(search) != "" {
		sql += " WHERE p.code LIKE ?"
		args = append(args, "%"+strings.TrimSpace(search)+"%")
	}
	sql += " ORDER BY p.created_at DESC"

	db := config.GetDB()
	var parts []*PartWithDetails
	if err := db.WithContext(ctx).Raw(sql, args...).Scan(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

func UpdatePart(ctx context.Context, id string, input *UpdatePartInput) (*Part, error) {

	part, err := utils.FetchModel[Part](ctx, id)
	if err != nil {
		return nil, utils.NotFoundError("part not found")
	}

	if input.PartTypeId != nil {
		if err := utils.ValidateResourceId[PartType](ctx, *input.PartTypeId); err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				return nil, utils.NotFoundError("part type not found")
			}
			return nil, err
		}
	}
	if input.SupplierId != nil {
		if err := utils.ValidateResourceId[Supplier](ctx, *input.SupplierId); err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				return nil, utils.NotFoundError("supplier not found")
			}
			return nil, err
		}
	}
	if input.Code != nil && *input.Code != part.Code {
		if err := utils.ValidateUnique[Part](ctx, "code", *input.Code, part.ID); err != nil {
			return nil, errors.New("part code already exists")
		}
	}

	updates := map[string]interface{}{}
	if input.Code != nil {
		updates["Code"] = *input.Code
	}
	if input.PartTypeId != nil {
		updates["PartTypeId"] = *input.PartTypeId
	}
	if input.SupplierId != nil {
		updates["SupplierId"] = *input.SupplierId
	}
	if input.Notes != nil {
		updates["Notes"] = *input.Notes
	}
	if len(updates) == 0 {
		return part, nil
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(part).Updates(updates).Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[Part](ctx, id)
}

// DeletePart removes the part and its whole movement history in one
// transaction.
func DeletePart(ctx context.Context, id string) error {

	part, err := utils.FetchModel[Part](ctx, id)
	if err != nil {
		return utils.NotFoundError("part not found")
	}

	db := config.GetDB()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("part_id = ?", part.ID).Delete(&StockMovement{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", part.ID).Delete(&Part{}).Error
	})
}

// RecordStockMovement updates a part's quantity under a row lock. OUT
// movements are rejected when they would drive the quantity negative.
func RecordStockMovement(ctx context.Context, input *NewStockMovement) (*StockMovement, error) {

	if !input.MovementType.IsValidSimple() {
		return nil, errors.New("invalid movement type")
	}

	var movement *StockMovement
	db := config.GetDB()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var part Part
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.PartId).First(&part).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFoundError("part not found")
			}
			return err
		}

		newQuantity := part.StockQuantity
		if input.MovementType == MovementTypeIn {
			newQuantity += input.Quantity
		} else {
			newQuantity -= input.Quantity
			if newQuantity < 0 {
				return errors.New("insufficient stock")
			}
		}

		movement = &StockMovement{
			ID:           NewId(),
			PartId:       part.ID,
			MovementType: input.MovementType,
			Quantity:     input.Quantity,
			Notes:        input.Notes,
		}
		if err := tx.Create(movement).Error; err != nil {
			return err
		}
		return tx.Model(&part).Update("StockQuantity", newQuantity).Error
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// ListStockMovements returns a part's ledger, newest first.
func ListStockMovements(ctx context.Context, partId string) ([]*StockMovement, error) {

	if err := utils.ValidateResourceId[Part](ctx, partId); err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			return nil, utils.NotFoundError("part not found")
		}
		return nil, err
	}

	db := config.GetDB()
	var movements []*StockMovement
	err := db.WithContext(ctx).
		Where("part_id = ?", partId).
		Order("created_at DESC").
		Find(&movements).Error
	if err != nil {
		return nil, err
	}
	return movements, nil
}
