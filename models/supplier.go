package models

import (
	"context"
	"errors"
	"time"

	"github.com/turboszerviz/turbo_backend/config"
	"github.com/turboszerviz/turbo_backend/utils"
)

type Supplier struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type NewSupplier struct {
	Name string `json:"name" binding:"required,notblank"`
}

func CreateSupplier(ctx context.Context, input *NewSupplier) (*Supplier, error) {

	if err := utils.ValidateUnique[Supplier](ctx, "name", input.Name, ""); err != nil {
		return nil, errors.New("supplier already exists")
	}

	supplier := Supplier{ID: NewId(), Name: input.Name}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&supplier).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func ListSuppliers(ctx context.Context) ([]*Supplier, error) {
	return utils.FetchAllModels[Supplier](ctx, "name ASC")
}

func UpdateSupplier(ctx context.Context, id string, input *NewSupplier) (*Supplier, error) {

	supplier, err := utils.FetchModel[Supplier](ctx, id)
	if err != nil {
		return nil, utils.NotFoundError("supplier not found")
	}

	if input.Name != supplier.Name {
		if err := utils.ValidateUnique[Supplier](ctx, "name", input.Name, supplier.ID); err != nil {
			return nil, errors.New("supplier already exists")
		}
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(supplier).Update("Name", input.Name).Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[Supplier](ctx, id)
}

// DeleteSupplier refuses while any part still references the supplier.
func DeleteSupplier(ctx context.Context, id string) error {

	supplier, err := utils.FetchModel[Supplier](ctx, id)
	if err != nil {
		return utils.NotFoundError("supplier not found")
	}

	count, err := utils.ResourceCountWhere[Part](ctx, "supplier_id = ?", supplier.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("supplier is in use")
	}

	db := config.GetDB()
	return db.WithContext(ctx).Where("id = ?", supplier.ID).Delete(&Supplier{}).Error
}
