package models

import (
	"context"
	"errors"
	"time"

	"github.com/turboszerviz/turbo_backend/config"
	"github.com/turboszerviz/turbo_backend/utils"
)

type PartType struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type NewPartType struct {
	Name string `json:"name" binding:"required,notblank"`
}

func CreatePartType(ctx context.Context, input *NewPartType) (*PartType, error) {

	if err := utils.ValidateUnique[PartType](ctx, "name", input.Name, ""); err != nil {
		return nil, errors.New("part type already exists")
	}

	partType := PartType{ID: NewId(), Name: input.Name}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&partType).Error; err != nil {
		return nil, err
	}
	return &partType, nil
}

func ListPartTypes(ctx context.Context) ([]*PartType, error) {
	return utils.FetchAllModels[PartType](ctx, "name ASC")
}

func UpdatePartType(ctx context.Context, id string, input *NewPartType) (*PartType, error) {

	partType, err := utils.FetchModel[PartType](ctx, id)
	if err != nil {
		return nil, utils.NotFoundError("part type not found")
	}

	if input.Name != partType.Name {
		if err := utils.ValidateUnique[PartType](ctx, "name", input.Name, partType.ID); err != nil {
			return nil, errors.New("part type already exists")
		}
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(partType).Update("Name", input.Name).Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[PartType](ctx, id)
}

// DeletePartType refuses while any part still references the type.
func DeletePartType(ctx context.Context, id string) error {

	partType, err := utils.FetchModel[PartType](ctx, id)
	if err != nil {
		return utils.NotFoundError("part type not found")
	}

	count, err := utils.ResourceCountWhere[Part](ctx, "part_type_id = ?", partType.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("part type is in use")
	}

	db := config.GetDB()
	return db.WithContext(ctx).Where("id = ?", partType.ID).Delete(&PartType{}).Error
}
