package models

import (
	"context"
	"errors"
	"time"

	"github.com/turboszerviz/turbo_backend/config"
	"github.com/turboszerviz/turbo_backend/utils"
)

type CarMake struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type CarModel struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	MakeId       string     `gorm:"size:36;index:idx_car_models_make_name,unique;not null" json:"make_id"`
	Name         string     `gorm:"size:100;index:idx_car_models_make_name,unique;not null" json:"name"`
	EngineCodes  StringList `gorm:"type:json" json:"engine_codes"`
	CommonTurbos StringList `gorm:"type:json" json:"common_turbos"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

type NewCarMake struct {
	Name string `json:"name" binding:"required,notblank"`
}

type NewCarModel struct {
	MakeId       string     `json:"make_id" binding:"required,notblank"`
	Name         string     `json:"name" binding:"required,notblank"`
	EngineCodes  StringList `json:"engine_codes"`
	CommonTurbos StringList `json:"common_turbos"`
}

func CreateCarMake(ctx context.Context, input *NewCarMake) (*CarMake, error) {

	if err := utils.ValidateUnique[CarMake](ctx, "name", input.Name, ""); err != nil {
		return nil, errors.New("car make already exists")
	}

	carMake := CarMake{ID: NewId(), Name: input.Name}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&carMake).Error; err != nil {
		return nil, err
	}
	return &carMake, nil
}

func ListCarMakes(ctx context.Context) ([]*CarMake, error) {
	return utils.FetchAllModels[CarMake](ctx, "name ASC")
}

func CreateCarModel(ctx context.Context, input *NewCarModel) (*CarModel, error) {

	if err := utils.ValidateResourceId[CarMake](ctx, input.MakeId); err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			return nil, utils.NotFoundError("car make not found")
		}
		return nil, err
	}

	db := config.GetDB()
	var count int64
	err := db.WithContext(ctx).Model(&CarModel{}).
		Where("make_id = ? AND name = ?", input.MakeId, input.Name).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("car model already exists for this make")
	}

	carModel := CarModel{
		ID:           NewId(),
		MakeId:       input.MakeId,
		Name:         input.Name,
		EngineCodes:  input.EngineCodes,
		CommonTurbos: input.CommonTurbos,
	}
	if err := db.WithContext(ctx).Create(&carModel).Error; err != nil {
		return nil, err
	}
	return &carModel, nil
}

func ListCarModels(ctx context.Context, makeId string) ([]*CarModel, error) {

	db := config.GetDB()
	var carModels []*CarModel
	err := db.WithContext(ctx).
		Where("make_id = ?", makeId).
		Order("name ASC").
		Find(&carModels).Error
	if err != nil {
		return nil, err
	}
	return carModels, nil
}
