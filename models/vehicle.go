package models

import (
	"context"
	"errors"
	"time"

	"github.com/turboszerviz/turbo_backend/config"
	"github.com/turboszerviz/turbo_backend/utils"
)

type Vehicle struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	ClientId     string    `gorm:"size:36;index;not null" json:"client_id"`
	Make         string    `gorm:"size:100" json:"make"`
	Model        string    `gorm:"size:100" json:"model"`
	Year         *int      `json:"year"`
	LicensePlate string    `gorm:"size:20" json:"license_plate"`
	Vin          string    `gorm:"size:50" json:"vin"`
	EngineCode   string    `gorm:"size:50" json:"engine_code"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type NewVehicle struct {
	ClientId     string `json:"client_id" binding:"required,notblank"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         *int   `json:"year"`
	LicensePlate string `json:"license_plate"`
	Vin          string `json:"vin"`
	EngineCode   string `json:"engine_code"`
}

func CreateVehicle(ctx context.Context, input *NewVehicle) (*Vehicle, error) {

	if err := utils.ValidateResourceId[Client](ctx, input.ClientId); err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			return nil, utils.NotFoundError("client not found")
		}
		return nil, err
	}

	vehicle := Vehicle{
		ID:           NewId(),
		ClientId:     input.ClientId,
		Make:         input.Make,
		Model:        input.Model,
		Year:         input.Year,
		LicensePlate: input.LicensePlate,
		Vin:          input.Vin,
		EngineCode:   input.EngineCode,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// ListVehicles returns all vehicles, optionally scoped to a client.
func ListVehicles(ctx context.Context, clientId string) ([]*Vehicle, error) {

	db := config.GetDB().WithContext(ctx).Model(&Vehicle{})
	if clientId != "" {
		db = db.Where("client_id = ?", clientId)
	}

	var vehicles []*Vehicle
	if err := db.Order("created_at DESC").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}
