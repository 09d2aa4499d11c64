package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/turboszerviz/turbo_backend/config"
	"github.com/turboszerviz/turbo_backend/utils"
)

type WorkProcess struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Category      string          `gorm:"size:100;index" json:"category"`
	EstimatedTime int             `json:"estimated_time"`
	BasePrice     decimal.Decimal `gorm:"type:decimal(20,6)" json:"base_price"`
	Active        bool            `gorm:"default:true" json:"active"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

type NewWorkProcess struct {
	Name          string          `json:"name" binding:"required,notblank"`
	Category      string          `json:"category"`
	EstimatedTime int             `json:"estimated_time"`
	BasePrice     decimal.Decimal `json:"base_price"`
}

type UpdateWorkProcessInput struct {
	Name          *string          `json:"name"`
	Category      *string          `json:"category"`
	EstimatedTime *int             `json:"estimated_time"`
	BasePrice     *decimal.Decimal `json:"base_price"`
}

func CreateWorkProcess(ctx context.Context, input *NewWorkProcess) (*WorkProcess, error) {

	process := WorkProcess{
		ID:            NewId(),
		Name:          input.Name,
		Category:      input.Category,
		EstimatedTime: input.EstimatedTime,
		BasePrice:     input.BasePrice,
		Active:        true,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&process).Error; err != nil {
		return nil, err
	}
	return &process, nil
}

func ListWorkProcesses(ctx context.Context) ([]*WorkProcess, error) {

	db := config.GetDB()
	var processes []*WorkProcess
	err := db.WithContext(ctx).
		Where("active").
		Order("category ASC, name ASC").
		Find(&processes).Error
	if err != nil {
		return nil, err
	}
	return processes, nil
}

func UpdateWorkProcess(ctx context.Context, id string, input *UpdateWorkProcessInput) (*WorkProcess, error) {

	process, err := utils.FetchModel[WorkProcess](ctx, id)
	if err != nil {
		return nil, utils.NotFoundError("work process not found")
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["Name"] = *input.Name
	}
	if input.Category != nil {
		updates["Category"] = *input.Category
	}
	if input.EstimatedTime != nil {
		updates["EstimatedTime"] = *input.EstimatedTime
	}
	if input.BasePrice != nil {
		updates["BasePrice"] = *input.BasePrice
	}
	if len(updates) == 0 {
		return process, nil
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(process).Updates(updates).Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[WorkProcess](ctx, id)
}

// DeleteWorkProcess deactivates the process so finished work orders keep
// referencing it by name.
func DeleteWorkProcess(ctx context.Context, id string) error {

	process, err := utils.FetchModel[WorkProcess](ctx, id)
	if err != nil {
		return utils.NotFoundError("work process not found")
	}

	db := config.GetDB()
	return db.WithContext(ctx).Model(process).Update("Active", false).Error
}
