package models

import (
	"context"
	"database/sql/driver"
	"time"

	"github.com/turboszerviz/turbo_backend/config"
	"github.com/turboszerviz/turbo_backend/utils"
)

// TemplateConfig is a free-form configuration object stored as JSON.
type TemplateConfig map[string]interface{}

func (c TemplateConfig) Value() (driver.Value, error) {
	if c == nil {
		c = TemplateConfig{}
	}
	return jsonColumnValue(c)
}

func (c *TemplateConfig) Scan(value interface{}) error {
	return jsonColumnScan(c, value)
}

type WorksheetTemplate struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"size:100;default:custom" json:"category"`
	Config      TemplateConfig `gorm:"type:json" json:"config"`
	CreatedBy   string         `gorm:"size:100" json:"created_by"`
	IsPublic    bool           `gorm:"default:true" json:"is_public"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

type NewWorksheetTemplate struct {
	Name        string         `json:"name" binding:"required,notblank"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Config      TemplateConfig `json:"config"`
	CreatedBy   string         `json:"created_by"`
	IsPublic    *bool          `json:"is_public"`
}

type UpdateWorksheetTemplateInput struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Category    *string         `json:"category"`
	Config      *TemplateConfig `json:"config"`
	IsPublic    *bool           `json:"is_public"`
}

// WorksheetTemplateExport is the portable representation written by the
// export endpoint and accepted back by import.
type WorksheetTemplateExport struct {
	Name        string         `json:"name" binding:"required,notblank"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Config      TemplateConfig `json:"config"`
	ExportedAt  time.Time      `json:"exported_at"`
}

func CreateWorksheetTemplate(ctx context.Context, input *NewWorksheetTemplate) (*WorksheetTemplate, error) {

	template := WorksheetTemplate{
		ID:          NewId(),
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Config:      input.Config,
		CreatedBy:   input.CreatedBy,
		IsPublic:    true,
	}
	if template.Category == "" {
		template.Category = "custom"
	}
	if template.Config == nil {
		template.Config = TemplateConfig{}
	}
	if input.IsPublic != nil {
		template.IsPublic = *input.IsPublic
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}

func GetWorksheetTemplate(ctx context.Context, id string) (*WorksheetTemplate, error) {
	result, err := utils.FetchModel[WorksheetTemplate](ctx, id)
	if err != nil {
		return nil, utils.NotFoundError("worksheet template not found")
	}
	return result, nil
}

func ListWorksheetTemplates(ctx context.Context, category string) ([]*WorksheetTemplate, error) {

	db := config.GetDB().WithContext(ctx).Model(&WorksheetTemplate{})
	if category != "" {
		db = db.Where("category = ?", category)
	}

	var templates []*WorksheetTemplate
	if err := db.Order("created_at DESC").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func UpdateWorksheetTemplate(ctx context.Context, id string, input *UpdateWorksheetTemplateInput) (*WorksheetTemplate, error) {

	template, err := GetWorksheetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["Name"] = *input.Name
	}
	if input.Description != nil {
		updates["Description"] = *input.Description
	}
	if input.Category != nil {
		updates["Category"] = *input.Category
	}
	if input.Config != nil {
		updates["Config"] = *input.Config
	}
	if input.IsPublic != nil {
		updates["IsPublic"] = *input.IsPublic
	}
	if len(updates) == 0 {
		return template, nil
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(template).Updates(updates).Error; err != nil {
		return nil, err
	}
	return GetWorksheetTemplate(ctx, id)
}

func DeleteWorksheetTemplate(ctx context.Context, id string) error {

	template, err := GetWorksheetTemplate(ctx, id)
	if err != nil {
		return err
	}

	db := config.GetDB()
	return db.WithContext(ctx).Where("id = ?", template.ID).Delete(&WorksheetTemplate{}).Error
}

// ExportWorksheetTemplate builds the portable download payload.
func ExportWorksheetTemplate(ctx context.Context, id string) (*WorksheetTemplateExport, error) {

	template, err := GetWorksheetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	return &WorksheetTemplateExport{
		Name:        template.Name,
		Description: template.Description,
		Category:    template.Category,
		Config:      template.Config,
		ExportedAt:  time.Now().UTC(),
	}, nil
}

// ImportWorksheetTemplate stores an exported payload as a new template under
// the "imported" category.
func ImportWorksheetTemplate(ctx context.Context, payload *WorksheetTemplateExport) (*WorksheetTemplate, error) {

	template := WorksheetTemplate{
		ID:          NewId(),
		Name:        payload.Name,
		Description: payload.Description,
		Category:    "imported",
		Config:      payload.Config,
		CreatedBy:   "Import",
		IsPublic:    true,
	}
	if template.Config == nil {
		template.Config = TemplateConfig{}
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&template).Error; err != nil {
		return nil, err
	}
	return &template, nil
}
