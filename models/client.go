package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/turboszerviz/turbo_backend/config"
	"github.com/turboszerviz/turbo_backend/utils"
)

type Client struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Phone       string    `gorm:"size:50;uniqueIndex;not null" json:"phone"`
	Email       string    `gorm:"size:255" json:"email"`
	Address     string    `gorm:"size:500" json:"address"`
	CompanyName string    `gorm:"size:255" json:"company_name"`
	TaxNumber   string    `gorm:"size:50" json:"tax_number"`
	Notes       string    `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewClient struct {
	Name        string `json:"name" binding:"required,notblank"`
	Phone       string `json:"phone" binding:"required,notblank"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	CompanyName string `json:"company_name"`
	TaxNumber   string `json:"tax_number"`
	Notes       string `json:"notes"`
}

type UpdateClientInput struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	CompanyName *string `json:"company_name"`
	TaxNumber   *string `json:"tax_number"`
	Notes       *string `json:"notes"`
}

func CreateClient(ctx context.Context, input *NewClient) (*Client, error) {

	if err := utils.ValidateUnique[Client](ctx, "phone", input.Phone, ""); err != nil {
		return nil, errors.New("client with this phone already exists")
	}

	client := Client{
		ID:          NewId(),
		Name:        input.Name,
		Phone:       input.Phone,
		Email:       input.Email,
		Address:     input.Address,
		CompanyName: input.CompanyName,
		TaxNumber:   input.TaxNumber,
		Notes:       input.Notes,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// GetClient is read-through cached: client records ride along on every
// work order fetch and document render.
func GetClient(ctx context.Context, id string) (*Client, error) {
	result, err := GetResource[Client](ctx, id)
	if err != nil {
		return nil, utils.NotFoundError("client not found")
	}
	return result, nil
}

func ListClients(ctx context.Context, search string) ([]*Client, error) {

	db := config.GetDB().WithContext(ctx).Model(&Client{})
	if strings.TrimSpace(search) != "" {
		pattern := "%" + strings.TrimSpace(search) + "%"
		db = db.Where("name LIKE ? OR phone LIKE ? OR company_name LIKE ?",
			pattern, pattern, pattern)
	}

	var clients []*Client
	if err := db.Order("name ASC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func UpdateClient(ctx context.Context, id string, input *UpdateClientInput) (*Client, error) {

	client, err := GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Phone != nil && *input.Phone != client.Phone {
		if err := utils.ValidateUnique[Client](ctx, "phone", *input.Phone, client.ID); err != nil {
			return nil, errors.New("client with this phone already exists")
		}
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["Name"] = *input.Name
	}
	if input.Phone != nil {
		updates["Phone"] = *input.Phone
	}
	if input.Email != nil {
		updates["Email"] = *input.Email
	}
	if input.Address != nil {
		updates["Address"] = *input.Address
	}
	if input.CompanyName != nil {
		updates["CompanyName"] = *input.CompanyName
	}
	if input.TaxNumber != nil {
		updates["TaxNumber"] = *input.TaxNumber
	}
	if input.Notes != nil {
		updates["Notes"] = *input.Notes
	}
	if len(updates) == 0 {
		return client, nil
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(client).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := utils.RemoveRedis[Client](id); err != nil {
		return nil, err
	}
	return GetClient(ctx, id)
}
