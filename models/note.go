package models

import (
	"context"
	"errors"
	"time"

	"github.com/turboszerviz/turbo_backend/config"
)

// TurboNote is a standing warning attached to a turbo code. Active notes
// surface as warning flags on work order listings.
type TurboNote struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	TurboCode   string    `gorm:"size:100;index;not null" json:"turbo_code"`
	NoteType    NoteType  `gorm:"size:20" json:"note_type"`
	Title       string    `gorm:"size:255" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedBy   string    `gorm:"size:100" json:"created_by"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// CarNote is the same idea keyed by make and model.
type CarNote struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	CarMake     string    `gorm:"size:100;index:idx_car_notes_make_model;not null" json:"car_make"`
	CarModel    string    `gorm:"size:100;index:idx_car_notes_make_model;not null" json:"car_model"`
	EngineCode  string    `gorm:"size:50" json:"engine_code"`
	NoteType    NoteType  `gorm:"size:20" json:"note_type"`
	Title       string    `gorm:"size:255" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedBy   string    `gorm:"size:100" json:"created_by"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type NewTurboNote struct {
	TurboCode   string   `json:"turbo_code" binding:"required,notblank"`
	NoteType    NoteType `json:"note_type"`
	Title       string   `json:"title" binding:"required,notblank"`
	Description string   `json:"description"`
	CreatedBy   string   `json:"created_by"`
}

type NewCarNote struct {
	CarMake     string   `json:"car_make" binding:"required,notblank"`
	CarModel    string   `json:"car_model" binding:"required,notblank"`
	EngineCode  string   `json:"engine_code"`
	NoteType    NoteType `json:"note_type"`
	Title       string   `json:"title" binding:"required,notblank"`
	Description string   `json:"description"`
	CreatedBy   string   `json:"created_by"`
}

func CreateTurboNote(ctx context.Context, input *NewTurboNote) (*TurboNote, error) {

	noteType := input.NoteType
	if noteType == "" {
		noteType = NoteTypeInfo
	}
	if !noteType.IsValid() {
		return nil, errors.New("invalid note type")
	}

	note := TurboNote{
		ID:          NewId(),
		TurboCode:   input.TurboCode,
		NoteType:    noteType,
		Title:       input.Title,
		Description: input.Description,
		CreatedBy:   input.CreatedBy,
		Active:      true,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// ListTurboNotes returns the active notes for a turbo code, newest first.
func ListTurboNotes(ctx context.Context, turboCode string) ([]*TurboNote, error) {

	db := config.GetDB()
	var notes []*TurboNote
	err := db.WithContext(ctx).
		Where("turbo_code = ? AND active", turboCode).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func CreateCarNote(ctx context.Context, input *NewCarNote) (*CarNote, error) {

	noteType := input.NoteType
	if noteType == "" {
		noteType = NoteTypeInfo
	}
	if !noteType.IsValid() {
		return nil, errors.New("invalid note type")
	}

	note := CarNote{
		ID:          NewId(),
		CarMake:     input.CarMake,
		CarModel:    input.CarModel,
		EngineCode:  input.EngineCode,
		NoteType:    noteType,
		Title:       input.Title,
		Description: input.Description,
		CreatedBy:   input.CreatedBy,
		Active:      true,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// ListCarNotes returns the active notes for a make and model, newest first.
func ListCarNotes(ctx context.Context, carMake, carModel string) ([]*CarNote, error) {

	db := config.GetDB()
	var notes []*CarNote
	err := db.WithContext(ctx).
		Where("car_make = ? AND car_model = ? AND active", carMake, carModel).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}
