package models

import (
	"log"

	"github.com/turboszerviz/turbo_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Client{}, &Vehicle{},
		&CarMake{}, &CarModel{},
		&TurboNote{}, &CarNote{},
		&WorkProcess{}, &TurboPart{},
		&WorkOrder{},
		&InventoryItem{}, &InventoryMovement{},
		&PartType{}, &Supplier{}, &Part{}, &StockMovement{},
		&WorksheetTemplate{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
