package models

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/turboszerviz/turbo_backend/config"
)

var defaultCarMakes = []string{
	"BMW", "Audi", "Mercedes-Benz", "Volkswagen", "Ford",
	"Peugeot", "Renault", "Opel", "Citroen", "Skoda",
}

var defaultWorkProcesses = []WorkProcess{
	{Name: "Szétszerelés", Category: "Disassembly", EstimatedTime: 60, BasePrice: decimal.NewFromInt(80)},
	{Name: "Tisztítás", Category: "Cleaning", EstimatedTime: 90, BasePrice: decimal.NewFromInt(120)},
	{Name: "Diagnosztika", Category: "Diagnosis", EstimatedTime: 45, BasePrice: decimal.NewFromInt(60)},
	{Name: "Alkatrész csere", Category: "Repair", EstimatedTime: 120, BasePrice: decimal.NewFromInt(150)},
	{Name: "Összeszerelés", Category: "Assembly", EstimatedTime: 90, BasePrice: decimal.NewFromInt(100)},
	{Name: "Tesztelés", Category: "Testing", EstimatedTime: 30, BasePrice: decimal.NewFromInt(40)},
}

var defaultTurboParts = []TurboPart{
	{Category: "C.H.R.A", PartCode: "1303-090-400", Supplier: "Melett", Price: decimal.NewFromInt(450)},
	{Category: "C.H.R.A", PartCode: "1303-090-401", Supplier: "Vallion", Price: decimal.NewFromInt(420)},
	{Category: "GEO", PartCode: "5306-016-071-0001", Supplier: "Melett", Price: decimal.NewFromInt(85)},
	{Category: "GEO", PartCode: "5306-016-072-0001", Supplier: "Vallion", Price: decimal.NewFromInt(80)},
	{Category: "ACT", PartCode: "2061-016-006", Supplier: "Melett", Price: decimal.NewFromInt(120)},
	{Category: "ACT", PartCode: "2061-016-007", Supplier: "Vallion", Price: decimal.NewFromInt(115)},
	{Category: "SET.GAR", PartCode: "K7-110690", Supplier: "Melett", Price: decimal.NewFromInt(25)},
	{Category: "SET.GAR", PartCode: "K7-110691", Supplier: "Vallion", Price: decimal.NewFromInt(22)},
}

var defaultPartTypes = []string{
	"Ansamblu central (CHRA)",
	"Geometria",
	"Set garnitura",
	"Nozle Ring Cage",
}

var defaultSuppliers = []string{"Melett", "Vallion", "Cer"}

var defaultInventoryItems = []InventoryItem{
	{Name: "Geometria", Code: "GEO-001", Category: "turbo_parts", CurrentStock: 5, MinStock: 2, Unit: "db", PurchasePrice: decimal.NewFromInt(85)},
	{Name: "C.H.R.A", Code: "CHRA-001", Category: "turbo_parts", CurrentStock: 3, MinStock: 1, Unit: "db", PurchasePrice: decimal.NewFromInt(450)},
	{Name: "Aktuátor", Code: "ACT-001", Category: "turbo_parts", CurrentStock: 8, MinStock: 3, Unit: "db", PurchasePrice: decimal.NewFromInt(120)},
	{Name: "Javító készlet", Code: "SET-001", Category: "turbo_parts", CurrentStock: 15, MinStock: 5, Unit: "db", PurchasePrice: decimal.NewFromInt(25)},
	{Name: "Tisztítószer", Code: "CLEAN-001", Category: "consumables", CurrentStock: 2, MinStock: 1, Unit: "liter", PurchasePrice: decimal.NewFromInt(15)},
}

// SeedBaseData inserts the default car makes, work processes, turbo parts,
// part types and suppliers. Existing rows are left untouched, so the
// endpoint is safe to call repeatedly.
func SeedBaseData(ctx context.Context) error {
	db := config.GetDB().WithContext(ctx)

	for _, name := range defaultCarMakes {
		var count int64
		if err := db.Model(&CarMake{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&CarMake{ID: NewId(), Name: name}).Error; err != nil {
				return err
			}
		}
	}

	for _, seed := range defaultWorkProcesses {
		var count int64
		if err := db.Model(&WorkProcess{}).Where("name = ?", seed.Name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			process := seed
			process.ID = NewId()
			process.Active = true
			if err := db.Create(&process).Error; err != nil {
				return err
			}
		}
	}

	for _, seed := range defaultTurboParts {
		var count int64
		if err := db.Model(&TurboPart{}).Where("part_code = ?", seed.PartCode).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			part := seed
			part.ID = NewId()
			part.InStock = true
			if err := db.Create(&part).Error; err != nil {
				return err
			}
		}
	}

	for _, name := range defaultPartTypes {
		var count int64
		if err := db.Model(&PartType{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&PartType{ID: NewId(), Name: name}).Error; err != nil {
				return err
			}
		}
	}

	for _, name := range defaultSuppliers {
		var count int64
		if err := db.Model(&Supplier{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&Supplier{ID: NewId(), Name: name}).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// SeedDefaultInventoryItems inserts the default warehouse items, skipping
// codes that already exist. Returns the number of items created.
func SeedDefaultInventoryItems(ctx context.Context) (int, error) {
	db := config.GetDB().WithContext(ctx)

	created := 0
	for _, seed := range defaultInventoryItems {
		var count int64
		if err := db.Model(&InventoryItem{}).Where("code = ?", seed.Code).Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}
		item := seed
		item.ID = NewId()
		item.MaxStock = 1000
		item.Active = true
		if err := db.Create(&item).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
