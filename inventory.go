package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/turboszerviz/turbo_backend/config"
	"github.com/turboszerviz/turbo_backend/models"
)

func createInventoryItemHandler(c *gin.Context) {
	var input models.NewInventoryItem
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := models.CreateInventoryItem(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func listInventoryItemsHandler(c *gin.Context) {
	filter := models.InventoryItemFilter{
		Category:     c.Query("category"),
		Search:       c.Query("search"),
		LowStockOnly: c.Query("low_stock_only") == "true",
	}
	items, err := models.ListInventoryItems(c.Request.Context(), &filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func getInventoryItemHandler(c *gin.Context) {
	item, err := models.GetInventoryItemWithStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func updateInventoryItemHandler(c *gin.Context) {
	var input models.UpdateInventoryItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item, err := models.UpdateInventoryItem(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func deleteInventoryItemHandler(c *gin.Context) {
	if err := models.DeleteInventoryItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Alkatrész deaktiválva"})
}

func createInventoryMovementHandler(c *gin.Context) {
	var input models.NewInventoryMovement
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	movement, err := models.RecordInventoryMovement(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movement)
}

func listInventoryMovementsHandler(c *gin.Context) {
	filter := models.InventoryMovementFilter{
		ItemId:       c.Query("item_id"),
		MovementType: models.MovementType(c.Query("movement_type")),
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	movements, err := models.ListInventoryMovements(c.Request.Context(), &filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movements)
}

func inventoryDashboardHandler(c *gin.Context) {
	dashboard, err := models.GetInventoryDashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

var inventoryExportHeaders = []string{
	"Kód", "Megnevezés", "Kategória", "Készlet", "Egység",
	"Min. készlet", "Max. készlet", "Státusz", "Beszerzési ár", "Készletérték",
}

// inventoryExportHandler streams the active items as an xlsx workbook.
func inventoryExportHandler(c *gin.Context) {
	items, err := models.ListInventoryItems(c.Request.Context(), &models.InventoryItemFilter{})
	if err != nil {
		respondError(c, err)
		return
	}

	logger := config.GetLogger()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			config.LogError(logger, "inventory", "inventoryExportHandler", "closing workbook", nil, err)
		}
	}()

	const sheet = "Készlet"
	f.SetSheetName("Sheet1", sheet)
	for col, header := range inventoryExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			respondError(c, err)
			return
		}
	}

	for i, item := range items {
		stockValue := item.PurchasePrice.Mul(decimal.NewFromInt(int64(item.CurrentStock)))
		row := []interface{}{
			item.Code, item.Name, item.Category, item.CurrentStock, item.Unit,
			item.MinStock, item.MaxStock, string(item.StockStatus),
			item.PurchasePrice.InexactFloat64(), stockValue.InexactFloat64(),
		}
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				respondError(c, err)
				return
			}
		}
	}

	filename := fmt.Sprintf("keszlet_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		config.LogError(logger, "inventory", "inventoryExportHandler", "writing workbook", nil, err)
	}
}

func initializeDefaultInventoryHandler(c *gin.Context) {
	created, err := models.SeedDefaultInventoryItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%d alapértelmezett alkatrész hozzáadva", created)})
}
