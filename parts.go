package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turboszerviz/turbo_backend/models"
)

func createPartTypeHandler(c *gin.Context) {
	var input models.NewPartType
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	partType, err := models.CreatePartType(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, partType)
}

func listPartTypesHandler(c *gin.Context) {
	partTypes, err := models.ListPartTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, partTypes)
}

func updatePartTypeHandler(c *gin.Context) {
	var input models.NewPartType
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	partType, err := models.UpdatePartType(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, partType)
}

func deletePartTypeHandler(c *gin.Context) {
	if err := models.DeletePartType(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Alkatrésztípus törölve"})
}

func createSupplierHandler(c *gin.Context) {
	var input models.NewSupplier
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	supplier, err := models.CreateSupplier(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func listSuppliersHandler(c *gin.Context) {
	suppliers, err := models.ListSuppliers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func updateSupplierHandler(c *gin.Context) {
	var input models.NewSupplier
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	supplier, err := models.UpdateSupplier(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func deleteSupplierHandler(c *gin.Context) {
	if err := models.DeleteSupplier(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Beszállító törölve"})
}

func createPartHandler(c *gin.Context) {
	var input models.NewPart
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	part, err := models.CreatePart(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

func listPartsHandler(c *gin.Context) {
	parts, err := models.ListParts(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, parts)
}

func updatePartHandler(c *gin.Context) {
	var input models.UpdatePartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	part, err := models.UpdatePart(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

func deletePartHandler(c *gin.Context) {
	if err := models.DeletePart(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Alkatrész és mozgástörténete törölve"})
}

func createStockMovementHandler(c *gin.Context) {
	var input models.NewStockMovement
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	movement, err := models.RecordStockMovement(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movement)
}

func listStockMovementsHandler(c *gin.Context) {
	movements, err := models.ListStockMovements(c.Request.Context(), c.Param("part_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, movements)
}
