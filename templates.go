package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turboszerviz/turbo_backend/models"
)

func createWorksheetTemplateHandler(c *gin.Context) {
	var input models.NewWorksheetTemplate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	template, err := models.CreateWorksheetTemplate(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func listWorksheetTemplatesHandler(c *gin.Context) {
	templates, err := models.ListWorksheetTemplates(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

func getWorksheetTemplateHandler(c *gin.Context) {
	template, err := models.GetWorksheetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func updateWorksheetTemplateHandler(c *gin.Context) {
	var input models.UpdateWorksheetTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	template, err := models.UpdateWorksheetTemplate(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}

func deleteWorksheetTemplateHandler(c *gin.Context) {
	if err := models.DeleteWorksheetTemplate(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sablon törölve"})
}

// exportWorksheetTemplateHandler serves the template as a JSON download.
func exportWorksheetTemplateHandler(c *gin.Context) {
	payload, err := models.ExportWorksheetTemplate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=sablon_%s.json", payload.Name))
	c.JSON(http.StatusOK, payload)
}

func importWorksheetTemplateHandler(c *gin.Context) {
	var payload models.WorksheetTemplateExport
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	template, err := models.ImportWorksheetTemplate(c.Request.Context(), &payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, template)
}
