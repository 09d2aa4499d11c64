package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turboszerviz/turbo_backend/models"
)

func createCarMakeHandler(c *gin.Context) {
	var input models.NewCarMake
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	carMake, err := models.CreateCarMake(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, carMake)
}

func listCarMakesHandler(c *gin.Context) {
	carMakes, err := models.ListCarMakes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, carMakes)
}

func createCarModelHandler(c *gin.Context) {
	var input models.NewCarModel
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	carModel, err := models.CreateCarModel(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, carModel)
}

func listCarModelsHandler(c *gin.Context) {
	carModels, err := models.ListCarModels(c.Request.Context(), c.Param("make_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, carModels)
}

func createTurboNoteHandler(c *gin.Context) {
	var input models.NewTurboNote
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	note, err := models.CreateTurboNote(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func listTurboNotesHandler(c *gin.Context) {
	notes, err := models.ListTurboNotes(c.Request.Context(), c.Param("turbo_code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func createCarNoteHandler(c *gin.Context) {
	var input models.NewCarNote
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	note, err := models.CreateCarNote(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func listCarNotesHandler(c *gin.Context) {
	notes, err := models.ListCarNotes(c.Request.Context(), c.Param("make"), c.Param("model"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func createWorkProcessHandler(c *gin.Context) {
	var input models.NewWorkProcess
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	process, err := models.CreateWorkProcess(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, process)
}

func listWorkProcessesHandler(c *gin.Context) {
	processes, err := models.ListWorkProcesses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, processes)
}

func updateWorkProcessHandler(c *gin.Context) {
	var input models.UpdateWorkProcessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	process, err := models.UpdateWorkProcess(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, process)
}

func deleteWorkProcessHandler(c *gin.Context) {
	if err := models.DeleteWorkProcess(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Munkafolyamat deaktiválva"})
}

func createTurboPartHandler(c *gin.Context) {
	var input models.NewTurboPart
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	part, err := models.CreateTurboPart(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

func listTurboPartsHandler(c *gin.Context) {
	parts, err := models.ListTurboParts(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, parts)
}

func updateTurboPartHandler(c *gin.Context) {
	var input models.UpdateTurboPartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	part, err := models.UpdateTurboPart(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

func deleteTurboPartHandler(c *gin.Context) {
	if err := models.DeleteTurboPart(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Alkatrész törölve"})
}

func initializeDataHandler(c *gin.Context) {
	if err := models.SeedBaseData(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Alapadatok inicializálva"})
}
