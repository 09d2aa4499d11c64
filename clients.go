package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turboszerviz/turbo_backend/models"
)

func createClientHandler(c *gin.Context) {
	var input models.NewClient
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client, err := models.CreateClient(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func listClientsHandler(c *gin.Context) {
	clients, err := models.ListClients(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func getClientHandler(c *gin.Context) {
	client, err := models.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func updateClientHandler(c *gin.Context) {
	var input models.UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client, err := models.UpdateClient(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func createVehicleHandler(c *gin.Context) {
	var input models.NewVehicle
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vehicle, err := models.CreateVehicle(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func listVehiclesHandler(c *gin.Context) {
	vehicles, err := models.ListVehicles(c.Request.Context(), c.Query("client_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}
