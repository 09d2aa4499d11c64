package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turboszerviz/turbo_backend/models"
)

func createWorkOrderHandler(c *gin.Context) {
	var input models.NewWorkOrder
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	workOrder, err := models.CreateWorkOrder(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workOrder)
}

func listWorkOrdersHandler(c *gin.Context) {
	var status *models.WorkStatus
	if v := c.Query("status"); v != "" {
		s := models.WorkStatus(v)
		status = &s
	}
	var clientId *string
	if v := c.Query("client_id"); v != "" {
		clientId = &v
	}
	var search *string
	if v := c.Query("search"); v != "" {
		search = &v
	}

	workOrders, err := models.ListWorkOrders(c.Request.Context(), status, clientId, search)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workOrders)
}

func getWorkOrderHandler(c *gin.Context) {
	workOrder, err := models.GetWorkOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workOrder)
}

func updateWorkOrderHandler(c *gin.Context) {
	var input models.UpdateWorkOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	workOrder, err := models.UpdateWorkOrder(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workOrder)
}

func deleteWorkOrderHandler(c *gin.Context) {
	if err := models.DeleteWorkOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Munkalap törölve, sorszámok újraszámozva"})
}

func finalizeWorkOrderHandler(c *gin.Context) {
	workOrder, err := models.FinalizeWorkOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workOrder)
}

func unfinalizeWorkOrderHandler(c *gin.Context) {
	workOrder, err := models.UnfinalizeWorkOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, workOrder)
}
