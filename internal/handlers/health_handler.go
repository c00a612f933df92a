package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) HealthCheck(c *gin.Context) {
	mongoOK := h.Store.Ping(c.Request.Context()) == nil

	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"timestamp":        time.Now().UTC().Format(time.RFC3339),
		"medicinesLoaded":  h.Catalog.Len() > 0,
		"totalMedicines":   h.Catalog.Len(),
		"mongodbConnected": mongoOK,
	})
}
