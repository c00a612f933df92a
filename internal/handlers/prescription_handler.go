package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healbridge/telehealth-api/internal/models"
)

type createPrescriptionRequest struct {
	UserID    string   `json:"userId" binding:"required"`
	Doctor    string   `json:"doctor"`
	Medicines []string `json:"medicines"`
}

func (h *Handler) CreatePrescription(c *gin.Context) {
	var req createPrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctx := c.Request.Context()
	count, _ := h.Store.CountPrescriptions(ctx)
	prescription := models.Prescription{
		ID:        int(count) + 1,
		UserID:    req.UserID,
		Doctor:    req.Doctor,
		Medicines: req.Medicines,
		Status:    "active",
	}
	if err := h.Store.CreatePrescription(ctx, &prescription); err != nil {
		h.Log.Error().Err(err).Msg("failed to create prescription")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create prescription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "prescription": prescription})
}

func (h *Handler) GetUserPrescriptions(c *gin.Context) {
	prescriptions, err := h.Store.PrescriptionsByUser(c.Request.Context(), c.Param("userId"), 50)
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to list prescriptions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve prescriptions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"prescriptions": prescriptions})
}
