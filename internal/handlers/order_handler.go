package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/healbridge/telehealth-api/internal/models"
)

type createOrderRequest struct {
	UserID    string             `json:"userId" binding:"required"`
	Medicines []models.OrderItem `json:"medicines" binding:"required"`
	Shop      string             `json:"shop"`
	Address   string             `json:"address" binding:"required"`
	Phone     string             `json:"phone" binding:"required"`
	Total     float64            `json:"total"`
	Symptoms  string             `json:"symptoms"`
}

// CreateOrder stores the order, opens a pending consultation for it and
// notifies every doctor.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctx := c.Request.Context()
	orderCount, _ := h.Store.CountOrders(ctx)
	order := models.Order{
		ID:        fmt.Sprintf("ORD-%s-%03d", time.Now().Format("20060102"), orderCount+1),
		UserID:    req.UserID,
		Medicines: req.Medicines,
		Shop:      req.Shop,
		Address:   req.Address,
		Phone:     req.Phone,
		Total:     req.Total,
		Status:    "pending",
	}
	if err := h.Store.CreateOrder(ctx, &order); err != nil {
		h.Log.Error().Err(err).Msg("failed to create order")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create order"})
		return
	}

	consultationCount, _ := h.Store.CountConsultations(ctx)
	consultation := models.Consultation{
		ID:       int(consultationCount) + 1,
		OrderID:  order.ID,
		UserID:   req.UserID,
		Status:   "pending",
		Symptoms: req.Symptoms,
	}
	if err := h.Store.CreateConsultation(ctx, &consultation); err != nil {
		h.Log.Error().Err(err).Str("order", order.ID).Msg("failed to create consultation")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create consultation"})
		return
	}

	preview := truncateRunes(req.Symptoms, 50)
	h.NotificationSvc.NotifyDoctors(ctx,
		models.Notification{
			Type:           "new_consultation",
			Title:          "New Consultation Request",
			Message:        fmt.Sprintf("A new consultation request has been submitted for symptoms: %s...", preview),
			ConsultationID: consultation.ID,
			OrderID:        order.ID,
		},
		fmt.Sprintf("HealthCare: New patient consultation request. Symptoms: %s... Login to respond.", preview),
	)

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order, "consultation": consultation})
}

func (h *Handler) GetUserOrders(c *gin.Context) {
	orders, err := h.Store.OrdersByUser(c.Request.Context(), c.Param("userId"), 50)
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to list orders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
