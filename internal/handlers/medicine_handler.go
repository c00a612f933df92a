package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/healbridge/telehealth-api/internal/models"
)

// SearchMedicines matches the query against name, generic name and disease.
func (h *Handler) SearchMedicines(c *gin.Context) {
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if query == "" {
		c.JSON(http.StatusOK, gin.H{"medicines": []models.Medicine{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"medicines": h.Catalog.Search(query, limit)})
}

// GetMedicine returns the detailed record for one catalog row.
func (h *Handler) GetMedicine(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid medicine id"})
		return
	}

	medicine, ok := h.Catalog.ByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medicine not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"medicine": medicine})
}

// GetMedicineUsages builds an AI information sheet for a catalog medicine,
// optionally translated.
func (h *Handler) GetMedicineUsages(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid medicine id"})
		return
	}
	medicine, ok := h.Catalog.ByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Medicine not found"})
		return
	}

	ctx := c.Request.Context()
	usages, err := h.AI.MedicineUsages(ctx, medicine.Name, medicine.GenericName, medicine.Composition, medicine.Disease)
	if err != nil {
		h.Log.Error().Err(err).Int("medicine", id).Msg("usages lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve medicine information"})
		return
	}
	usages = h.AI.TranslateUsages(ctx, usages, c.DefaultQuery("language", "English"))

	c.JSON(http.StatusOK, gin.H{"success": true, "medicine": medicine.Name, "usages": usages})
}

type usagesByNameRequest struct {
	MedicineName string `json:"medicineName"`
	GenericName  string `json:"genericName"`
	Dosage       string `json:"dosage"`
	Language     string `json:"language"`
}

// GetMedicineUsagesByName is the free-text variant for medicines outside the
// catalog.
func (h *Handler) GetMedicineUsagesByName(c *gin.Context) {
	var req usagesByNameRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.MedicineName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Medicine name is required"})
		return
	}

	ctx := c.Request.Context()
	usages, err := h.AI.MedicineUsagesByName(ctx, req.MedicineName, req.GenericName, req.Dosage)
	if err != nil {
		h.Log.Error().Err(err).Str("medicine", req.MedicineName).Msg("usages lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve medicine information"})
		return
	}
	usages = h.AI.TranslateUsages(ctx, usages, req.Language)

	c.JSON(http.StatusOK, gin.H{"success": true, "medicine": req.MedicineName, "usages": usages})
}

// GetAllMedicines pages through the catalog, optionally filtered.
func (h *Handler) GetAllMedicines(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	search := c.Query("search")

	medicines, total := h.Catalog.Page(page, perPage, search)
	c.JSON(http.StatusOK, gin.H{
		"medicines": medicines,
		"total":     total,
		"page":      page,
		"per_page":  perPage,
	})
}
