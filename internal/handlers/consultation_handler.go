package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/healbridge/telehealth-api/internal/models"
	"github.com/healbridge/telehealth-api/internal/store"
)

func (h *Handler) GetUserConsultations(c *gin.Context) {
	consultations, err := h.Store.ConsultationsByUser(c.Request.Context(), c.Param("id"), 50)
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to list consultations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve consultations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"consultations": consultations})
}

// GetPendingConsultations lists the doctor work queue, oldest first.
func (h *Handler) GetPendingConsultations(c *gin.Context) {
	consultations, err := h.Store.PendingConsultations(c.Request.Context(), 50)
	if err != nil {
		h.Log.Error().Err(err).Msg("failed to list pending consultations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve consultations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"consultations": consultations})
}

type updateConsultationRequest struct {
	Status             *string  `json:"status"`
	Diagnosis          *string  `json:"diagnosis"`
	Medicines          []string `json:"medicines"`
	DosageInstructions *string  `json:"dosageInstructions"`
	Notes              *string  `json:"notes"`
	DoctorID           *string  `json:"doctorId"`
}

// UpdateConsultation lets a doctor record diagnosis and prescription details.
// Completing a consultation notifies the patient in-app and by SMS.
func (h *Handler) UpdateConsultation(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid consultation id"})
		return
	}

	var req updateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	set := bson.M{}
	if req.Status != nil {
		set["status"] = *req.Status
	}
	if req.Diagnosis != nil {
		set["diagnosis"] = *req.Diagnosis
	}
	if req.Medicines != nil {
		set["medicines"] = req.Medicines
	}
	if req.DosageInstructions != nil {
		set["dosageInstructions"] = *req.DosageInstructions
	}
	if req.Notes != nil {
		set["notes"] = *req.Notes
	}
	if req.DoctorID != nil {
		set["doctorId"] = *req.DoctorID
	}
	if len(set) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No update fields provided"})
		return
	}

	ctx := c.Request.Context()
	consultation, err := h.Store.UpdateConsultation(ctx, id, set)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Consultation not found"})
			return
		}
		h.Log.Error().Err(err).Int("consultation", id).Msg("update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update consultation"})
		return
	}

	if consultation.UserID != "" {
		diagnosis := "See details"
		if req.Diagnosis != nil && *req.Diagnosis != "" {
			diagnosis = *req.Diagnosis
		}
		if err := h.NotificationSvc.Notify(ctx, &models.Notification{
			UserID:         consultation.UserID,
			Type:           "consultation_completed",
			Title:          "Consultation Completed",
			Message:        fmt.Sprintf("Your consultation has been completed. Diagnosis: %s", diagnosis),
			ConsultationID: id,
		}); err != nil {
			h.Log.Error().Err(err).Msg("failed to notify patient")
		}

		if patient, err := h.Store.UserByID(ctx, consultation.UserID); err == nil && patient.Phone != "" {
			doctorName := "Your doctor"
			if consultation.DoctorID != "" {
				if doctor, err := h.Store.UserByID(ctx, consultation.DoctorID); err == nil {
					doctorName = doctor.Name
				}
			}
			diagnosis = truncateRunes(diagnosis, 80)
			h.NotificationSvc.SendSMS(patient.Phone, fmt.Sprintf(
				"HealthCare: Dr. %s completed your consultation. Diagnosis: %s. Login to view prescription & details.",
				doctorName, diagnosis))
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "consultation": consultation})
}
