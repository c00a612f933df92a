package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/healbridge/telehealth-api/internal/store"
)

// doctorRegistration is the admin-facing view of a doctor account. The id is
// a 1-based position in the listing; the Mongo id rides along for updates.
type doctorRegistration struct {
	ID                  int    `json:"id"`
	MongoID             string `json:"_mongoId"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	LicenseNumber       string `json:"licenseNumber"`
	Specialization      string `json:"specialization"`
	HospitalAffiliation string `json:"hospitalAffiliation"`
	Phone               string `json:"phone"`
	YearsOfExperience   int    `json:"yearsOfExperience"`
	LicenseCertificate  string `json:"licenseCertificate"`
	LicenseFileName     string `json:"licenseFileName"`
	Status              string `json:"status"`
	SubmittedAt         any    `json:"submittedAt"`
	ReviewedAt          any    `json:"reviewedAt"`
	ReviewNotes         string `json:"reviewNotes"`
}

func (h *Handler) GetDoctorRegistrations(c *gin.Context) {
	doctors, err := h.Store.Doctors(c.Request.Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("could not list doctor registrations")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load registrations"})
		return
	}

	registrations := make([]doctorRegistration, 0, len(doctors))
	for i, d := range doctors {
		status := d.RegistrationStatus
		if status == "" {
			status = "approved" // legacy accounts predate the review flow
		}
		registrations = append(registrations, doctorRegistration{
			ID:                  i + 1,
			MongoID:             d.MongoID.Hex(),
			Name:                d.Name,
			Email:               d.Email,
			LicenseNumber:       d.LicenseNumber,
			Specialization:      d.Specialization,
			HospitalAffiliation: d.HospitalAffiliation,
			Phone:               d.Phone,
			YearsOfExperience:   d.YearsOfExperience,
			LicenseCertificate:  d.LicenseCertificate,
			LicenseFileName:     d.LicenseFileName,
			Status:              status,
			SubmittedAt:         d.SubmittedAt,
			ReviewedAt:          d.ReviewedAt,
			ReviewNotes:         d.ReviewNotes,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "registrations": registrations})
}

type reviewRequest struct {
	Status      string `json:"status"`
	ReviewNotes string `json:"reviewNotes"`
}

// ReviewDoctorRegistration approves or rejects a registration by its 1-based
// listing position.
func (h *Handler) ReviewDoctorRegistration(c *gin.Context) {
	doctorID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid doctor id"})
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}
	if req.Status != "approved" && req.Status != "rejected" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid status"})
		return
	}

	ctx := c.Request.Context()
	doctors, err := h.Store.Doctors(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load registrations"})
		return
	}
	if doctorID < 1 || doctorID > len(doctors) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Doctor not found"})
		return
	}

	doctor := doctors[doctorID-1]
	if err := h.Store.ReviewDoctor(ctx, doctor.MongoID, req.Status, req.ReviewNotes); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Doctor not found"})
			return
		}
		h.Log.Error().Err(err).Str("doctor", doctor.Email).Msg("review update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update registration"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Doctor registration %s successfully", req.Status),
	})
}
