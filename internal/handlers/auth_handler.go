package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/healbridge/telehealth-api/internal/models"
	"github.com/healbridge/telehealth-api/internal/store"
	"github.com/healbridge/telehealth-api/internal/utils"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Type     string `json:"type" binding:"required"` // "patient" or "doctor"
}

// Login checks credentials and the requested role, and for doctors also the
// registration review state.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request"})
		return
	}

	user, err := h.Store.UserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	if req.Type == "doctor" {
		switch user.RegistrationStatus {
		case "pending":
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Your account is pending admin approval. Please wait for verification.",
			})
			return
		case "rejected":
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Your registration was rejected. Please contact support.",
			})
			return
		}
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) || user.Type != req.Type {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Type)
	if err != nil {
		h.Log.Error().Err(err).Msg("could not generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user, "token": token})
}

type RegisterPatientRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone" binding:"required"`
}

func (h *Handler) RegisterPatient(c *gin.Context) {
	var req RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Store.UserByEmail(ctx, req.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email already registered"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create user"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password"})
		return
	}

	// App-level ids start at 100 to stay clear of the demo accounts.
	patientCount, _ := h.Store.CountUsersByType(ctx, "patient")
	user := models.User{
		ID:       intToID(patientCount + 100),
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Type:     "patient",
		Phone:    req.Phone,
	}
	if err := h.Store.CreateUser(ctx, &user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email already registered"})
			return
		}
		h.Log.Error().Err(err).Msg("patient registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Registration successful! You can now login.",
		"patientId": user.MongoID.Hex(),
	})
}

type RegisterDoctorRequest struct {
	Name                string `json:"name" binding:"required"`
	Email               string `json:"email" binding:"required,email"`
	Password            string `json:"password" binding:"required,min=8"`
	LicenseNumber       string `json:"licenseNumber" binding:"required"`
	Specialization      string `json:"specialization" binding:"required"`
	HospitalAffiliation string `json:"hospitalAffiliation"`
	Phone               string `json:"phone" binding:"required"`
	YearsOfExperience   int    `json:"yearsOfExperience"`
	LicenseCertificate  string `json:"licenseCertificate" binding:"required"`
	LicenseFileName     string `json:"licenseFileName" binding:"required"`
}

// RegisterDoctor files a registration that stays pending until an admin
// reviews it.
func (h *Handler) RegisterDoctor(c *gin.Context) {
	var req RegisterDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Store.UserByEmail(ctx, req.Email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email already registered"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create user"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password"})
		return
	}

	now := time.Now().UTC()
	doctor := models.User{
		Name:                req.Name,
		Email:               req.Email,
		Password:            hash,
		Type:                "doctor",
		LicenseNumber:       req.LicenseNumber,
		Specialization:      req.Specialization,
		HospitalAffiliation: req.HospitalAffiliation,
		Phone:               req.Phone,
		YearsOfExperience:   req.YearsOfExperience,
		LicenseCertificate:  req.LicenseCertificate,
		LicenseFileName:     req.LicenseFileName,
		RegistrationStatus:  "pending",
		SubmittedAt:         &now,
	}
	if err := h.Store.CreateUser(ctx, &doctor); err != nil {
		h.Log.Error().Err(err).Msg("doctor registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Registration submitted successfully. Please wait for admin approval.",
		"doctorId": doctor.MongoID.Hex(),
	})
}
