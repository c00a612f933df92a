package portal

import "time"

// UserType is the closed role enum; it never changes without a re-login.
type UserType string

const (
	UserTypePatient UserType = "patient"
	UserTypeDoctor  UserType = "doctor"
)

// User is the authenticated identity held by a Session.
type User struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Type           UserType `json:"type"`
	Specialization string   `json:"specialization,omitempty"`
	Phone          string   `json:"phone,omitempty"`
}

type Medicine struct {
	ID                   int     `json:"id"`
	Name                 string  `json:"name"`
	GenericName          string  `json:"generic_name"`
	Uses                 string  `json:"uses"`
	Manufacturer         string  `json:"manufacturer"`
	PrescriptionRequired bool    `json:"prescription_required"`
	Price                float64 `json:"price"`
	ImageURL             string  `json:"image_url"`
}

type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// OrderRequest is the payload sent at checkout.
type OrderRequest struct {
	UserID    string      `json:"userId"`
	Medicines []OrderItem `json:"medicines"`
	Shop      string      `json:"shop"`
	Address   string      `json:"address"`
	Phone     string      `json:"phone"`
	Total     float64     `json:"total"`
	Symptoms  string      `json:"symptoms,omitempty"`
}

type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Medicines []OrderItem `json:"medicines"`
	Shop      string      `json:"shop"`
	Address   string      `json:"address"`
	Phone     string      `json:"phone"`
	Total     float64     `json:"total"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

type Consultation struct {
	ID                 int       `json:"id"`
	OrderID            string    `json:"orderId"`
	UserID             string    `json:"userId"`
	DoctorID           string    `json:"doctorId,omitempty"`
	Status             string    `json:"status"`
	Symptoms           string    `json:"symptoms,omitempty"`
	Diagnosis          string    `json:"diagnosis,omitempty"`
	Medicines          []string  `json:"medicines,omitempty"`
	DosageInstructions string    `json:"dosageInstructions,omitempty"`
	Notes              string    `json:"notes,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// ConsultationUpdate carries the fields a doctor may change; nil means leave
// untouched.
type ConsultationUpdate struct {
	Status             *string  `json:"status,omitempty"`
	Diagnosis          *string  `json:"diagnosis,omitempty"`
	Medicines          []string `json:"medicines,omitempty"`
	DosageInstructions *string  `json:"dosageInstructions,omitempty"`
	Notes              *string  `json:"notes,omitempty"`
	DoctorID           *string  `json:"doctorId,omitempty"`
}

type Notification struct {
	ID             string    `json:"_id"`
	UserID         string    `json:"userId"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Read           bool      `json:"read"`
	ConsultationID int       `json:"consultationId,omitempty"`
	OrderID        string    `json:"orderId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NotificationList is one fetch of a user's notifications plus the unread
// counter the server maintains.
type NotificationList struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}

type Shop struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Distance     string  `json:"distance"`
	Rating       float64 `json:"rating"`
	Address      string  `json:"address"`
	Phone        string  `json:"phone"`
	OpenNow      bool    `json:"openNow"`
	DeliveryTime string  `json:"deliveryTime"`
}

// SymptomAnalysis is the AI triage result.
type SymptomAnalysis struct {
	IsValidHealthQuery bool       `json:"isValidHealthQuery"`
	NeedsClarification bool       `json:"needsClarification"`
	Analysis           string     `json:"analysis"`
	Severity           *string    `json:"severity"`
	FollowUpQuestions  []string   `json:"followUpQuestions"`
	Recommendations    []string   `json:"recommendations"`
	SuggestedMedicines []Medicine `json:"suggestedMedicines"`
	DoctorConsultation *string    `json:"doctorConsultation"`
	UrgencyLevel       *string    `json:"urgencyLevel"`
}

type Health struct {
	Status           string `json:"status"`
	MedicinesLoaded  bool   `json:"medicinesLoaded"`
	TotalMedicines   int    `json:"totalMedicines"`
	MongoDBConnected bool   `json:"mongodbConnected"`
}
