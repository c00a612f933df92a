package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	MongoID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID             string             `bson:"id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	Password       string             `bson:"password" json:"-"` // bcrypt hash, never serialized
	Type           string             `bson:"type" json:"type"`  // "patient" or "doctor"
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Specialization string             `bson:"specialization,omitempty" json:"specialization,omitempty"`

	// Doctor registration fields; empty for patients.
	LicenseNumber       string     `bson:"licenseNumber,omitempty" json:"licenseNumber,omitempty"`
	HospitalAffiliation string     `bson:"hospitalAffiliation,omitempty" json:"hospitalAffiliation,omitempty"`
	YearsOfExperience   int        `bson:"yearsOfExperience,omitempty" json:"yearsOfExperience,omitempty"`
	LicenseCertificate  string     `bson:"licenseCertificate,omitempty" json:"licenseCertificate,omitempty"`
	LicenseFileName     string     `bson:"licenseFileName,omitempty" json:"licenseFileName,omitempty"`
	RegistrationStatus  string     `bson:"registrationStatus,omitempty" json:"registrationStatus,omitempty"` // pending, approved, rejected
	SubmittedAt         *time.Time `bson:"submittedAt,omitempty" json:"submittedAt,omitempty"`
	ReviewedAt          *time.Time `bson:"reviewedAt,omitempty" json:"reviewedAt,omitempty"`
	ReviewNotes         string     `bson:"reviewNotes,omitempty" json:"reviewNotes,omitempty"`

	CreatedAt time.Time `bson:"createdAt,omitempty" json:"-"`
	UpdatedAt time.Time `bson:"updatedAt,omitempty" json:"-"`
}
