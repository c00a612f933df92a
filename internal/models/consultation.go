package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Consultation struct {
	MongoID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID                 int                `bson:"id" json:"id"`
	OrderID            string             `bson:"orderId" json:"orderId"`
	UserID             string             `bson:"userId" json:"userId"`
	DoctorID           string             `bson:"doctorId,omitempty" json:"doctorId,omitempty"`
	Status             string             `bson:"status" json:"status"` // pending, completed
	Symptoms           string             `bson:"symptoms,omitempty" json:"symptoms,omitempty"`
	Diagnosis          string             `bson:"diagnosis,omitempty" json:"diagnosis,omitempty"`
	Medicines          []string           `bson:"medicines,omitempty" json:"medicines,omitempty"`
	DosageInstructions string             `bson:"dosageInstructions,omitempty" json:"dosageInstructions,omitempty"`
	Notes              string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}
