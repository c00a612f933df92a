package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notification struct {
	MongoID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID         string             `bson:"userId" json:"userId"`
	Type           string             `bson:"type" json:"type"` // new_consultation, consultation_completed, ...
	Title          string             `bson:"title" json:"title"`
	Message        string             `bson:"message" json:"message"`
	Read           bool               `bson:"read" json:"read"`
	ConsultationID int                `bson:"consultationId,omitempty" json:"consultationId,omitempty"`
	OrderID        string             `bson:"orderId,omitempty" json:"orderId,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	ReadAt         *time.Time         `bson:"readAt,omitempty" json:"readAt,omitempty"`
}
