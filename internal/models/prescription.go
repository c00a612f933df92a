package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Prescription struct {
	MongoID    primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID         int                `bson:"id" json:"id"`
	UserID     string             `bson:"userId" json:"userId"`
	Doctor     string             `bson:"doctor" json:"doctor"`
	Medicines  []string           `bson:"medicines" json:"medicines"`
	Status     string             `bson:"status" json:"status"` // active, expired
	UploadDate time.Time          `bson:"uploadDate" json:"uploadDate"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
