package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is one medicine line on an order.
type OrderItem struct {
	ID       string  `bson:"id" json:"id"`
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int     `bson:"quantity" json:"quantity"`
}

type Order struct {
	MongoID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ID              string             `bson:"id" json:"id"` // ORD-YYYYMMDD-NNN
	UserID          string             `bson:"userId" json:"userId"`
	Medicines       []OrderItem        `bson:"medicines" json:"medicines"`
	Shop            string             `bson:"shop" json:"shop"`
	Address         string             `bson:"address" json:"address"`
	Phone           string             `bson:"phone" json:"phone"`
	Total           float64            `bson:"total" json:"total"`
	Status          string             `bson:"status" json:"status"` // pending, confirmed, delivered
	DoctorConsulted bool               `bson:"doctorConsulted" json:"doctorConsulted"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
