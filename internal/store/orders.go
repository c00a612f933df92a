package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healbridge/telehealth-api/internal/models"
)

func (s *Store) CreateOrder(ctx context.Context, o *models.Order) error {
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	if o.MongoID.IsZero() {
		o.MongoID = primitive.NewObjectID()
	}
	_, err := s.orders().InsertOne(ctx, o)
	return err
}

func (s *Store) OrdersByUser(ctx context.Context, userID string, limit int64) ([]models.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cursor, err := s.orders().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Store) CountOrders(ctx context.Context) (int64, error) {
	return s.orders().CountDocuments(ctx, bson.M{})
}
