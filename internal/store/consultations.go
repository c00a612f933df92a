package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healbridge/telehealth-api/internal/models"
)

func (s *Store) CreateConsultation(ctx context.Context, c *models.Consultation) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.MongoID.IsZero() {
		c.MongoID = primitive.NewObjectID()
	}
	_, err := s.consultations().InsertOne(ctx, c)
	return err
}

func (s *Store) ConsultationsByUser(ctx context.Context, userID string, limit int64) ([]models.Consultation, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cursor, err := s.consultations().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	consultations := []models.Consultation{}
	if err := cursor.All(ctx, &consultations); err != nil {
		return nil, err
	}
	return consultations, nil
}

// PendingConsultations lists unhandled consultations, oldest first, so
// doctors work the queue in arrival order.
func (s *Store) PendingConsultations(ctx context.Context, limit int64) ([]models.Consultation, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}).SetLimit(limit)
	cursor, err := s.consultations().Find(ctx, bson.M{"status": "pending"}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	consultations := []models.Consultation{}
	if err := cursor.All(ctx, &consultations); err != nil {
		return nil, err
	}
	return consultations, nil
}

// UpdateConsultation applies the given field set and returns the updated document.
func (s *Store) UpdateConsultation(ctx context.Context, id int, set bson.M) (*models.Consultation, error) {
	set["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c models.Consultation
	err := s.consultations().
		FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).
		Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) CountConsultations(ctx context.Context) (int64, error) {
	return s.consultations().CountDocuments(ctx, bson.M{})
}
