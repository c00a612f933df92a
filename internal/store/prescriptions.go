package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healbridge/telehealth-api/internal/models"
)

func (s *Store) CreatePrescription(ctx context.Context, p *models.Prescription) error {
	now := time.Now().UTC()
	p.UploadDate = now
	p.CreatedAt = now
	if p.MongoID.IsZero() {
		p.MongoID = primitive.NewObjectID()
	}
	_, err := s.prescriptions().InsertOne(ctx, p)
	return err
}

func (s *Store) PrescriptionsByUser(ctx context.Context, userID string, limit int64) ([]models.Prescription, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().SetSort(bson.D{{Key: "uploadDate", Value: -1}}).SetLimit(limit)
	cursor, err := s.prescriptions().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	prescriptions := []models.Prescription{}
	if err := cursor.All(ctx, &prescriptions); err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (s *Store) CountPrescriptions(ctx context.Context) (int64, error) {
	return s.prescriptions().CountDocuments(ctx, bson.M{})
}
