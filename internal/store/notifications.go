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

func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) error {
	n.CreatedAt = time.Now().UTC()
	n.Read = false
	if n.MongoID.IsZero() {
		n.MongoID = primitive.NewObjectID()
	}
	_, err := s.notifications().InsertOne(ctx, n)
	return err
}

func (s *Store) NotificationsByUser(ctx context.Context, userID string, limit int64, unreadOnly bool) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	filter := bson.M{"userId": userID}
	if unreadOnly {
		filter["read"] = false
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	cursor, err := s.notifications().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *Store) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.notifications().CountDocuments(ctx, bson.M{"userId": userID, "read": false})
}

// MarkNotificationRead flips one notification to read and returns it.
func (s *Store) MarkNotificationRead(ctx context.Context, idHex string) (*models.Notification, error) {
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, ErrNotFound
	}
	now := time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var n models.Notification
	err = s.notifications().
		FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"read": true, "readAt": now}}, opts).
		Decode(&n)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	now := time.Now().UTC()
	_, err := s.notifications().UpdateMany(ctx,
		bson.M{"userId": userID, "read": false},
		bson.M{"$set": bson.M{"read": true, "readAt": now}})
	return err
}
