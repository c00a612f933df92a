package store

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store wraps the MongoDB collections used by the portal.
type Store struct {
	db  *mongo.Database
	log zerolog.Logger
}

func New(db *mongo.Database, log zerolog.Logger) *Store {
	return &Store{db: db, log: log.With().Str("component", "store").Logger()}
}

func (s *Store) users() *mongo.Collection         { return s.db.Collection("users") }
func (s *Store) orders() *mongo.Collection        { return s.db.Collection("orders") }
func (s *Store) consultations() *mongo.Collection { return s.db.Collection("consultations") }
func (s *Store) prescriptions() *mongo.Collection { return s.db.Collection("prescriptions") }
func (s *Store) notifications() *mongo.Collection { return s.db.Collection("notifications") }

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

// EnsureIndexes creates the indexes the query paths rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	asc := func(key string) mongo.IndexModel {
		return mongo.IndexModel{Keys: bson.D{{Key: key, Value: 1}}}
	}
	desc := func(key string) mongo.IndexModel {
		return mongo.IndexModel{Keys: bson.D{{Key: key, Value: -1}}}
	}

	unique := options.Index().SetUnique(true)
	if _, err := s.users().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		asc("type"),
	}); err != nil {
		return err
	}
	if _, err := s.orders().Indexes().CreateMany(ctx, []mongo.IndexModel{
		asc("userId"), asc("status"), desc("createdAt"),
	}); err != nil {
		return err
	}
	if _, err := s.consultations().Indexes().CreateMany(ctx, []mongo.IndexModel{
		asc("userId"), asc("status"), desc("createdAt"), asc("orderId"),
	}); err != nil {
		return err
	}
	if _, err := s.prescriptions().Indexes().CreateMany(ctx, []mongo.IndexModel{
		asc("userId"), desc("uploadDate"),
	}); err != nil {
		return err
	}
	if _, err := s.notifications().Indexes().CreateMany(ctx, []mongo.IndexModel{
		asc("userId"), asc("read"), desc("createdAt"),
	}); err != nil {
		return err
	}
	s.log.Debug().Msg("database indexes created")
	return nil
}
