package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/healbridge/telehealth-api/internal/models"
	"github.com/healbridge/telehealth-api/internal/utils"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.MongoID.IsZero() {
		u.MongoID = primitive.NewObjectID()
	}
	_, err := s.users().InsertOne(ctx, u)
	return err
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.users().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UserByID accepts either a Mongo object id hex or the app-level user id.
func (s *Store) UserByID(ctx context.Context, id string) (*models.User, error) {
	filter := bson.M{"id": id}
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		filter = bson.M{"_id": oid}
	}
	var u models.User
	err := s.users().FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Doctors returns every registered doctor.
func (s *Store) Doctors(ctx context.Context) ([]models.User, error) {
	cursor, err := s.users().Find(ctx, bson.M{"type": "doctor"})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var doctors []models.User
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (s *Store) CountUsersByType(ctx context.Context, userType string) (int64, error) {
	return s.users().CountDocuments(ctx, bson.M{"type": userType})
}

// ReviewDoctor updates a doctor's registration status by Mongo id.
func (s *Store) ReviewDoctor(ctx context.Context, mongoID primitive.ObjectID, status, notes string) error {
	now := time.Now().UTC()
	res, err := s.users().UpdateOne(ctx, bson.M{"_id": mongoID}, bson.M{"$set": bson.M{
		"registrationStatus": status,
		"reviewedAt":         now,
		"reviewNotes":        notes,
		"updatedAt":          now,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// demoUser is one entry of the fixed demo roster.
type demoUser struct {
	id, name, email, password, userType, phone, specialization string
}

var demoUsers = []demoUser{
	{"1", "John Doe", "patient@demo.com", "patient123", "patient", "+91 98765 43210", ""},
	{"2", "Sarah Smith", "sarah@demo.com", "demo123", "patient", "+91 98765 43211", ""},
	{"1", "Dr. Ramesh Kumar", "doctor@demo.com", "doctor123", "doctor", "+919876543220", "General Physician"},
	{"2", "Dr. Priya Sharma", "drpriya@demo.com", "demo123", "doctor", "+919876543221", "Dermatologist"},
}

// SeedDemoUsers creates the demo accounts if they do not exist yet.
// Passwords are bcrypt-hashed before insert.
func (s *Store) SeedDemoUsers(ctx context.Context) error {
	for _, d := range demoUsers {
		if _, err := s.UserByEmail(ctx, d.email); err == nil {
			continue
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		hash, err := utils.HashPassword(d.password)
		if err != nil {
			return err
		}
		u := &models.User{
			ID:             d.id,
			Name:           d.name,
			Email:          d.email,
			Password:       hash,
			Type:           d.userType,
			Phone:          d.phone,
			Specialization: d.specialization,
		}
		if u.Type == "doctor" {
			u.RegistrationStatus = "approved"
		}
		if err := s.CreateUser(ctx, u); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return err
		}
		s.log.Info().Str("email", d.email).Msg("created demo user")
	}
	return nil
}
