package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/healbridge/telehealth-api/internal/models"
	"github.com/healbridge/telehealth-api/internal/store"
)

// NotificationService creates in-app notifications and optionally mirrors
// them to SMS via the Textbelt API.
type NotificationService struct {
	store       *store.Store
	smsEnabled  bool
	textbeltKey string
	log         zerolog.Logger
}

func NewNotificationService(st *store.Store, smsEnabled bool, textbeltKey string, log zerolog.Logger) *NotificationService {
	return &NotificationService{
		store:       st,
		smsEnabled:  smsEnabled,
		textbeltKey: textbeltKey,
		log:         log.With().Str("component", "notifications").Logger(),
	}
}

// Notify stores one in-app notification for a user.
func (s *NotificationService) Notify(ctx context.Context, n *models.Notification) error {
	return s.store.CreateNotification(ctx, n)
}

// NotifyDoctors fans the notification out to every registered doctor and,
// when SMS is enabled, texts the ones with a phone number.
func (s *NotificationService) NotifyDoctors(ctx context.Context, template models.Notification, smsText string) {
	doctors, err := s.store.Doctors(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("could not list doctors for notification fan-out")
		return
	}

	for _, doctor := range doctors {
		n := template
		n.UserID = doctor.ID
		if n.UserID == "" {
			n.UserID = doctor.Email
		}
		if err := s.store.CreateNotification(ctx, &n); err != nil {
			s.log.Error().Err(err).Str("doctor", doctor.Email).Msg("failed to create doctor notification")
			continue
		}
		if doctor.Phone != "" {
			s.SendSMS(doctor.Phone, truncateSMS(smsText))
		}
	}
}

// SendSMS texts the given number. Runs in a goroutine so it doesn't block
// the API response.
func (s *NotificationService) SendSMS(phone, message string) {
	if !s.smsEnabled {
		s.log.Debug().Str("phone", phone).Msg("SMS disabled, skipping")
		return
	}
	if phone == "" {
		return
	}
	go s.sendSMSWithTextbelt(phone, message)
}

func (s *NotificationService) sendSMSWithTextbelt(phone, message string) {
	postBody, _ := json.Marshal(map[string]string{
		"phone":   phone,
		"message": message,
		"key":     s.textbeltKey,
	})

	resp, err := http.Post("https://textbelt.com/text", "application/json", bytes.NewBuffer(postBody))
	if err != nil {
		s.log.Error().Err(err).Str("phone", phone).Msg("failed to send Textbelt request")
		return
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)

	success, _ := result["success"].(bool)
	if !success {
		errorMsg, _ := result["error"].(string)
		s.log.Warn().Str("phone", phone).Str("reason", errorMsg).Msg("Textbelt rejected SMS")
		return
	}
	s.log.Info().Str("phone", phone).Msg("SMS sent")
}

// Textbelt supports up to 1600 chars, but keep messages short for
// readability. Cut on rune boundaries; translated text is multi-byte.
func truncateSMS(msg string) string {
	r := []rune(msg)
	if len(r) > 300 {
		return string(r[:300]) + "..."
	}
	return msg
}
