package handlers

import (
	"strconv"

	"github.com/rs/zerolog"

	"github.com/healbridge/telehealth-api/internal/medicines"
	"github.com/healbridge/telehealth-api/internal/services"
	"github.com/healbridge/telehealth-api/internal/store"
)

// Handler carries the dependencies every endpoint needs.
type Handler struct {
	Store           *store.Store
	Catalog         *medicines.Catalog
	NotificationSvc *services.NotificationService
	AI              *services.GeminiClient
	Log             zerolog.Logger
}

func NewHandler(st *store.Store, catalog *medicines.Catalog, notificationSvc *services.NotificationService, ai *services.GeminiClient, log zerolog.Logger) *Handler {
	return &Handler{
		Store:           st,
		Catalog:         catalog,
		NotificationSvc: notificationSvc,
		AI:              ai,
		Log:             log.With().Str("component", "handlers").Logger(),
	}
}

func intToID(n int64) string { return strconv.FormatInt(n, 10) }

// truncateRunes cuts on rune boundaries so multi-byte text never ends up as
// invalid UTF-8 in a notification or SMS.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
