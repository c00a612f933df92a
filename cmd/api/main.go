package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/healbridge/telehealth-api/internal/config"
	"github.com/healbridge/telehealth-api/internal/handlers"
	"github.com/healbridge/telehealth-api/internal/medicines"
	"github.com/healbridge/telehealth-api/internal/middleware"
	"github.com/healbridge/telehealth-api/internal/services"
	"github.com/healbridge/telehealth-api/internal/store"
)

func main() {
	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set; login will fail")
	}

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal().Err(err).Msg("MongoDB is not reachable")
	}
	db := client.Database(cfg.MongoDatabase)
	log.Info().Str("database", cfg.MongoDatabase).Msg("connected to MongoDB")

	st := store.New(db, log)
	if err := st.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("could not create indexes")
	}
	if err := st.SeedDemoUsers(ctx); err != nil {
		log.Warn().Err(err).Msg("could not seed demo users")
	}

	// --- Medicine Catalog ---
	catalog, err := medicines.Load(cfg.MedicineCSV)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.MedicineCSV).Msg("failed to load medicine dataset")
	}
	log.Info().Int("medicines", catalog.Len()).Msg("medicine dataset loaded")

	// --- Services and Handlers ---
	notificationSvc := services.NewNotificationService(st, cfg.SMSEnabled, cfg.TextbeltKey, log)
	ai := services.NewGeminiClient(cfg.GeminiAPIKey, log)
	h := handlers.NewHandler(st, catalog, notificationSvc, ai, log)

	// --- Gin Router ---
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)

		api.POST("/auth/login", h.Login)
		api.POST("/auth/register-patient", h.RegisterPatient)
		api.POST("/auth/register-doctor", h.RegisterDoctor)

		api.GET("/medicines/search", h.SearchMedicines)
		api.GET("/medicines/all", h.GetAllMedicines)
		api.GET("/medicines/:id", h.GetMedicine)
		api.GET("/medicines/:id/usages", h.GetMedicineUsages)
		api.POST("/medicines/usages-by-name", h.GetMedicineUsagesByName)

		api.POST("/chat/analyze", h.AnalyzeSymptoms)

		api.GET("/shops/nearby", h.GetNearbyShops)
	}

	authed := r.Group("/api")
	authed.Use(middleware.AuthMiddleware())
	{
		authed.POST("/orders", h.CreateOrder)
		authed.GET("/orders/:userId", h.GetUserOrders)

		// The :id segment is a user id on the list routes and a record id on
		// the update routes; gin requires one param name per position.
		authed.GET("/consultations/pending", h.GetPendingConsultations)
		authed.GET("/consultations/:id", h.GetUserConsultations)
		authed.PUT("/consultations/:id", middleware.RequireRole("doctor"), h.UpdateConsultation)

		authed.GET("/notifications/:id", h.GetNotifications)
		authed.PUT("/notifications/:id/read", h.MarkNotificationRead)
		authed.PUT("/notifications/:id/mark-all-read", h.MarkAllNotificationsRead)

		authed.POST("/prescriptions", h.CreatePrescription)
		authed.GET("/prescriptions/:userId", h.GetUserPrescriptions)

		authed.GET("/admin/doctor-registrations", h.GetDoctorRegistrations)
		authed.PUT("/admin/doctor-registrations/:id/review", h.ReviewDoctorRegistration)
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
