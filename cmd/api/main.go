package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/entryline/visitdesk/internal/domain"
	"github.com/entryline/visitdesk/internal/handlers"
	"github.com/entryline/visitdesk/internal/platform/mailer"
	"github.com/entryline/visitdesk/internal/repo/postgres"
	"github.com/entryline/visitdesk/internal/repo/redispass"
	"github.com/entryline/visitdesk/internal/service"
	"github.com/entryline/visitdesk/pkg/auth"
	"github.com/entryline/visitdesk/pkg/config"
	"github.com/entryline/visitdesk/pkg/database"
	"github.com/entryline/visitdesk/pkg/events"
	"github.com/entryline/visitdesk/pkg/logger"
	mw "github.com/entryline/visitdesk/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Error("Invalid redis URL", "error", err)
		os.Exit(1)
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	eventBus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer eventBus.Close()

	// Repositories
	visitorRepo := postgres.NewVisitorRepository(pool)
	visitRepo := postgres.NewVisitRepository(pool)
	accessLogRepo := postgres.NewAccessLogRepository(pool)
	registrationRepo := postgres.NewRegistrationRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	passStore := redispass.New(rdb, cfg.Access.PassTTL)

	var mail mailer.Service
	if cfg.Email.DevMode {
		mail = mailer.NewDevMailer()
	} else {
		mail = mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	// Services
	policies := domain.NewAccessPolicies(cfg.Access.UniversalAreas)
	registrationService := service.NewRegistrationService(registrationRepo, passStore, mail, eventBus)
	visitService := service.NewVisitService(visitRepo, visitorRepo, passStore, mail, eventBus)
	accessService := service.NewAccessService(visitRepo, accessLogRepo, policies, eventBus)
	reportService := service.NewReportService(reportRepo)
	authService := service.NewAuthService(userRepo, cfg.Auth)

	if err := authService.EnsureAdmin(ctx, cfg.Auth.BootstrapAdminEmail, cfg.Auth.BootstrapAdminPass); err != nil {
		logger.Error("Failed to bootstrap admin account", "error", err)
		os.Exit(1)
	}

	h := handlers.New(registrationService, visitService, accessService, reportService, authService, cfg.Auth.JWTSecret)

	// Router
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("visitdesk"))
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(mw.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	idempotencyStore := mw.NewRedisIdempotencyStore(rdb)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.With(h.RequireJWT(auth.RoleAdmin)).Post("/register", h.CreateUser)
		})

		// Public: a guard's phone scanning a badge carries no session.
		r.Get("/verify/{token}", h.VerifyPass)

		r.Route("/visits", func(r chi.Router) {
			r.Use(h.RequireJWT(auth.RoleFrontDesk))
			r.With(mw.Idempotency(idempotencyStore)).Post("/", h.RegisterVisit)
			r.Get("/", h.ListVisits)
			r.Get("/{id}", h.GetVisit)
			r.Post("/{id}/checkout", h.CheckOutVisit)
			r.Post("/{id}/access-check", h.CheckAccess)
			r.Patch("/{id}/sticker", h.UpdateStickerStatus)
			r.Get("/{id}/access-logs", h.ListAccessLogs)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Use(h.RequireJWT(auth.RoleFrontDesk))
			r.Get("/daily", h.DailyReport)
			r.Get("/weekly", h.WeeklyReport)
			r.Get("/access-summary", h.AccessSummaryReport)
			r.Get("/frequent-visitors", h.FrequentVisitorsReport)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down visitdesk API...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting visitdesk API", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
