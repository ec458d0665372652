package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	authhandler "github.com/riskintel/riskintel-backend/internal/auth/handler"
	"github.com/riskintel/riskintel-backend/internal/auth/jwt"
	"github.com/riskintel/riskintel-backend/internal/auth/middleware"
	authrepository "github.com/riskintel/riskintel-backend/internal/auth/repository"
	authservice "github.com/riskintel/riskintel-backend/internal/auth/service"
	"github.com/riskintel/riskintel-backend/internal/records/events"
	"github.com/riskintel/riskintel-backend/internal/records/handler"
	"github.com/riskintel/riskintel-backend/internal/records/repository"
	"github.com/riskintel/riskintel-backend/internal/records/service"
	"github.com/riskintel/riskintel-backend/pkg/config"
	"github.com/riskintel/riskintel-backend/pkg/database"
	apperrors "github.com/riskintel/riskintel-backend/pkg/errors"
	"github.com/riskintel/riskintel-backend/pkg/httputil"
	"github.com/riskintel/riskintel-backend/pkg/i18n"
	"github.com/riskintel/riskintel-backend/pkg/logger"
	"github.com/riskintel/riskintel-backend/pkg/messaging"
)

func main() {
	// Optional .env for local development; real environments set variables
	// directly.
	_ = godotenv.Load()

	cfg, err := config.LoadWithValidation("riskintel-server")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("riskintel-server", cfg.Server.Environment)
	log.Info().Msg("starting RiskIntel server")

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// RabbitMQ is optional; without it record events are simply not
	// published.
	var rmq *messaging.RabbitMQ
	var recordEvents *events.RecordEventPublisher
	if cfg.RabbitMQ.Enabled {
		rmq, err = messaging.New(&cfg.RabbitMQ, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer rmq.Close()

		recordEvents, err = events.NewRecordEventPublisher(rmq, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to set up record event publisher")
		}
	}

	// Auth subsystem
	jwtManager := jwt.NewManager(&cfg.JWT)
	userRepo := authrepository.NewUserRepository(db)
	sessionRepo := authrepository.NewSessionRepository(db)
	authService := authservice.NewAuthService(userRepo, sessionRepo, jwtManager, log)
	authHandler := authhandler.NewAuthHandler(authService, log)

	// Record subsystem
	companyRepo := repository.NewCompanyRepository(db)
	sectorRepo := repository.NewSectorRepository(db)
	riskRepo := repository.NewRiskRepository(db)
	ergonomicsRepo := repository.NewErgonomicsRepository(db)

	companyService := service.NewCompanyService(companyRepo, recordEvents, log)
	sectorService := service.NewSectorService(sectorRepo, companyRepo, recordEvents, log)
	riskService := service.NewRiskService(riskRepo, companyRepo, recordEvents, log)
	ergonomicsService := service.NewErgonomicsService(ergonomicsRepo, companyRepo, recordEvents, log)
	dashboardService := service.NewDashboardService(companyRepo, sectorRepo, riskRepo, ergonomicsRepo)

	companyHandler := handler.NewCompanyHandler(companyService, log)
	sectorHandler := handler.NewSectorHandler(sectorService, log)
	riskHandler := handler.NewRiskHandler(riskService, log)
	ergonomicsHandler := handler.NewErgonomicsHandler(ergonomicsService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(i18n.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := map[string]interface{}{
			"status":   "healthy",
			"service":  "riskintel-server",
			"database": db.Health(r.Context()),
		}
		if rmq != nil {
			health["rabbitmq"] = rmq.Health()
		}
		httputil.JSON(w, http.StatusOK, health)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(jwtManager))
				r.Get("/me", authHandler.Me)
			})
		})

		// Every record route sits behind the auth gate
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtManager))

			r.Route("/companies", func(r chi.Router) {
				r.Get("/", companyHandler.List)
				r.Post("/", companyHandler.Create)
				r.Get("/{id}", companyHandler.Get)
				r.Put("/{id}", companyHandler.Update)
				r.Delete("/{id}", companyHandler.Delete)
			})

			r.Route("/sectors", func(r chi.Router) {
				r.Get("/", sectorHandler.List)
				r.Post("/", sectorHandler.Create)
				r.Get("/{id}", sectorHandler.Get)
				r.Put("/{id}", sectorHandler.Update)
				r.Delete("/{id}", sectorHandler.Delete)
			})

			r.Route("/risks", func(r chi.Router) {
				r.Get("/", riskHandler.List)
				r.Post("/", riskHandler.Create)
				r.Get("/{id}", riskHandler.Get)
				r.Put("/{id}", riskHandler.Update)
				r.Delete("/{id}", riskHandler.Delete)
			})

			r.Route("/ergonomics", func(r chi.Router) {
				r.Get("/", ergonomicsHandler.List)
				r.Post("/", ergonomicsHandler.Create)
				r.Get("/{id}", ergonomicsHandler.Get)
				r.Put("/{id}", ergonomicsHandler.Update)
				r.Delete("/{id}", ergonomicsHandler.Delete)
			})

			r.Get("/dashboard", dashboardHandler.Summary)
		})
	})

	// Unknown paths get a JSON 404 instead of the default text body
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.Error(w, r, apperrors.New("NOT_FOUND", "route not found", http.StatusNotFound))
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
