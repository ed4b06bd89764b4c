package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/lucabelezal/cardlimit-service/internal/config"
	"github.com/lucabelezal/cardlimit-service/internal/faqs"
	"github.com/lucabelezal/cardlimit-service/internal/handler"
	"github.com/lucabelezal/cardlimit-service/internal/integrations/issuer"
	"github.com/lucabelezal/cardlimit-service/internal/middleware"
	"github.com/lucabelezal/cardlimit-service/internal/notify"
	"github.com/lucabelezal/cardlimit-service/internal/repository"
	"github.com/lucabelezal/cardlimit-service/internal/scheduler"
	"github.com/lucabelezal/cardlimit-service/internal/service"
	"github.com/lucabelezal/cardlimit-service/internal/utils/email"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Issuer limit policy overrides the configured defaults when set
	if cfg.IssuerURL != "" {
		client := issuer.NewClient(cfg, logger)
		policy, err := client.FetchLimitPolicy()
		if err != nil {
			logger.Warnf("Failed to fetch issuer limit policy, using defaults: %v", err)
		} else {
			cfg.MinAllowedLimit = policy.MinAllowedLimit
			cfg.MaxAllowedLimit = policy.MaxAllowedLimit
		}
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	catalog := faqs.NewCatalog()
	toasts := notify.NewCenter(logger)
	var mailer service.Mailer
	if cfg.SMTPHost != "" {
		mailer = email.NewSender(cfg, logger)
	}
	svc := service.NewService(repo, toasts, mailer, logger, cfg)
	h := handler.NewHandler(svc, catalog, toasts, logger)

	// Statement-cycle usage reset
	sched := scheduler.New(svc, cfg.UsageResetSpec, logger)
	if err := sched.Start(); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/api/faqs", h.ListFAQs).Methods("GET")
	r.HandleFunc("/api/faqs/categories", h.ListCategories).Methods("GET")
	r.HandleFunc("/api/faqs/{id}", h.GetFAQ).Methods("GET")
	r.HandleFunc("/api/faqs/{id}/helpful", h.VoteFAQ).Methods("POST")
	r.HandleFunc("/api/notifications", h.Notifications).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/api/limit").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("", h.GetLimit).Methods("GET")
	authRouter.HandleFunc("", h.UpdateLimit).Methods("PUT")
	authRouter.HandleFunc("/preview", h.PreviewLimit).Methods("POST")
	authRouter.HandleFunc("/purchases", h.RecordPurchase).Methods("POST")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
