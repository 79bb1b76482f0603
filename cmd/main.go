package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"complaintportal/backend/internal/api/handler"
	"complaintportal/backend/internal/complaint"
	"complaintportal/backend/internal/config"
	"complaintportal/backend/internal/localization"
	"complaintportal/backend/internal/portal"
	"complaintportal/backend/internal/reference"
	"complaintportal/backend/internal/session"
	"complaintportal/backend/internal/storage"
	"complaintportal/backend/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("Starting Complaint Portal...")

	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Storage
	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Printf("ERROR: Failed to close storage: %v", err)
		}
	}()
	log.Printf("INFO: Using %s storage", cfg.StorageDriver)

	// 2. Domain services
	catalog := reference.Default()
	loc := localization.Default()
	svc := complaint.NewService(store, catalog).WithPhotoLimit(cfg.PhotoMaxBytes)

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionCapacity, cfg.SessionTTL, func(lang string) *portal.Page {
		return portal.NewPage(portal.Deps{
			Submitter:     svc,
			Finder:        svc,
			Catalog:       catalog,
			Localizer:     loc,
			SearchDelay:   cfg.SearchDelay,
			PhotoMaxBytes: cfg.PhotoMaxBytes,
		}, lang)
	}, loc.Languages(), cfg.DefaultLang)

	// 3. HTTP
	tmpl, err := web.Templates()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	h := handler.NewHandler(svc, catalog, loc, cfg.DefaultLang)
	r := handler.NewRouter(h, tmpl, sessions.Middleware())

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    cfg.HTTPReadTimeout,
		WriteTimeout:   cfg.HTTPWriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("INFO: Listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("INFO: Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: Graceful shutdown failed: %v", err)
	}
}
