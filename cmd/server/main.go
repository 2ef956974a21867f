package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"marathon-registration/internal/config"
	"marathon-registration/internal/gateway"
	"marathon-registration/internal/mailer"
	"marathon-registration/internal/server"
	"marathon-registration/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)
	logger.Info("Server is starting...")

	cfg, err := config.FromEnv()
	if err != nil {
		logger.WithFields(logrus.Fields{"error": err.Error()}).Fatal("Invalid configuration")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.WithFields(logrus.Fields{"error": err.Error()}).Fatal("Failed to connect to the database")
	}

	participants := store.New(db)
	if err := participants.Migrate(); err != nil {
		logger.WithFields(logrus.Fields{"error": err.Error()}).Fatal("Failed to auto-migrate tables")
	}
	logger.Info("Database connection established and migrations applied")

	gw := gateway.New(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailSender, cfg.EmailPassword, mailer.Event{
		Name:  cfg.EventName,
		Date:  cfg.EventDate,
		Venue: cfg.EventVenue,
	})

	srv := server.New(cfg, logger, gw, participants, mail)
	httpSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Router(),
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"addr":        cfg.HTTPAddr,
			"environment": cfg.Environment,
		}).Info("Starting server")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithFields(logrus.Fields{"error": err.Error()}).Fatal("HTTP server failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.WithFields(logrus.Fields{"error": err.Error()}).Error("Shutdown error")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("Server stopped")
}
