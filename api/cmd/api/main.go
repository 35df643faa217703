package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cash-reader/api/internal/config"
	"cash-reader/api/internal/handle"
	"cash-reader/api/internal/httpserver"
	"cash-reader/api/internal/logger"
	"cash-reader/api/internal/ocr"
	"cash-reader/api/internal/ocr/gemini"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.GoogleAPIKey == "" {
		logger.Warn("GOOGLE_API_KEY is not set; every analysis will fail until it is configured")
	}

	engine := gemini.New(cfg.GoogleAPIKey, cfg.GeminiModel)
	h := handle.New(ocr.NewAnalyzer(engine, cfg.GoogleAPIKey, ocr.WithMaxPixels(cfg.MaxImagePixels)), engine.GetModel())
	router := handle.NewRouter(h, handle.RouterOptions{
		MaxUploadBytes:   cfg.MaxUploadBytes,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.WithFields(logrus.Fields{
		"address": cfg.ServerAddress(),
		"model":   engine.GetModel(),
	}).Info("starting cash-reader")
	if err := httpserver.Serve(ctx, cfg.ServerAddress(), router); err != nil {
		logger.WithError(err).Fatal("server failed")
	}
}
