package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"messenger-dialogue-gateway/config"
	_ "messenger-dialogue-gateway/docs" // Swagger docs
	"messenger-dialogue-gateway/internal/action"
	"messenger-dialogue-gateway/internal/action/handlers"
	msgDelivery "messenger-dialogue-gateway/internal/conversation/delivery/messenger"
	sessionMemory "messenger-dialogue-gateway/internal/conversation/repository/memory"
	"messenger-dialogue-gateway/internal/conversation/usecase"
	"messenger-dialogue-gateway/internal/engine"
	"messenger-dialogue-gateway/internal/httpserver"
	"messenger-dialogue-gateway/internal/webhook"
	"messenger-dialogue-gateway/pkg/log"
	pkgMessenger "messenger-dialogue-gateway/pkg/messenger"
	"messenger-dialogue-gateway/pkg/weather"
	"messenger-dialogue-gateway/pkg/wit"
)

// @title       Messenger Dialogue Gateway API
// @description Messenger webhook front-end for a Wit.ai-style NLU action engine.
// @version     1
// @host        localhost:8445
// @schemes     http
func main() {
	// 1. Configuration — fail fast on missing secrets
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Messenger Dialogue Gateway...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. External clients
	messengerClient := pkgMessenger.NewClient(cfg.Messenger.PageAccessToken)
	witClient := wit.NewClient(cfg.Wit.AccessToken)

	// 4. Session store
	sessionStore := sessionMemory.New()

	// 5. Action registry
	registry := action.NewRegistry()
	registry.Register(handlers.NewSendHandler(sessionStore, messengerClient, logger))
	registry.Register(handlers.NewNewsHandler(sessionStore, messengerClient, logger))
	registry.Register(handlers.NewMerchHandler(sessionStore, messengerClient, logger))
	registry.Register(handlers.NewMusicHandler(sessionStore, messengerClient, logger))

	if cfg.Weather.APIKey != "" {
		weatherClient, werr := weather.NewClient(cfg.Weather.APIKey)
		if werr != nil {
			logger.Warnf(ctx, "Weather client not available (optional): %v", werr)
		} else {
			registry.Register(handlers.NewForecastHandler(weatherClient, logger))
		}
	} else {
		logger.Warn(ctx, "WEATHER_API_KEY missing, getForecast action disabled")
	}

	// 6. Dialogue engine + conversation usecase
	dialogueEngine := engine.New(witClient, registry, logger, cfg.Dialogue.MaxSteps)
	conversationUC := usecase.New(logger, sessionStore, dialogueEngine)

	// 7. Messenger delivery handler
	messengerHandler := msgDelivery.New(logger, conversationUC, messengerClient, msgDelivery.Config{
		VerifyToken: cfg.Messenger.VerifyToken,
		Security: webhook.SecurityConfig{
			AppSecret:     cfg.Messenger.AppSecret,
			AllowUnsigned: cfg.Webhook.AllowUnsigned,
		},
	})

	// 8. HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:           logger,
		Port:             cfg.HTTPServer.Port,
		Mode:             cfg.HTTPServer.Mode,
		Environment:      cfg.Environment.Name,
		MessengerHandler: messengerHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		os.Exit(1)
	}

	// 9. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Server stopped gracefully")
}
