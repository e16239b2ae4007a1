package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stateless_auth/internal/api"
	"stateless_auth/internal/app/service"
	"stateless_auth/internal/common"
	"stateless_auth/internal/common/security"
	"stateless_auth/internal/domain/model"
	"stateless_auth/internal/domain/repository"
	"stateless_auth/internal/platform/cache"
	"stateless_auth/internal/platform/config"
	"stateless_auth/internal/platform/database"

	"github.com/rs/zerolog"
)

func main() {
	// 1. Load Configuration
	config.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	logger.Info().Msg("Configuration loaded")

	// 2. Initialize the token signing key and codec. The key lives for the
	// process lifetime; without a configured shared key, tokens from this
	// instance are only verifiable by this instance.
	key := config.AppConfig.TokenSigningKey
	if len(key) == 0 {
		var err error
		key, err = security.GenerateSigningKey()
		if err != nil {
			logger.Fatal().Err(err).Msg("Could not generate token signing key")
		}
		logger.Info().Msg("Generated ephemeral token signing key")
	}
	codec := security.NewTokenCodec(key, config.AppConfig.TokenTTL)

	// 3. Initialize the credential store
	var creds repository.CredentialRepository
	switch config.AppConfig.StoreBackend {
	case "memory":
		creds = repository.NewMemoryCredentialRepository()
		logger.Info().Msg("Using in-memory credential store")
	default:
		database.Connect()
		defer database.Close()
		if err := database.Migrate(context.Background()); err != nil {
			logger.Fatal().Err(err).Msg("Could not run database migrations")
		}
		creds = repository.NewPgCredentialRepository(database.DB)
		logger.Info().Msg("Database connected")
	}

	// 4. Optional redis salt cache
	if config.AppConfig.RedisAddr != "" {
		cache.Connect()
		defer cache.Close()
		creds = repository.NewCachedCredentialRepository(creds, cache.RDB, config.AppConfig.SaltCacheTTL)
		logger.Info().Msg("Redis salt cache enabled")
	}

	// 5. Initialize Services
	authService := service.NewAuthService(creds, codec, config.AppConfig.SaltLength)

	// 6. Demo accounts
	if config.AppConfig.SeedDemoUser {
		seedDemoAccounts(logger, authService)
	}

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(logger, authService, codec)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info().Str("port", config.AppConfig.APIPort).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-stop // Wait for interrupt signal

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("Server shutdown failed")
	}

	logger.Info().Msg("Server stopped gracefully")
}

// seedDemoAccounts provisions the demo user and an administrator so the
// sample endpoints are exercisable out of the box. Existing accounts are
// left untouched.
func seedDemoAccounts(logger zerolog.Logger, authService *service.AuthService) {
	ctx := context.Background()
	accounts := []struct {
		username string
		password string
		role     model.Role
	}{
		{"User", "welcome", model.RoleUser},
		{"Admin", "welcome", model.RoleAdministrator},
	}
	for _, a := range accounts {
		_, err := authService.CreateAccount(ctx, a.username, a.password, a.role)
		if err != nil && !errors.Is(err, common.ErrConflict) {
			logger.Fatal().Err(err).Str("username", a.username).Msg("Could not seed demo account")
		}
	}
}
