// Package main is the entry point for the auction storefront service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"auction-storefront/internal/auth"
	"auction-storefront/internal/config"
	"auction-storefront/internal/handler"
	"auction-storefront/internal/kv"
	"auction-storefront/internal/middleware"
	"auction-storefront/internal/pkg/lock"
	"auction-storefront/internal/repository"
	"auction-storefront/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	defer store.Close()

	// Repositories
	userRepo := repository.NewUserRepository(store)
	productRepo := repository.NewProductRepository(store)
	packageRepo := repository.NewPackageRepository(store)
	txRepo := repository.NewTransactionRepository(store)
	methodRepo := repository.NewPaymentMethodRepository(store)
	settingsRepo := repository.NewSettingsRepository(store)

	seeder := repository.NewSeeder(store, userRepo, productRepo, packageRepo, methodRepo, settingsRepo)
	if err := seeder.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed store")
	}

	// Services
	userLock := lock.NewUserLock()
	tokens := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	authService := service.NewAuthService(userRepo, tokens, cfg.Ledger.SignupGrant)
	accountService := service.NewAccountService(userRepo, txRepo, userLock)
	catalogService := service.NewCatalogService(productRepo, packageRepo, methodRepo, settingsRepo)
	transactionService := service.NewTransactionService(txRepo, userRepo, userLock)
	bidService := service.NewBidService(userRepo, txRepo, productRepo, userLock, cfg.Ledger.BidCost)

	// HTTP
	h := handler.New(authService, accountService, catalogService, transactionService, bidService, log.Logger)
	authMW := middleware.NewAuthMiddleware(authService)

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: h.SetupRouter(authMW),
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("Server is starting...")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
	log.Info().Msg("Server stopped gracefully")
}

// openStore selects the key-value backend from configuration.
func openStore(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		return kv.NewPostgresStore(ctx, &cfg.Database)
	case "file":
		return kv.NewFileStore(cfg.Storage.Dir)
	case "memory":
		return kv.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
