package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"braintree-gateway/internal/client"
	"braintree-gateway/internal/config"
	"braintree-gateway/internal/lang"
	"braintree-gateway/internal/logger"
	"braintree-gateway/internal/repository"
	"braintree-gateway/internal/server"
	"braintree-gateway/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// load .env into os.Environ
	envErr := godotenv.Load()

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to parse config")
	}

	log.Logger = logger.New(cfg.Log)
	if envErr != nil {
		log.Info().Msg("no .env file found (ok in prod)")
	}

	db, err := client.InitDBClient(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	strs, err := lang.English()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load language strings")
	}

	ctx := context.Background()

	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	ipnRepo := repository.NewIPNRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)

	if err := productRepo.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to seed products")
	}

	gateway := service.NewGateway(cfg.Braintree, cfg.BaseURL, strs)
	if !gateway.HasValidConfig() {
		log.Warn().
			Str("environment", cfg.Braintree.EnvironmentName()).
			Msg("braintree credentials incomplete, checkout is disabled")
	}

	braintreeClient := client.NewBreakerClient(client.NewBraintreeClient(&cfg.Braintree), cfg.Breaker)

	braintreeService := service.NewBraintreeService(
		db,
		gateway,
		braintreeClient,
		orderRepo,
		paymentRepo,
		ipnRepo,
		service.NewInventoryPurchaseHandler(inventoryRepo),
		service.NewScriptRegistry(),
		strs,
		log.Logger,
	)
	orderService := service.NewOrderService(productRepo, orderRepo, paymentRepo)
	userService := service.NewUserService(inventoryRepo)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(braintreeService, orderService, userService, strs, log.Logger)

	log.Info().Str("addr", serverAddr).Str("environment", cfg.Environment.Name).Msg("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info().Msg("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("HTTP server shutdown error")
	}
}
