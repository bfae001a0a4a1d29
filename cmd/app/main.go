package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/sidvanarse/orderManagement/db/postgres"
	providers "github.com/sidvanarse/orderManagement/db/postgres/providers"
	"github.com/sidvanarse/orderManagement/handlers"
	"github.com/sidvanarse/orderManagement/metrics"
	"github.com/sidvanarse/orderManagement/repository"
	"github.com/sidvanarse/orderManagement/routes"
	"github.com/sidvanarse/orderManagement/service"
)

func main() {
	log := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "order-management").
		Logger()

	if err := godotenv.Load(".env"); err != nil {
		log.Warn().Err(err).Msg("no .env file loaded, using environment")
	}

	// 1. Connect PostgreSQL and bootstrap the schema
	postgresClient, err := postgres.ConnectDB(log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer postgresClient.Stop()

	if err := postgresClient.InitSchema(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database schema")
	}

	dbHelper, err := providers.NewDbProvider(postgresClient.PostgresClient)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize DB helper")
	}

	// 2. Repositories
	bookRepo := repository.NewBookRepository(dbHelper)
	orderRepo := repository.NewOrderRepository(dbHelper)
	executionRepo := repository.NewExecutionRepository(dbHelper)

	// 3. Metrics and services
	m := metrics.New()
	bookSvc := service.NewBookService(bookRepo, log)
	orderSvc := service.NewOrderService(bookSvc, orderRepo, m, log)
	executionSvc := service.NewExecutionService(bookSvc, orderSvc, executionRepo, m, log)
	reportSvc := service.NewReportService(bookSvc, orderSvc, executionSvc)

	// 4. Hydrate the in-memory registries from the store
	ctx := context.Background()
	if err := bookSvc.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to hydrate book cache")
	}
	if err := orderSvc.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to hydrate order cache")
	}
	if err := executionSvc.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to hydrate execution history")
	}

	// 5. Router and handlers
	router := gin.Default()
	handler := handlers.NewHandler(bookSvc, orderSvc, executionSvc, reportSvc, log)
	routes.RegisterRoutes(router, handler, m)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", port).Msg("order management REST API running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// 6. Wait for an OS signal and shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	// 7. Tear down the in-memory registries; the store is untouched
	executionSvc.Stop()
	orderSvc.Stop()
	bookSvc.Stop()

	log.Info().Msg("shutdown complete")
}
