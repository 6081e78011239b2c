package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/faturado/billing-engine/internal/address"
	"github.com/faturado/billing-engine/internal/config"
	"github.com/faturado/billing-engine/internal/handler"
	"github.com/faturado/billing-engine/internal/logger"
	"github.com/faturado/billing-engine/internal/repository"
	"github.com/faturado/billing-engine/internal/service"
	"github.com/faturado/billing-engine/internal/storage"
	"github.com/faturado/billing-engine/pkg/response"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := logger.Setup(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}

	// Initialize the entity store
	clientRepo, contractRepo, invoiceRepo, db, err := initStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize store")
	}
	if db != nil {
		defer db.Close()
	}

	// Redis cache is optional
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = initRedis(cfg)
		defer redisClient.Close()
	}

	docs := storage.NewLocalStorage()

	// Services
	billingService := service.NewBillingService(clientRepo, contractRepo, invoiceRepo, redisClient, docs, cfg)
	reportService := service.NewReportService(billingService, openai.NewClient(cfg.External.OpenAIAPIKey), cfg.External.OpenAIModel)

	// Handlers
	clientHandler := handler.NewClientHandler(billingService)
	contractHandler := handler.NewContractHandler(billingService)
	invoiceHandler := handler.NewInvoiceHandler(billingService)
	dashboardHandler := handler.NewDashboardHandler(billingService, reportService)
	addressHandler := handler.NewAddressHandler(address.NewClient(cfg.External.ViaCEPBaseURL, cfg.External.ViaCEPTimeout))
	healthHandler := handler.NewHealthHandler(db, redisClient)

	router := setupRoutes(clientHandler, contractHandler, invoiceHandler, dashboardHandler, addressHandler, healthHandler)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      response.LoggingMiddleware(response.CORSMiddleware(router)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", server.Addr).Str("store", cfg.Store.Driver).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// initStore wires the configured store driver. The returned *sqlx.DB is nil
// for the in-memory driver.
func initStore(cfg *config.Config) (repository.ClientRepository, repository.ContractRepository, repository.InvoiceRepository, *sqlx.DB, error) {
	switch cfg.Store.Driver {
	case "postgres":
		db, err := sqlx.Connect("postgres", cfg.Store.DatabaseURL)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		db.SetMaxOpenConns(cfg.Store.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Store.MaxIdleConns)

		return repository.NewClientRepository(db),
			repository.NewContractRepository(db),
			repository.NewInvoiceRepository(db),
			db, nil
	default:
		store := repository.NewMemoryStore()
		if cfg.Store.SeedDemoData {
			repository.SeedDemoData(store)
		}
		return store.Clients(), store.Contracts(), store.Invoices(), nil, nil
	}
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

func setupRoutes(
	clientHandler *handler.ClientHandler,
	contractHandler *handler.ContractHandler,
	invoiceHandler *handler.InvoiceHandler,
	dashboardHandler *handler.DashboardHandler,
	addressHandler *handler.AddressHandler,
	healthHandler *handler.HealthHandler,
) *mux.Router {
	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/clients", clientHandler.List).Methods("GET")
	api.HandleFunc("/clients", clientHandler.Create).Methods("POST")
	api.HandleFunc("/clients/{clientId}", clientHandler.Get).Methods("GET")
	api.HandleFunc("/clients/{clientId}", clientHandler.Update).Methods("PUT")
	api.HandleFunc("/clients/{clientId}", clientHandler.Delete).Methods("DELETE")
	api.HandleFunc("/clients/{clientId}/documents", clientHandler.DeleteDocument).Methods("DELETE")

	api.HandleFunc("/contracts", contractHandler.List).Methods("GET")
	api.HandleFunc("/contracts", contractHandler.Create).Methods("POST")
	api.HandleFunc("/contracts/generate-invoices", contractHandler.GenerateAll).Methods("POST")
	api.HandleFunc("/contracts/{contractId}", contractHandler.Get).Methods("GET")
	api.HandleFunc("/contracts/{contractId}", contractHandler.Delete).Methods("DELETE")
	api.HandleFunc("/contracts/{contractId}/status", contractHandler.UpdateStatus).Methods("PATCH")
	api.HandleFunc("/contracts/{contractId}/invoices", contractHandler.ListInvoices).Methods("GET")
	api.HandleFunc("/contracts/{contractId}/invoices", contractHandler.GenerateInvoices).Methods("POST")
	api.HandleFunc("/contracts/{contractId}/interest", contractHandler.Interest).Methods("GET")

	api.HandleFunc("/invoices", invoiceHandler.List).Methods("GET")
	api.HandleFunc("/invoices", invoiceHandler.Create).Methods("POST")
	api.HandleFunc("/invoices/{invoiceId}", invoiceHandler.Get).Methods("GET")
	api.HandleFunc("/invoices/{invoiceId}", invoiceHandler.Delete).Methods("DELETE")
	api.HandleFunc("/invoices/{invoiceId}/status", invoiceHandler.UpdateStatus).Methods("PATCH")
	api.HandleFunc("/invoices/{invoiceId}/interest", invoiceHandler.Interest).Methods("GET")

	api.HandleFunc("/dashboard/summary", dashboardHandler.Summary).Methods("GET")
	api.HandleFunc("/reports/revenue-projection", dashboardHandler.RevenueReport).Methods("POST")

	api.HandleFunc("/address/{cep}", addressHandler.Lookup).Methods("GET")

	return router
}
