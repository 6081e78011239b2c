package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/faturado/billing-engine/internal/config"
	"github.com/faturado/billing-engine/internal/logger"
	"github.com/faturado/billing-engine/internal/repository"
	"github.com/faturado/billing-engine/internal/service"
	"github.com/faturado/billing-engine/internal/storage"
)

// The scheduler persists the daily pending-to-overdue sweep and logs upcoming
// payments. It only makes sense against the postgres store: a memory store in
// this process would not be the one the server is mutating.
func main() {
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

	if cfg.Store.Driver != "postgres" {
		log.Fatal().Str("driver", cfg.Store.Driver).Msg("scheduler requires the postgres store")
	}

	db, err := sqlx.Connect("postgres", cfg.Store.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	billingService := service.NewBillingService(
		repository.NewClientRepository(db),
		repository.NewContractRepository(db),
		repository.NewInvoiceRepository(db),
		nil,
		storage.NewLocalStorage(),
		cfg,
	)

	c := cron.New(cron.WithSeconds())
	setupCronJobs(c, cfg, billingService)

	c.Start()
	log.Info().Msg("scheduler started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down scheduler")
	c.Stop()
	log.Info().Msg("scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, billing *service.BillingService) {
	// Daily job persisting pending-to-overdue transitions
	_, err := c.AddFunc(cfg.Scheduler.OverdueSweepSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		updated, err := billing.RefreshOverdueStatuses(ctx)
		if err != nil {
			log.Error().Err(err).Msg("overdue sweep failed")
			return
		}
		log.Info().Int("updated", updated).Msg("overdue sweep done")
	})
	if err != nil {
		log.Fatal().Err(err).Msg("scheduling overdue sweep failed")
	}

	// Reminder job for invoices coming due
	_, err = c.AddFunc(cfg.Scheduler.ReminderSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		due, err := billing.DueSoonInvoices(ctx, cfg.Scheduler.ReminderWindowDays)
		if err != nil {
			log.Error().Err(err).Msg("reminder lookup failed")
			return
		}
		for _, inv := range due {
			log.Info().
				Str("invoice_id", inv.InvoiceID).
				Str("client_id", inv.ClientID).
				Str("due_date", inv.DueDate.String()).
				Msg("payment due soon")
		}
	})
	if err != nil {
		log.Fatal().Err(err).Msg("scheduling reminders failed")
	}

	log.Info().Msg("cron jobs scheduled")
}
