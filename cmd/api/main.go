package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/relevant-recovery/recovery-backend/api/routes"
	authsvc "github.com/relevant-recovery/recovery-backend/internal/auth"
	"github.com/relevant-recovery/recovery-backend/internal/contact"
	"github.com/relevant-recovery/recovery-backend/internal/donationoptions"
	"github.com/relevant-recovery/recovery-backend/internal/donations"
	"github.com/relevant-recovery/recovery-backend/internal/events"
	"github.com/relevant-recovery/recovery-backend/internal/registrations"
	"github.com/relevant-recovery/recovery-backend/internal/signups"
	"github.com/relevant-recovery/recovery-backend/internal/tickets"
	stripewebhook "github.com/relevant-recovery/recovery-backend/internal/webhooks/stripe"
	"github.com/relevant-recovery/recovery-backend/pkg/config"
	"github.com/relevant-recovery/recovery-backend/pkg/db"
	"github.com/relevant-recovery/recovery-backend/pkg/logger"
	"github.com/relevant-recovery/recovery-backend/pkg/metrics"
	"github.com/relevant-recovery/recovery-backend/pkg/migrate"
	"github.com/relevant-recovery/recovery-backend/pkg/redis"
	pkgstripe "github.com/relevant-recovery/recovery-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	m := metrics.NewPaymentMetrics()

	var stripeClient *pkgstripe.Client
	if cfg.Stripe.Configured() {
		stripeClient, err = pkgstripe.NewClient(context.Background(), cfg.Stripe, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap stripe", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "stripe not configured, payment flows will use mock intents")
	}
	intents := pkgstripe.NewIntentClient(stripeClient)

	eventsRepo := events.NewRepository(dbClient.DB())
	donationsRepo := donations.NewRepository(dbClient.DB())
	ticketsRepo := tickets.NewRepository(dbClient.DB())
	optionsRepo := donationoptions.NewRepository(dbClient.DB())
	contactRepo := contact.NewRepository(dbClient.DB())
	registrationsRepo := registrations.NewRepository(dbClient.DB())
	signupsRepo := signups.NewRepository(dbClient.DB())

	eventService, err := events.NewService(eventsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create event service", err)
		os.Exit(1)
	}
	donationService, err := donations.NewService(donationsRepo, intents, m, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create donation service", err)
		os.Exit(1)
	}
	ticketService, err := tickets.NewService(dbClient, ticketsRepo, eventsRepo, intents, m, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create ticket service", err)
		os.Exit(1)
	}
	optionService, err := donationoptions.NewService(optionsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create donation option service", err)
		os.Exit(1)
	}
	contactService, err := contact.NewService(contactRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create contact service", err)
		os.Exit(1)
	}
	registrationService, err := registrations.NewService(registrationsRepo, eventsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create registration service", err)
		os.Exit(1)
	}
	signupService, err := signups.NewService(signupsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create signup service", err)
		os.Exit(1)
	}
	authService, err := authsvc.NewService(cfg.JWT, cfg.Admin, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	webhookGuard, err := stripewebhook.NewIdempotencyGuard(redisClient, cfg.Stripe.WebhookTTL, "stripe")
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook guard", err)
		os.Exit(1)
	}
	webhookService, err := stripewebhook.NewService(stripewebhook.ServiceParams{
		DonationRepo: donationsRepo,
		TicketRepo:   ticketsRepo,
		Guard:        webhookGuard,
		Metrics:      m,
		Logger:       logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			m,
			dbClient,
			redisClient,
			stripeClient,
			authService,
			eventService,
			donationService,
			ticketService,
			optionService,
			contactService,
			registrationService,
			signupService,
			webhookService,
		),
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	exitCode := 0
	select {
	case err := <-serverErr:
		logg.Error(ctx, "api server stopped unexpectedly", err)
		exitCode = 1
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := multierr.Combine(
		server.Shutdown(shutdownCtx),
		redisClient.Close(),
		dbClient.Close(),
	); err != nil {
		logg.Error(ctx, "shutdown finished with errors", err)
		exitCode = 1
	}
	os.Exit(exitCode)
}
