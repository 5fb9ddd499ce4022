package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/relevant-recovery/recovery-backend/api/controllers"
	webhookcontrollers "github.com/relevant-recovery/recovery-backend/api/controllers/webhooks"
	"github.com/relevant-recovery/recovery-backend/api/middleware"
	authsvc "github.com/relevant-recovery/recovery-backend/internal/auth"
	contactsvc "github.com/relevant-recovery/recovery-backend/internal/contact"
	optionsvc "github.com/relevant-recovery/recovery-backend/internal/donationoptions"
	donationsvc "github.com/relevant-recovery/recovery-backend/internal/donations"
	eventsvc "github.com/relevant-recovery/recovery-backend/internal/events"
	registrationsvc "github.com/relevant-recovery/recovery-backend/internal/registrations"
	signupsvc "github.com/relevant-recovery/recovery-backend/internal/signups"
	ticketsvc "github.com/relevant-recovery/recovery-backend/internal/tickets"
	stripewebhook "github.com/relevant-recovery/recovery-backend/internal/webhooks/stripe"
	"github.com/relevant-recovery/recovery-backend/pkg/config"
	"github.com/relevant-recovery/recovery-backend/pkg/db"
	"github.com/relevant-recovery/recovery-backend/pkg/logger"
	"github.com/relevant-recovery/recovery-backend/pkg/metrics"
	"github.com/relevant-recovery/recovery-backend/pkg/redis"
	"github.com/relevant-recovery/recovery-backend/pkg/stripe"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	m *metrics.PaymentMetrics,
	dbP db.Pinger,
	redisClient *redis.Client,
	stripeClient *stripe.Client,
	authService authsvc.Service,
	eventService eventsvc.Service,
	donationService donationsvc.Service,
	ticketService ticketsvc.Service,
	optionService optionsvc.Service,
	contactService contactsvc.Service,
	registrationService registrationsvc.Service,
	signupService signupsvc.Service,
	stripeWebhookService *stripewebhook.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(m),
	)

	adminOnly := middleware.AdminAuth(cfg.JWT, cfg.Admin, logg)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	loginLimiter := middleware.AuthRateLimit(loginPolicy, nil, logg)
	if redisClient != nil {
		loginLimiter = middleware.AuthRateLimit(loginPolicy, redisClient, logg)
	}

	r.Get("/healthz", controllers.HealthLive(cfg))
	if redisClient != nil {
		r.Get("/readyz", controllers.HealthReady(cfg, dbP, redisClient))
	} else {
		r.Get("/readyz", controllers.HealthReady(cfg, dbP, nil))
	}
	r.Handle("/metrics", m.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/donations", func(r chi.Router) {
			r.Post("/", controllers.CreateDonation(donationService, logg))
			r.Post("/webhook", webhookcontrollers.StripeWebhook(stripeWebhookService, stripeClient, logg))
			r.With(adminOnly).Get("/", controllers.ListDonations(donationService, logg))
		})

		r.Route("/event-ticket-booking", func(r chi.Router) {
			r.Post("/", controllers.BookTickets(ticketService, logg))
			r.Post("/confirm-payment", controllers.ConfirmTicketPayment(ticketService, logg))
			r.Get("/{id}", controllers.GetTicket(ticketService, logg))
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Put("/{id}/status", controllers.UpdateTicketStatus(ticketService, logg))
				r.Get("/event/{eventId}", controllers.ListTicketsByEvent(ticketService, logg))
				r.Get("/event/{eventId}/stats", controllers.EventTicketStats(ticketService, logg))
			})
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", controllers.ListEvents(eventService, logg))
			r.Get("/{id}", controllers.GetEvent(eventService, logg))
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Get("/admin/all", controllers.ListEventsAdmin(eventService, logg))
				r.Post("/", controllers.CreateEvent(eventService, logg))
				r.Put("/{id}", controllers.UpdateEvent(eventService, logg))
				r.Delete("/{id}", controllers.DeleteEvent(eventService, logg))
			})
		})

		r.Route("/auth", func(r chi.Router) {
			r.With(loginLimiter).Post("/login", controllers.Login(authService, logg))
			r.With(adminOnly).Get("/me", controllers.Me(authService, logg))
		})

		r.Post("/contact", controllers.SubmitContact(contactService, logg))
		r.Post("/registration", controllers.RegisterForEvent(registrationService, logg))
		r.Post("/community-signups", controllers.CommunitySignup(signupService, logg))

		r.Route("/donation-options", func(r chi.Router) {
			r.Get("/", controllers.ListDonationOptions(optionService, logg))
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/", controllers.CreateDonationOption(optionService, logg))
				r.Put("/{id}", controllers.UpdateDonationOption(optionService, logg))
				r.Delete("/{id}", controllers.DeleteDonationOption(optionService, logg))
			})
		})
	})

	return r
}
