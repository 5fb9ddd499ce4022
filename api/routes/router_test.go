package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	authsvc "github.com/relevant-recovery/recovery-backend/internal/auth"
	contactsvc "github.com/relevant-recovery/recovery-backend/internal/contact"
	optionsvc "github.com/relevant-recovery/recovery-backend/internal/donationoptions"
	donationsvc "github.com/relevant-recovery/recovery-backend/internal/donations"
	eventsvc "github.com/relevant-recovery/recovery-backend/internal/events"
	registrationsvc "github.com/relevant-recovery/recovery-backend/internal/registrations"
	signupsvc "github.com/relevant-recovery/recovery-backend/internal/signups"
	ticketsvc "github.com/relevant-recovery/recovery-backend/internal/tickets"
	pkgauth "github.com/relevant-recovery/recovery-backend/pkg/auth"
	"github.com/relevant-recovery/recovery-backend/pkg/config"
	"github.com/relevant-recovery/recovery-backend/pkg/enums"
	"github.com/relevant-recovery/recovery-backend/pkg/logger"
	"github.com/relevant-recovery/recovery-backend/pkg/metrics"
	"github.com/relevant-recovery/recovery-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, input authsvc.LoginInput) (*authsvc.LoginResult, error) {
	return &authsvc.LoginResult{Token: "token"}, nil
}

func (stubAuthService) Me(ctx context.Context) *authsvc.AdminDTO {
	return &authsvc.AdminDTO{ID: "admin"}
}

type stubEventService struct{}

func (stubEventService) ListPublic(ctx context.Context) ([]eventsvc.EventDTO, error) {
	return []eventsvc.EventDTO{}, nil
}

func (stubEventService) ListAdmin(ctx context.Context) ([]eventsvc.EventDTO, error) {
	return []eventsvc.EventDTO{}, nil
}

func (stubEventService) GetPublic(ctx context.Context, id uuid.UUID) (*eventsvc.EventDTO, error) {
	return &eventsvc.EventDTO{}, nil
}

func (stubEventService) Create(ctx context.Context, input eventsvc.CreateEventInput) (*eventsvc.EventDTO, error) {
	return &eventsvc.EventDTO{}, nil
}

func (stubEventService) Update(ctx context.Context, id uuid.UUID, input eventsvc.UpdateEventInput) (*eventsvc.EventDTO, error) {
	return &eventsvc.EventDTO{}, nil
}

func (stubEventService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubDonationService struct{}

func (stubDonationService) Create(ctx context.Context, input donationsvc.CreateDonationInput) (*donationsvc.CreateDonationResult, error) {
	return &donationsvc.CreateDonationResult{}, nil
}

func (stubDonationService) Get(ctx context.Context, id uuid.UUID) (*donationsvc.DonationDTO, error) {
	return &donationsvc.DonationDTO{}, nil
}

func (stubDonationService) List(ctx context.Context, params pagination.Params) (*donationsvc.DonationListDTO, error) {
	return &donationsvc.DonationListDTO{}, nil
}

type stubTicketService struct{}

func (stubTicketService) Book(ctx context.Context, input ticketsvc.BookTicketInput) (*ticketsvc.BookingResult, error) {
	return &ticketsvc.BookingResult{}, nil
}

func (stubTicketService) GetByID(ctx context.Context, id uuid.UUID) (*ticketsvc.BookingDTO, error) {
	return &ticketsvc.BookingDTO{}, nil
}

func (stubTicketService) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BookingStatus) (*ticketsvc.BookingDTO, error) {
	return &ticketsvc.BookingDTO{}, nil
}

func (stubTicketService) ListByEvent(ctx context.Context, eventID uuid.UUID, params pagination.Params) (*ticketsvc.BookingListDTO, error) {
	return &ticketsvc.BookingListDTO{}, nil
}

func (stubTicketService) EventStats(ctx context.Context, eventID uuid.UUID) (*ticketsvc.EventStatsDTO, error) {
	return &ticketsvc.EventStatsDTO{}, nil
}

func (stubTicketService) ConfirmPayment(ctx context.Context, input ticketsvc.ConfirmPaymentInput) (*ticketsvc.BookingDTO, error) {
	return &ticketsvc.BookingDTO{}, nil
}

type stubOptionService struct{}

func (stubOptionService) List(ctx context.Context, optionType string) ([]optionsvc.OptionDTO, error) {
	return []optionsvc.OptionDTO{}, nil
}

func (stubOptionService) Create(ctx context.Context, input optionsvc.CreateOptionInput) (*optionsvc.OptionDTO, error) {
	return &optionsvc.OptionDTO{}, nil
}

func (stubOptionService) Update(ctx context.Context, id uuid.UUID, input optionsvc.UpdateOptionInput) (*optionsvc.OptionDTO, error) {
	return &optionsvc.OptionDTO{}, nil
}

func (stubOptionService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

type stubContactService struct{}

func (stubContactService) Submit(ctx context.Context, input contactsvc.SubmitInput) error {
	return nil
}

type stubRegistrationService struct{}

func (stubRegistrationService) Register(ctx context.Context, input registrationsvc.RegisterInput) error {
	return nil
}

type stubSignupService struct{}

func (stubSignupService) Signup(ctx context.Context, input signupsvc.SignupInput) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
		Admin: config.AdminConfig{
			Email:    "admin@relevantrecovery.org",
			Password: "s3cret",
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		metrics.NewPaymentMetrics(),
		stubPinger{},
		nil, // redis
		nil, // stripe client
		stubAuthService{},
		stubEventService{},
		stubDonationService{},
		stubTicketService{},
		stubOptionService{},
		stubContactService{},
		stubRegistrationService{},
		stubSignupService{},
		nil, // stripe webhook service
	)
}

func adminToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgauth.MintAdminToken(cfg.JWT, time.Now(), cfg.Admin.Email)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestPublicRoutesServeWithoutAuth(t *testing.T) {
	router := newTestRouter(testConfig())

	for _, path := range []string{"/healthz", "/readyz", "/api/events", "/api/donation-options"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}

func TestAdminRoutesRejectMissingToken(t *testing.T) {
	router := newTestRouter(testConfig())

	requests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/donations"},
		{http.MethodGet, "/api/auth/me"},
		{http.MethodGet, "/api/events/admin/all"},
		{http.MethodPost, "/api/events"},
		{http.MethodDelete, "/api/donation-options/" + uuid.NewString()},
		{http.MethodPut, "/api/event-ticket-booking/" + uuid.NewString() + "/status"},
	}
	for _, tc := range requests {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s %s got %d", tc.method, tc.path, resp.Code)
		}
	}
}

func TestAdminRoutesAcceptAdminToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/donations", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin list got %d", resp.Code)
	}
}

func TestAdminRoutesRejectForeignEmail(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	token, err := pkgauth.MintAdminToken(cfg.JWT, time.Now(), "intruder@example.com")
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin email got %d", resp.Code)
	}
}

func TestWebhookRouteRequiresSignature(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/donations/webhook", strings.NewReader(`{"type":"payment_intent.succeeded"}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unsigned webhook got %d", resp.Code)
	}
}

func TestContactAcceptsValidPayload(t *testing.T) {
	router := newTestRouter(testConfig())

	body := `{"name":"Jane Doe","email":"jane@example.com","subject":"Question","message":"Do you accept volunteers on weekends?"}`
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for contact got %d", resp.Code)
	}
}

func TestContactRejectsBadJSON(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}

func TestMetricsEndpointServes(t *testing.T) {
	router := newTestRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for metrics got %d", resp.Code)
	}
}
