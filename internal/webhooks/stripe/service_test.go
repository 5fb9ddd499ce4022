package stripewebhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/relevant-recovery/recovery-backend/internal/donations"
	"github.com/relevant-recovery/recovery-backend/internal/tickets"
	"github.com/relevant-recovery/recovery-backend/pkg/db/models"
	"github.com/relevant-recovery/recovery-backend/pkg/enums"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Donation{}, &models.TicketBooking{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func newTestService(t *testing.T, db *gorm.DB, guard *IdempotencyGuard) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		DonationRepo: donations.NewRepository(db),
		TicketRepo:   tickets.NewRepository(db),
		Guard:        guard,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func intentEvent(t *testing.T, eventType stripe.EventType, payload map[string]any) *stripe.Event {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return &stripe.Event{
		ID:   "evt_" + string(eventType),
		Type: eventType,
		Data: &stripe.EventData{Raw: raw},
	}
}

func seedDonation(t *testing.T, db *gorm.DB, intentID string, status enums.PaymentStatus) *models.Donation {
	t.Helper()
	donation := &models.Donation{
		FirstName:             "Robin",
		LastName:              "Avery",
		Email:                 "robin@example.org",
		Country:               "US",
		AmountCents:           5000,
		Currency:              enums.CurrencyUSD,
		Method:                enums.PaymentMethodStripe,
		Status:                status,
		StripePaymentIntentID: &intentID,
	}
	if err := db.Create(donation).Error; err != nil {
		t.Fatalf("seed donation: %v", err)
	}
	return donation
}

func seedBooking(t *testing.T, db *gorm.DB, intentID string) *models.TicketBooking {
	t.Helper()
	booking := &models.TicketBooking{
		EventID:         uuid.New(),
		CustomerName:    "Robin Avery",
		CustomerEmail:   "robin@example.org",
		Quantity:        2,
		UnitPriceCents:  2500,
		Currency:        enums.CurrencyUSD,
		Status:          enums.BookingStatusReserved,
		PaymentStatus:   enums.BookingPaymentPending,
		PaymentIntentID: &intentID,
	}
	if err := db.Create(booking).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return booking
}

func TestSucceededEventConfirmsDonation(t *testing.T) {
	db := openTestDB(t)
	seedDonation(t, db, "pi_don_1", enums.PaymentStatusPending)
	svc := newTestService(t, db, nil)

	event := intentEvent(t, stripe.EventTypePaymentIntentSucceeded, map[string]any{
		"id":                   "pi_don_1",
		"payment_method_types": []string{"us_bank_account"},
	})
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	var stored models.Donation
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("load donation: %v", err)
	}
	if stored.Status != enums.PaymentStatusSucceeded {
		t.Fatalf("expected succeeded, got %s", stored.Status)
	}
	if stored.PaidAt == nil {
		t.Fatal("expected paid_at to be set")
	}
	if stored.StripePaymentMethod == nil || *stored.StripePaymentMethod != "us_bank_account" {
		t.Fatalf("expected payment method label, got %v", stored.StripePaymentMethod)
	}
}

func TestSucceededEventConfirmsBooking(t *testing.T) {
	db := openTestDB(t)
	seedBooking(t, db, "pi_tkt_1")
	svc := newTestService(t, db, nil)

	event := intentEvent(t, stripe.EventTypePaymentIntentSucceeded, map[string]any{
		"id": "pi_tkt_1",
	})
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	var stored models.TicketBooking
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("load booking: %v", err)
	}
	if stored.Status != enums.BookingStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", stored.Status)
	}
	if stored.PaymentStatus != enums.BookingPaymentPaid {
		t.Fatalf("expected paid, got %s", stored.PaymentStatus)
	}
	if stored.PaymentMethod == nil || *stored.PaymentMethod != "card" {
		t.Fatalf("expected card default, got %v", stored.PaymentMethod)
	}
}

func TestFailedEventRecordsReason(t *testing.T) {
	db := openTestDB(t)
	seedDonation(t, db, "pi_don_2", enums.PaymentStatusPending)
	seedBooking(t, db, "pi_tkt_2")
	svc := newTestService(t, db, nil)
	ctx := context.Background()

	donationEvent := intentEvent(t, stripe.EventTypePaymentIntentPaymentFailed, map[string]any{
		"id":                 "pi_don_2",
		"last_payment_error": map[string]any{"message": "card declined"},
	})
	if err := svc.HandleEvent(ctx, donationEvent); err != nil {
		t.Fatalf("handle donation failure: %v", err)
	}

	var donation models.Donation
	if err := db.First(&donation).Error; err != nil {
		t.Fatalf("load donation: %v", err)
	}
	if donation.Status != enums.PaymentStatusFailed {
		t.Fatalf("expected failed, got %s", donation.Status)
	}
	if donation.Error == nil || *donation.Error != "card declined" {
		t.Fatalf("expected failure reason, got %v", donation.Error)
	}

	bookingEvent := intentEvent(t, stripe.EventTypePaymentIntentPaymentFailed, map[string]any{
		"id": "pi_tkt_2",
	})
	bookingEvent.ID = "evt_tkt_failure"
	if err := svc.HandleEvent(ctx, bookingEvent); err != nil {
		t.Fatalf("handle booking failure: %v", err)
	}

	var booking models.TicketBooking
	if err := db.First(&booking).Error; err != nil {
		t.Fatalf("load booking: %v", err)
	}
	if booking.Status != enums.BookingStatusCancelled || booking.PaymentStatus != enums.BookingPaymentFailed {
		t.Fatalf("unexpected statuses %s/%s", booking.Status, booking.PaymentStatus)
	}
	if booking.Metadata["payment_error"] != "Payment failed" {
		t.Fatalf("expected default failure reason, got %v", booking.Metadata)
	}
}

func TestTerminalStatusIsNeverOverwritten(t *testing.T) {
	db := openTestDB(t)
	seedDonation(t, db, "pi_don_3", enums.PaymentStatusSucceeded)
	svc := newTestService(t, db, nil)

	event := intentEvent(t, stripe.EventTypePaymentIntentPaymentFailed, map[string]any{
		"id": "pi_don_3",
	})
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	var stored models.Donation
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("load donation: %v", err)
	}
	if stored.Status != enums.PaymentStatusSucceeded {
		t.Fatalf("terminal status was overwritten to %s", stored.Status)
	}
}

func TestCancelledBookingIsNotReopenedBySucceededEvent(t *testing.T) {
	db := openTestDB(t)
	booking := seedBooking(t, db, "pi_tkt_late")
	err := db.Model(booking).Update("status", enums.BookingStatusCancelled).Error
	if err != nil {
		t.Fatalf("cancel booking: %v", err)
	}
	svc := newTestService(t, db, nil)

	event := intentEvent(t, stripe.EventTypePaymentIntentSucceeded, map[string]any{
		"id": "pi_tkt_late",
	})
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	var stored models.TicketBooking
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("load booking: %v", err)
	}
	if stored.Status != enums.BookingStatusCancelled {
		t.Fatalf("cancelled booking was reopened to %s", stored.Status)
	}
	if stored.PaymentStatus != enums.BookingPaymentPending {
		t.Fatalf("payment status changed on a cancelled booking: %s", stored.PaymentStatus)
	}
}

func TestUnknownEventTypeIsAcknowledged(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService(t, db, nil)

	event := intentEvent(t, "charge.refunded", map[string]any{"id": "ch_1"})
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("unknown events must be acknowledged, got %v", err)
	}
}

type memStore struct {
	keys map[string]string
}

func newMemStore() *memStore {
	return &memStore{keys: map[string]string{}}
}

func (m *memStore) Get(ctx context.Context, key string) (string, error) {
	return m.keys[key], nil
}

func (m *memStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, exists := m.keys[key]; exists {
		return false, nil
	}
	m.keys[key] = fmt.Sprint(value)
	return true, nil
}

func (m *memStore) IdempotencyKey(scope, id string) string {
	return "test:idempotency:" + scope + ":" + id
}

func (m *memStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.keys, key)
	}
	return nil
}

type countingUpdater struct {
	calls int
	rows  int64
	err   error
}

func (c *countingUpdater) UpdateByIntentID(ctx context.Context, intentID string, updates map[string]any) (int64, error) {
	c.calls++
	if c.err != nil {
		return 0, c.err
	}
	return c.rows, nil
}

func TestDuplicateDeliveryIsDropped(t *testing.T) {
	guard, err := NewIdempotencyGuard(newMemStore(), time.Hour, "stripe")
	if err != nil {
		t.Fatalf("new guard: %v", err)
	}
	donationRepo := &countingUpdater{rows: 1}
	svc, err := NewService(ServiceParams{
		DonationRepo: donationRepo,
		TicketRepo:   &countingUpdater{},
		Guard:        guard,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	event := intentEvent(t, stripe.EventTypePaymentIntentSucceeded, map[string]any{"id": "pi_dup"})
	if err := svc.HandleEvent(ctx, event); err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}
	if err := svc.HandleEvent(ctx, event); err != nil {
		t.Fatalf("replay must be acknowledged, got %v", err)
	}
	if donationRepo.calls != 1 {
		t.Fatalf("expected exactly one update, got %d", donationRepo.calls)
	}
}

func TestFailedProcessingReleasesClaim(t *testing.T) {
	guard, err := NewIdempotencyGuard(newMemStore(), time.Hour, "stripe")
	if err != nil {
		t.Fatalf("new guard: %v", err)
	}
	donationRepo := &countingUpdater{err: errors.New("db down"), rows: 0}
	svc, err := NewService(ServiceParams{
		DonationRepo: donationRepo,
		TicketRepo:   &countingUpdater{},
		Guard:        guard,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	ctx := context.Background()

	event := intentEvent(t, stripe.EventTypePaymentIntentSucceeded, map[string]any{"id": "pi_retry"})
	if err := svc.HandleEvent(ctx, event); err == nil {
		t.Fatal("expected processing error")
	}

	donationRepo.err = nil
	donationRepo.rows = 1
	if err := svc.HandleEvent(ctx, event); err != nil {
		t.Fatalf("retry after release failed: %v", err)
	}
	if donationRepo.calls != 2 {
		t.Fatalf("expected retry to reach the repo, got %d calls", donationRepo.calls)
	}
}
