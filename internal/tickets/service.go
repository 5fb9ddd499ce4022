package tickets

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	stripego "github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/relevant-recovery/recovery-backend/internal/events"
	"github.com/relevant-recovery/recovery-backend/pkg/db/models"
	"github.com/relevant-recovery/recovery-backend/pkg/enums"
	pkgerrors "github.com/relevant-recovery/recovery-backend/pkg/errors"
	"github.com/relevant-recovery/recovery-backend/pkg/logger"
	"github.com/relevant-recovery/recovery-backend/pkg/metrics"
	"github.com/relevant-recovery/recovery-backend/pkg/money"
	"github.com/relevant-recovery/recovery-backend/pkg/pagination"
	pkgstripe "github.com/relevant-recovery/recovery-backend/pkg/stripe"
	"github.com/relevant-recovery/recovery-backend/pkg/types"
)

// MaxTicketsPerBooking caps how many seats one reservation can hold.
const MaxTicketsPerBooking = 10

// Service exposes ticket booking operations.
type Service interface {
	Book(ctx context.Context, input BookTicketInput) (*BookingResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*BookingDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BookingStatus) (*BookingDTO, error)
	ListByEvent(ctx context.Context, eventID uuid.UUID, params pagination.Params) (*BookingListDTO, error)
	EventStats(ctx context.Context, eventID uuid.UUID) (*EventStatsDTO, error)
	ConfirmPayment(ctx context.Context, input ConfirmPaymentInput) (*BookingDTO, error)
}

// TxRunner runs a function inside a database transaction. The booking flow
// needs one so the event row lock and the capacity check commit together.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CustomerInput is the customer block submitted with a reservation.
type CustomerInput struct {
	Name    string
	Email   string
	Phone   string
	City    string
	State   string
	Country string
}

// BookTicketInput holds the validated payload to reserve tickets.
type BookTicketInput struct {
	EventID  uuid.UUID
	Customer CustomerInput
	Quantity int
	Metadata types.Metadata
}

// ConfirmPaymentInput identifies the intent and booking to confirm.
type ConfirmPaymentInput struct {
	PaymentIntentID string
	TicketID        uuid.UUID
}

type service struct {
	tx      TxRunner
	repo    *Repository
	events  *events.Repository
	intents pkgstripe.IntentClient
	metrics *metrics.PaymentMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewService constructs a ticket booking service. A nil intent client switches
// the payment flow to mock intents.
func NewService(tx TxRunner, repo *Repository, eventsRepo *events.Repository, intents pkgstripe.IntentClient, m *metrics.PaymentMetrics, logg *logger.Logger) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("ticket repository required")
	}
	if eventsRepo == nil {
		return nil, fmt.Errorf("event repository required")
	}
	return &service{
		tx:      tx,
		repo:    repo,
		events:  eventsRepo,
		intents: intents,
		metrics: m,
		logg:    logg,
		now:     time.Now,
	}, nil
}

func (s *service) Book(ctx context.Context, input BookTicketInput) (*BookingResult, error) {
	if err := validateBookInput(input); err != nil {
		return nil, err
	}

	booking := &models.TicketBooking{
		EventID:         input.EventID,
		CustomerName:    strings.TrimSpace(input.Customer.Name),
		CustomerEmail:   strings.ToLower(strings.TrimSpace(input.Customer.Email)),
		CustomerPhone:   trimmedOrNil(input.Customer.Phone),
		CustomerCity:    trimmedOrNil(input.Customer.City),
		CustomerState:   trimmedOrNil(input.Customer.State),
		CustomerCountry: trimmedOrNil(input.Customer.Country),
		Quantity:        input.Quantity,
		Currency:        enums.CurrencyUSD,
		Status:          enums.BookingStatusReserved,
		PaymentStatus:   enums.BookingPaymentPending,
		Metadata:        input.Metadata,
	}

	var event *models.Event
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		eventsRepo := s.events.WithTx(tx)

		locked, err := eventsRepo.FindByIDForUpdate(ctx, input.EventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return s.classifyMissingEvent(ctx, input.EventID)
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
		}
		event = locked

		if event.Capacity != nil {
			held, err := eventsRepo.CountSeatsHeld(ctx, event.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count seats held")
			}
			available := *event.Capacity - held
			if available < 0 {
				available = 0
			}
			if input.Quantity > available {
				return pkgerrors.New(pkgerrors.CodeConflict, availableTicketsMessage(available)).
					WithDetails(map[string]string{
						"availableTickets": strconv.Itoa(available),
						"requestedTickets": strconv.Itoa(input.Quantity),
					})
			}
		}

		booking.UnitPriceCents = unitPriceFor(event)
		if _, err := s.repo.WithTx(tx).Create(ctx, booking); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert booking")
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserve tickets")
	}

	clientSecret, err := s.attachIntent(ctx, booking, event)
	if err != nil {
		return nil, err
	}

	return &BookingResult{
		ClientSecret: clientSecret,
		TicketID:     booking.ID,
		TicketNumber: booking.TicketNumber(),
		Amount:       booking.TotalAmountCents,
		Currency:     booking.Currency.String(),
		Event:        events.NewEventSummaryDTO(event),
		Customer: BookingCustomerDTO{
			Name:  booking.CustomerName,
			Email: booking.CustomerEmail,
		},
		Quantity:    booking.Quantity,
		TotalAmount: booking.TotalAmountCents,
	}, nil
}

// classifyMissingEvent distinguishes a vanished event from an unpublished one
// so the caller gets an honest status code.
func (s *service) classifyMissingEvent(ctx context.Context, eventID uuid.UUID) error {
	if _, err := s.events.FindByID(ctx, eventID); err == nil {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "this event is no longer available for booking")
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
}

func (s *service) attachIntent(ctx context.Context, booking *models.TicketBooking, event *models.Event) (string, error) {
	if s.intents == nil {
		mock := pkgstripe.NewMockIntent(s.now())
		booking.PaymentIntentID = &mock.ID
		if _, err := s.repo.Save(ctx, booking); err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: store mock intent id")
		}
		s.metrics.IncIntentCreated(metrics.FlowTicket, metrics.ModeMock)
		return mock.ClientSecret, nil
	}

	customer, err := s.intents.CreateCustomer(ctx, s.buildCustomerParams(booking, event))
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "ticket.customer.create_failed", err)
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create stripe customer")
	}

	intent, err := s.intents.CreateIntent(ctx, s.buildIntentParams(booking, event, customer.ID))
	if err != nil {
		// The reservation stays on hold; the customer can retry payment
		// without losing the seats.
		if s.logg != nil {
			s.logg.Error(ctx, "ticket.intent.create_failed", err)
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment intent")
	}

	booking.PaymentIntentID = &intent.ID
	booking.StripeCustomerID = &customer.ID
	if _, err := s.repo.Save(ctx, booking); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: store intent id")
	}
	s.metrics.IncIntentCreated(metrics.FlowTicket, metrics.ModeStripe)
	return intent.ClientSecret, nil
}

func (s *service) buildCustomerParams(booking *models.TicketBooking, event *models.Event) *stripego.CustomerParams {
	params := &stripego.CustomerParams{
		Email: stripego.String(booking.CustomerEmail),
		Name:  stripego.String(booking.CustomerName),
		Phone: booking.CustomerPhone,
	}
	params.Metadata = map[string]string{
		"ticket_id":   booking.ID.String(),
		"event_id":    event.ID.String(),
		"event_title": event.Title,
		"quantity":    strconv.Itoa(booking.Quantity),
	}
	return params
}

func (s *service) buildIntentParams(booking *models.TicketBooking, event *models.Event, customerID string) *stripego.PaymentIntentParams {
	params := &stripego.PaymentIntentParams{
		Amount:       stripego.Int64(int64(booking.TotalAmountCents)),
		Currency:     stripego.String(booking.Currency.String()),
		Customer:     stripego.String(customerID),
		Description:  stripego.String(fmt.Sprintf("%d ticket(s) for %s", booking.Quantity, event.Title)),
		ReceiptEmail: stripego.String(booking.CustomerEmail),
		Shipping: &stripego.ShippingDetailsParams{
			Name: stripego.String(booking.CustomerName),
			Address: &stripego.AddressParams{
				City:    booking.CustomerCity,
				State:   booking.CustomerState,
				Country: booking.CustomerCountry,
			},
		},
	}
	params.Metadata = map[string]string{
		"source":       "ticket_booking",
		"ticket_id":    booking.ID.String(),
		"event_id":     event.ID.String(),
		"event_title":  event.Title,
		"quantity":     strconv.Itoa(booking.Quantity),
		"unit_price":   strconv.Itoa(booking.UnitPriceCents),
		"total_amount": strconv.Itoa(booking.TotalAmountCents),
	}
	return params
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*BookingDTO, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ticket not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ticket")
	}

	dto := NewBookingDTO(booking)
	if event, err := s.events.FindByID(ctx, booking.EventID); err == nil {
		summary := events.NewEventSummaryDTO(event)
		dto.Event = &summary
	}
	return dto, nil
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BookingStatus) (*BookingDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"status": "is invalid"})
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ticket not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ticket")
	}

	booking.Status = status
	if _, err := s.repo.Save(ctx, booking); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update ticket status")
	}
	return NewBookingDTO(booking), nil
}

func (s *service) ListByEvent(ctx context.Context, eventID uuid.UUID, params pagination.Params) (*BookingListDTO, error) {
	result, err := s.repo.ListByEvent(ctx, eventID, params)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tickets")
	}
	dtos := make([]BookingDTO, len(result.Bookings))
	for i := range result.Bookings {
		dtos[i] = *NewBookingDTO(&result.Bookings[i])
	}
	return &BookingListDTO{Bookings: dtos, NextCursor: result.NextCursor}, nil
}

func (s *service) EventStats(ctx context.Context, eventID uuid.UUID) (*EventStatsDTO, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load event")
	}

	rows, err := s.repo.StatsByEvent(ctx, eventID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate tickets")
	}

	stats := &EventStatsDTO{EventID: eventID, ByStatus: make([]StatusStatsDTO, 0, len(rows))}
	for _, row := range rows {
		stats.TotalBookings += row.Count
		stats.TotalSeats += row.Seats
		if enums.BookingStatus(row.Status).CountsAgainstCapacity() {
			stats.SeatsHeld += row.Seats
		}
		if row.Status == enums.BookingStatusConfirmed.String() {
			stats.ConfirmedRevenues += row.RevenueCents
		}
		stats.ByStatus = append(stats.ByStatus, StatusStatsDTO{
			Status:       row.Status,
			Count:        row.Count,
			Seats:        row.Seats,
			RevenueCents: row.RevenueCents,
		})
	}
	return stats, nil
}

func (s *service) ConfirmPayment(ctx context.Context, input ConfirmPaymentInput) (*BookingDTO, error) {
	if strings.TrimSpace(input.PaymentIntentID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"paymentIntentId": "is required"})
	}

	booking, err := s.repo.FindByID(ctx, input.TicketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ticket not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ticket")
	}
	if booking.PaymentIntentID == nil || *booking.PaymentIntentID != input.PaymentIntentID {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "payment intent does not match this ticket")
	}
	if booking.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("ticket is %s and cannot be confirmed", booking.Status))
	}

	method := "card"
	if pkgstripe.IsMockIntentID(input.PaymentIntentID) {
		if s.intents != nil {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "mock intents cannot be confirmed against a live processor")
		}
	} else {
		if s.intents == nil {
			return nil, pkgerrors.New(pkgerrors.CodeDependency, "payment processing is not configured")
		}
		intent, err := s.intents.RetrieveIntent(ctx, input.PaymentIntentID, nil)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "retrieve payment intent")
		}
		if intent.Status != stripego.PaymentIntentStatusSucceeded {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("payment not succeeded, status: %s", intent.Status))
		}
		if len(intent.PaymentMethodTypes) > 0 {
			method = intent.PaymentMethodTypes[0]
		}
	}

	booking.Status = enums.BookingStatusConfirmed
	booking.PaymentStatus = enums.BookingPaymentPaid
	booking.PaymentMethod = &method
	if _, err := s.repo.Save(ctx, booking); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: confirm ticket")
	}
	return NewBookingDTO(booking), nil
}

func validateBookInput(input BookTicketInput) error {
	details := map[string]string{}
	if input.EventID == uuid.Nil {
		details["eventId"] = "is required"
	}
	required := map[string]string{
		"customerName":    input.Customer.Name,
		"customerEmail":   input.Customer.Email,
		"customerPhone":   input.Customer.Phone,
		"customerCity":    input.Customer.City,
		"customerState":   input.Customer.State,
		"customerCountry": input.Customer.Country,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			details[field] = "is required"
		}
	}
	if name := strings.TrimSpace(input.Customer.Name); name != "" && len(name) < 2 {
		details["customerName"] = "must be at least 2 characters"
	}
	switch {
	case input.Quantity < 1:
		details["quantity"] = "must be at least 1"
	case input.Quantity > MaxTicketsPerBooking:
		details["quantity"] = fmt.Sprintf("maximum %d tickets per booking", MaxTicketsPerBooking)
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

// unitPriceFor resolves the per-ticket price, treating events without a parsed
// ticket cost as free.
func unitPriceFor(event *models.Event) int {
	if event.TicketCostCents != nil {
		return *event.TicketCostCents
	}
	if cents := money.TicketCostFromCostString(event.Cost); cents != nil {
		return *cents
	}
	return 0
}

// availableTicketsMessage matches what the booking form shows the customer.
func availableTicketsMessage(available int) string {
	plural := "s"
	if available == 1 {
		plural = ""
	}
	return fmt.Sprintf("Only %d ticket%s available", available, plural)
}

func trimmedOrNil(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
