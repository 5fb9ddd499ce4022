package stripewebhook

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stripe/stripe-go/v84"

	pkgerrors "github.com/relevant-recovery/recovery-backend/pkg/errors"
	"github.com/relevant-recovery/recovery-backend/pkg/logger"
	"github.com/relevant-recovery/recovery-backend/pkg/metrics"
	"github.com/relevant-recovery/recovery-backend/pkg/types"
)

// intentUpdater is the slice of a repository the webhook needs: a guarded
// update keyed by payment intent id that reports how many rows changed.
type intentUpdater interface {
	UpdateByIntentID(ctx context.Context, intentID string, updates map[string]any) (int64, error)
}

type ServiceParams struct {
	DonationRepo intentUpdater
	TicketRepo   intentUpdater
	Guard        *IdempotencyGuard
	Metrics      *metrics.PaymentMetrics
	Logger       *logger.Logger
}

// Service applies Stripe payment intent transitions to donations and ticket
// bookings. An intent id matches exactly one of the two tables; both are tried
// because the webhook endpoint is shared.
type Service struct {
	donations intentUpdater
	tickets   intentUpdater
	guard     *IdempotencyGuard
	metrics   *metrics.PaymentMetrics
	logg      *logger.Logger
	now       func() time.Time
}

func NewService(params ServiceParams) (*Service, error) {
	if params.DonationRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "donation repo required")
	}
	if params.TicketRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "ticket repo required")
	}
	return &Service{
		donations: params.DonationRepo,
		tickets:   params.TicketRepo,
		guard:     params.Guard,
		metrics:   params.Metrics,
		logg:      params.Logger,
		now:       time.Now,
	}, nil
}

// HandleEvent processes one verified Stripe event. Unknown event types are
// acknowledged without side effects so Stripe stops re-delivering them.
func (s *Service) HandleEvent(ctx context.Context, event *stripe.Event) error {
	if event == nil || event.Data == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "stripe event data required")
	}
	eventType := string(event.Type)

	if s.guard != nil {
		duplicate, err := s.guard.CheckAndMark(ctx, event.ID)
		if err != nil {
			// Redis being down must not drop payment state transitions;
			// the guarded updates below are safe to re-apply.
			if s.logg != nil {
				s.logg.Error(ctx, "webhook.idempotency.check_failed", err)
			}
		} else if duplicate {
			s.metrics.IncWebhookEvent(eventType, metrics.OutcomeDuplicate)
			return nil
		}
	}

	err := s.dispatch(ctx, event)
	if err != nil {
		if s.guard != nil {
			// Release the claim so Stripe's retry can reprocess the event.
			if delErr := s.guard.Delete(ctx, event.ID); delErr != nil && s.logg != nil {
				s.logg.Error(ctx, "webhook.idempotency.release_failed", delErr)
			}
		}
		s.metrics.IncWebhookEvent(eventType, metrics.OutcomeError)
		return err
	}
	return nil
}

func (s *Service) dispatch(ctx context.Context, event *stripe.Event) error {
	eventType := string(event.Type)

	switch event.Type {
	case stripe.EventTypePaymentIntentSucceeded:
		intent, err := decodeIntent(event)
		if err != nil {
			return err
		}
		return s.applySucceeded(ctx, eventType, intent)
	case stripe.EventTypePaymentIntentPaymentFailed:
		intent, err := decodeIntent(event)
		if err != nil {
			return err
		}
		return s.applyFailed(ctx, eventType, intent)
	default:
		if s.logg != nil {
			s.logg.Info(s.logg.WithField(ctx, "event_type", eventType), "webhook.event.unhandled")
		}
		s.metrics.IncWebhookEvent(eventType, metrics.OutcomeSkipped)
		return nil
	}
}

func (s *Service) applySucceeded(ctx context.Context, eventType string, intent *stripe.PaymentIntent) error {
	method := paymentMethodLabel(intent)
	paidAt := s.now().UTC()

	rows, err := s.donations.UpdateByIntentID(ctx, intent.ID, map[string]any{
		"status":                "succeeded",
		"paid_at":               paidAt,
		"stripe_payment_method": method,
		"error":                 nil,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: mark donation succeeded")
	}
	if rows > 0 {
		s.metrics.IncWebhookEvent(eventType, metrics.OutcomeProcessed)
		return nil
	}

	rows, err = s.tickets.UpdateByIntentID(ctx, intent.ID, map[string]any{
		"status":         "confirmed",
		"payment_status": "paid",
		"payment_method": method,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: confirm ticket booking")
	}
	if rows > 0 {
		s.metrics.IncWebhookEvent(eventType, metrics.OutcomeProcessed)
		return nil
	}

	// No pending record for this intent: either it already settled or the
	// intent was created outside this system.
	if s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "intent_id", intent.ID), "webhook.intent.unmatched")
	}
	s.metrics.IncWebhookEvent(eventType, metrics.OutcomeSkipped)
	return nil
}

func (s *Service) applyFailed(ctx context.Context, eventType string, intent *stripe.PaymentIntent) error {
	message := failureMessage(intent)

	rows, err := s.donations.UpdateByIntentID(ctx, intent.ID, map[string]any{
		"status": "failed",
		"error":  message,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: mark donation failed")
	}
	if rows > 0 {
		s.metrics.IncWebhookEvent(eventType, metrics.OutcomeProcessed)
		return nil
	}

	// The failure reason replaces any earlier one; repeated failures must not
	// accumulate.
	rows, err = s.tickets.UpdateByIntentID(ctx, intent.ID, map[string]any{
		"status":         "cancelled",
		"payment_status": "failed",
		"metadata":       types.Metadata{"payment_error": message},
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: cancel ticket booking")
	}
	if rows > 0 {
		s.metrics.IncWebhookEvent(eventType, metrics.OutcomeProcessed)
		return nil
	}

	if s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "intent_id", intent.ID), "webhook.intent.unmatched")
	}
	s.metrics.IncWebhookEvent(eventType, metrics.OutcomeSkipped)
	return nil
}

func decodeIntent(event *stripe.Event) (*stripe.PaymentIntent, error) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode payment intent event")
	}
	if intent.ID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment intent id missing")
	}
	return &intent, nil
}

func paymentMethodLabel(intent *stripe.PaymentIntent) string {
	if len(intent.PaymentMethodTypes) > 0 {
		return intent.PaymentMethodTypes[0]
	}
	return "card"
}

func failureMessage(intent *stripe.PaymentIntent) string {
	if intent.LastPaymentError != nil && intent.LastPaymentError.Msg != "" {
		return intent.LastPaymentError.Msg
	}
	return "Payment failed"
}
