package donations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	stripego "github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

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

// Service exposes donation operations.
type Service interface {
	Create(ctx context.Context, input CreateDonationInput) (*CreateDonationResult, error)
	Get(ctx context.Context, id uuid.UUID) (*DonationDTO, error)
	List(ctx context.Context, params pagination.Params) (*DonationListDTO, error)
}

// CreateDonationInput holds the validated payload to create a donation.
// Amount is in dollars as submitted by the form.
type CreateDonationInput struct {
	FirstName string
	LastName  string
	Org       *string
	Title     *string
	Email     string
	EmailWork *string
	Phone     *string
	Address   *string
	City      *string
	State     *string
	Zip       *string
	Country   string

	Amount        float64
	PaymentMethod enums.PaymentMethod

	Volunteer      bool
	FamilyServices bool
}

type service struct {
	repo    *Repository
	intents pkgstripe.IntentClient
	metrics *metrics.PaymentMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewService constructs a donation service. A nil intent client switches the
// stripe flow to mock intents.
func NewService(repo *Repository, intents pkgstripe.IntentClient, m *metrics.PaymentMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("donation repository required")
	}
	return &service{
		repo:    repo,
		intents: intents,
		metrics: m,
		logg:    logg,
		now:     time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateDonationInput) (*CreateDonationResult, error) {
	amountCents := money.DollarsToCents(decimal.NewFromFloat(input.Amount))
	if amountCents <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"amount": "must be greater than 0"})
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"paymentMethod": "is invalid"})
	}

	country := strings.ToUpper(strings.TrimSpace(input.Country))
	if country == "" {
		country = "US"
	}

	donation := &models.Donation{
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Org:         input.Org,
		Title:       input.Title,
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		EmailWork:   input.EmailWork,
		Phone:       input.Phone,
		Address:     input.Address,
		City:        input.City,
		State:       input.State,
		Zip:         input.Zip,
		Country:     country,
		AmountCents: amountCents,
		Currency:    enums.CurrencyUSD,
		Method:      input.PaymentMethod,
		Status:      enums.PaymentStatusPending,
		Metadata:    buildProvenanceMetadata(input),
	}

	// Persist before the processor call so an outage never loses the pledge.
	if _, err := s.repo.Create(ctx, donation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert donation")
	}

	var clientSecret *string
	if donation.Method == enums.PaymentMethodStripe {
		secret, err := s.attachIntent(ctx, donation)
		if err != nil {
			return nil, err
		}
		clientSecret = secret
	}

	return &CreateDonationResult{
		Donation:           NewDonationDTO(donation),
		StripeClientSecret: clientSecret,
	}, nil
}

func (s *service) attachIntent(ctx context.Context, donation *models.Donation) (*string, error) {
	if s.intents == nil {
		mock := pkgstripe.NewMockIntent(s.now())
		donation.StripePaymentIntentID = &mock.ID
		if _, err := s.repo.Save(ctx, donation); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: store mock intent id")
		}
		s.metrics.IncIntentCreated(metrics.FlowDonation, metrics.ModeMock)
		secret := mock.ClientSecret
		return &secret, nil
	}

	intent, err := s.intents.CreateIntent(ctx, s.buildIntentParams(donation))
	if err != nil {
		// The donation stays pending; the donor can retry without losing
		// the record.
		if s.logg != nil {
			s.logg.Error(ctx, "donation.intent.create_failed", err)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment intent")
	}

	donation.StripePaymentIntentID = &intent.ID
	if _, err := s.repo.Save(ctx, donation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: store intent id")
	}
	s.metrics.IncIntentCreated(metrics.FlowDonation, metrics.ModeStripe)

	secret := intent.ClientSecret
	return &secret, nil
}

func (s *service) buildIntentParams(donation *models.Donation) *stripego.PaymentIntentParams {
	description := fmt.Sprintf("Donation from %s %s", donation.FirstName, donation.LastName)
	if donation.Org != nil && *donation.Org != "" {
		description = fmt.Sprintf("%s (%s)", description, *donation.Org)
	}

	params := &stripego.PaymentIntentParams{
		Amount:       stripego.Int64(int64(donation.AmountCents)),
		Currency:     stripego.String(donation.Currency.String()),
		ReceiptEmail: stripego.String(donation.Email),
		Description:  stripego.String(description),
		Shipping: &stripego.ShippingDetailsParams{
			Name: stripego.String(fmt.Sprintf("%s %s", donation.FirstName, donation.LastName)),
			Address: &stripego.AddressParams{
				Line1:      stringOrNil(donation.Address),
				City:       stringOrNil(donation.City),
				State:      stringOrNil(donation.State),
				PostalCode: stringOrNil(donation.Zip),
				Country:    stripego.String(donation.Country),
			},
		},
	}
	params.Metadata = map[string]string{
		"source":      "donation",
		"donation_id": donation.ID.String(),
	}
	return params
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*DonationDTO, error) {
	donation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "donation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load donation")
	}
	return NewDonationDTO(donation), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*DonationListDTO, error) {
	result, err := s.repo.List(ctx, params)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list donations")
	}
	dtos := make([]DonationDTO, len(result.Donations))
	for i := range result.Donations {
		dtos[i] = *NewDonationDTO(&result.Donations[i])
	}
	return &DonationListDTO{Donations: dtos, NextCursor: result.NextCursor}, nil
}

func buildProvenanceMetadata(input CreateDonationInput) types.Metadata {
	meta := types.Metadata{"source": "donation"}
	if input.Volunteer {
		meta = meta.Set("volunteer", "true")
	}
	if input.FamilyServices {
		meta = meta.Set("family_services", "true")
	}
	return meta
}

func stringOrNil(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	return value
}
