package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"urbanfix/internal/interfaces"
	"urbanfix/internal/model"
	"urbanfix/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrProviderUnavailable wraps payment-processor failures so handlers can map
// them apart from our own store errors.
var ErrProviderUnavailable = errors.New("payment provider unavailable")

// ErrAlreadySubscribed flags a second subscription attempt for the same
// technician.
var ErrAlreadySubscribed = errors.New("technician already has a subscription")

// BillingService creates and reads technician subscriptions against an
// external payment processor. Webhook-driven updates live elsewhere; reads
// refresh the status opportunistically instead.
type BillingService struct {
	repo     repository.SubscriptionRepository
	provider interfaces.PaymentProvider
	plans    map[string]float64 // plan name -> monthly price in ARS
	backURL  string
	logger   *logrus.Logger
}

// NewBillingService creates a BillingService over a *gorm.DB.
func NewBillingService(db *gorm.DB, provider interfaces.PaymentProvider, plans map[string]float64, backURL string, logger *logrus.Logger) *BillingService {
	return NewBillingServiceWithDeps(repository.NewSubscriptionRepository(db), provider, plans, backURL, logger)
}

// NewBillingServiceWithDeps creates a BillingService with injected
// dependencies (tests use fakes for both).
func NewBillingServiceWithDeps(repo repository.SubscriptionRepository, provider interfaces.PaymentProvider, plans map[string]float64, backURL string, logger *logrus.Logger) *BillingService {
	return &BillingService{repo: repo, provider: provider, plans: plans, backURL: backURL, logger: logger}
}

// CreateSubscription opens a recurring preapproval with the processor and
// persists the record as pending. The processor's checkout URL is returned to
// the app so the technician can authorize the charge.
func (s *BillingService) CreateSubscription(ctx context.Context, technicianID, email, plan string) (*model.Subscription, error) {
	price, ok := s.plans[plan]
	if !ok {
		return nil, validationErr("plan", "unknown plan")
	}
	if existing, err := s.repo.GetByTechnicianID(ctx, technicianID); err == nil && existing != nil {
		return nil, ErrAlreadySubscribed
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("load subscription: %w", err)
	}

	pre, err := s.provider.CreatePreapproval(ctx, &interfaces.PreapprovalRequest{
		Reason:      fmt.Sprintf("UrbanFix %s plan", plan),
		PayerEmail:  email,
		AmountARS:   price,
		BackURL:     s.backURL,
		ExternalRef: technicianID,
	})
	if err != nil {
		s.logger.WithError(err).WithField("technician_id", technicianID).Error("preapproval create failed")
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	now := time.Now()
	sub := &model.Subscription{
		TechnicianID:      technicianID,
		Plan:              plan,
		Status:            "pending",
		ProviderReference: pre.ID,
		CheckoutURL:       pre.CheckoutURL,
		PriceARS:          price,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.CreateSubscription(ctx, sub); err != nil {
		return nil, fmt.Errorf("save subscription: %w", err)
	}
	return sub, nil
}

// GetSubscription reads the technician's subscription, refreshing its status
// from the processor when possible. A failed refresh is logged and the stored
// record returned as-is.
func (s *BillingService) GetSubscription(ctx context.Context, technicianID string) (*model.Subscription, error) {
	sub, err := s.repo.GetByTechnicianID(ctx, technicianID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("load subscription: %w", err)
	}
	if sub.ProviderReference == "" || s.provider == nil {
		return sub, nil
	}
	pre, err := s.provider.GetPreapproval(ctx, sub.ProviderReference)
	if err != nil {
		s.logger.WithError(err).WithField("technician_id", technicianID).Warn("subscription status refresh failed")
		return sub, nil
	}
	if mapped := mapProviderStatus(pre.Status); mapped != "" && mapped != sub.Status {
		if err := s.repo.UpdateStatus(ctx, technicianID, mapped); err != nil {
			s.logger.WithError(err).Warn("subscription status update failed")
		} else {
			sub.Status = mapped
		}
	}
	return sub, nil
}

// mapProviderStatus translates processor preapproval states onto ours.
func mapProviderStatus(providerStatus string) string {
	switch providerStatus {
	case "authorized":
		return "active"
	case "paused":
		return "past_due"
	case "cancelled":
		return "cancelled"
	case "pending":
		return "pending"
	}
	return ""
}
