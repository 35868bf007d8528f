package repository

import (
	"context"
	"errors"
	"time"

	"urbanfix/internal/model"

	"gorm.io/gorm"
)

// SubscriptionRepository persists technician subscriptions.
type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, sub *model.Subscription) error
	GetByTechnicianID(ctx context.Context, technicianID string) (*model.Subscription, error)
	UpdateStatus(ctx context.Context, technicianID, status string) error
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository creates the gorm-backed SubscriptionRepository.
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) CreateSubscription(ctx context.Context, sub *model.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *subscriptionRepository) GetByTechnicianID(ctx context.Context, technicianID string) (*model.Subscription, error) {
	var sub model.Subscription
	if err := r.db.WithContext(ctx).Where("technician_id = ?", technicianID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *subscriptionRepository) UpdateStatus(ctx context.Context, technicianID, status string) error {
	return r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("technician_id = ?", technicianID).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()}).Error
}
