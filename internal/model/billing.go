package model

import "time"

// Subscription corresponds to the subscriptions table: one technician's
// recurring plan. ProviderReference is the payment processor's preapproval id;
// status moves pending -> active once the processor confirms, and is refreshed
// opportunistically on read (webhooks are handled elsewhere).
type Subscription struct {
	ID                uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	TechnicianID      string     `gorm:"column:technician_id;type:uuid;uniqueIndex;not null"`
	Plan              string     `gorm:"column:plan;type:varchar(32);not null"`
	Status            string     `gorm:"column:status;type:varchar(16);not null;default:'pending'"` // pending/active/past_due/cancelled
	ProviderReference string     `gorm:"column:provider_reference;type:varchar(64)"`
	CheckoutURL       string     `gorm:"column:checkout_url;type:varchar(512)"`
	PriceARS          float64    `gorm:"column:price_ars;type:numeric(12,2);not null"`
	CurrentPeriodEnd  *time.Time `gorm:"column:current_period_end;type:timestamp"`
	CreatedAt         time.Time  `gorm:"column:created_at;type:timestamp;default:now()"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;type:timestamp;default:now()"`
}

func (Subscription) TableName() string { return "subscriptions" }
