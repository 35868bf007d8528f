package model

import "time"

// SupportTicket corresponds to the support_tickets table (admin inbox).
type SupportTicket struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	Subject       string    `gorm:"column:subject;type:varchar(256);not null"`
	Body          string    `gorm:"column:body;type:text;not null"`
	ReporterEmail string    `gorm:"column:reporter_email;type:varchar(128);not null"`
	Status        string    `gorm:"column:status;type:varchar(16);not null;default:'open'"` // open/answered/closed
	CreatedAt     time.Time `gorm:"column:created_at;type:timestamp;default:now()"`
	UpdatedAt     time.Time `gorm:"column:updated_at;type:timestamp;default:now()"`
}

// RoadmapItem corresponds to the roadmap_items table (admin roadmap board).
type RoadmapItem struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	Title     string    `gorm:"column:title;type:varchar(256);not null"`
	Area      string    `gorm:"column:area;type:varchar(32)"`                              // mobile/web/admin/billing
	Status    string    `gorm:"column:status;type:varchar(16);not null;default:'planned'"` // planned/building/shipped
	Votes     int       `gorm:"column:votes;type:int;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:now()"`
}

// PriceListItem corresponds to the price_list_items table: the master price
// list admins curate per specialty. Unique on (specialty, concept); writes
// overwrite on conflict.
type PriceListItem struct {
	ID                uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	Specialty         string    `gorm:"column:specialty;type:varchar(64);not null;uniqueIndex:uk_specialty_concept"`
	Concept           string    `gorm:"column:concept;type:varchar(128);not null;uniqueIndex:uk_specialty_concept"`
	SuggestedPriceARS float64   `gorm:"column:suggested_price_ars;type:numeric(12,2);not null"`
	Unit              string    `gorm:"column:unit;type:varchar(32);default:'job'"` // job/hour/meter
	UpdatedAt         time.Time `gorm:"column:updated_at;type:timestamp;default:now()"`
	CreatedAt         time.Time `gorm:"column:created_at;type:timestamp;default:now()"`
}

func (SupportTicket) TableName() string { return "support_tickets" }
func (RoadmapItem) TableName() string   { return "roadmap_items" }
func (PriceListItem) TableName() string { return "price_list_items" }
