package model

import (
	"time"

	"gorm.io/datatypes"
)

// TechnicianProfile corresponds to the profiles table. The primary key equals
// the hosted auth service's user id, so resolving identity -> profile is a
// single lookup.
type TechnicianProfile struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey"`
	FullName  string    `gorm:"column:full_name;type:varchar(128);not null"`
	Phone     string    `gorm:"column:phone;type:varchar(32)"`
	Specialty string    `gorm:"column:specialty;type:varchar(64)"` // electrician/plumber/...
	City      string    `gorm:"column:city;type:varchar(64)"`
	Role      string    `gorm:"column:role;type:varchar(16);default:'technician'"` // technician/admin
	IsActive  bool      `gorm:"column:is_active;type:boolean;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:now()"`
}

// ClientRequest corresponds to the client_requests table: a posted job seeking
// quotes. Rows are created by the client apps; this service only advances
// status. Active statuses (published/matched/quoted/direct_sent) accept new
// offers; closed/cancelled/expired are terminal.
type ClientRequest struct {
	ID                 string    `gorm:"column:id;type:uuid;primaryKey"`
	Title              string    `gorm:"column:title;type:varchar(256);not null"`
	Description        string    `gorm:"column:description;type:text"`
	Status             string    `gorm:"column:status;type:varchar(16);not null;default:'published'"`
	Mode               string    `gorm:"column:mode;type:varchar(8);not null;default:'open'"` // open/direct
	TargetTechnicianID *string   `gorm:"column:target_technician_id;type:uuid"`               // set only when mode=direct
	ClientName         string    `gorm:"column:client_name;type:varchar(128)"`
	City               string    `gorm:"column:city;type:varchar(64)"`
	CreatedAt          time.Time `gorm:"column:created_at;type:timestamp;default:now()"`
	UpdatedAt          time.Time `gorm:"column:updated_at;type:timestamp;default:now()"`
}

// RequestMatch corresponds to the client_request_matches table: one
// technician's bid on one request. The technician display fields are a
// snapshot taken at offer time so the public quote page stays stable even if
// the profile changes later. Unique on (request_id, technician_id); a
// resubmission overwrites the previous row.
type RequestMatch struct {
	ID              string    `gorm:"column:id;type:uuid;primaryKey"`
	RequestID       string    `gorm:"column:request_id;type:uuid;not null;uniqueIndex:uk_request_technician"`
	TechnicianID    string    `gorm:"column:technician_id;type:uuid;not null;uniqueIndex:uk_request_technician"`
	TechnicianName  string    `gorm:"column:technician_name;type:varchar(128);not null"`
	TechnicianPhone string    `gorm:"column:technician_phone;type:varchar(32)"`
	Specialty       string    `gorm:"column:specialty;type:varchar(64)"`
	City            string    `gorm:"column:city;type:varchar(64)"`
	QuoteStatus     string    `gorm:"column:quote_status;type:varchar(16);not null;default:'submitted'"`
	PriceARS        float64   `gorm:"column:price_ars;type:numeric(12,2);not null"`
	ETAHours        int       `gorm:"column:eta_hours;type:int;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;type:timestamp;default:now()"`
	UpdatedAt       time.Time `gorm:"column:updated_at;type:timestamp;default:now()"`
}

// RequestEvent corresponds to the client_request_events table: an append-only
// audit trail tied to a request. Rows are never updated or deleted.
type RequestEvent struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement"`
	RequestID string         `gorm:"column:request_id;type:uuid;not null;index"`
	ActorID   *string        `gorm:"column:actor_id;type:uuid"` // nil for system events
	Kind      string         `gorm:"column:kind;type:varchar(32);not null"`
	Message   string         `gorm:"column:message;type:varchar(512);not null"`
	Metadata  datatypes.JSON `gorm:"column:metadata;type:jsonb"`
	CreatedAt time.Time      `gorm:"column:created_at;type:timestamp;default:now()"`
}

func (TechnicianProfile) TableName() string { return "profiles" }
func (ClientRequest) TableName() string     { return "client_requests" }
func (RequestMatch) TableName() string      { return "client_request_matches" }
func (RequestEvent) TableName() string      { return "client_request_events" }
