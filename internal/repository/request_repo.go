package repository

import (
	"context"
	"errors"
	"time"

	"urbanfix/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RequestRepository is the persistence surface the offer flow needs. Kept
// deliberately narrow so the service layer can run against an in-memory fake.
type RequestRepository interface {
	FindTechnicianProfile(ctx context.Context, id string) (*model.TechnicianProfile, error)
	FindRequest(ctx context.Context, id string) (*model.ClientRequest, error)
	UpsertMatch(ctx context.Context, m *model.RequestMatch) error
	FindMatch(ctx context.Context, requestID, technicianID string) (*model.RequestMatch, error)
	UpdateRequestStatus(ctx context.Context, id, status string) error
	AppendEvent(ctx context.Context, ev *model.RequestEvent) error
	ListMatchesByRequest(ctx context.Context, requestID string) ([]*model.RequestMatch, error)
}

type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates the gorm-backed RequestRepository.
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) FindTechnicianProfile(ctx context.Context, id string) (*model.TechnicianProfile, error) {
	var p model.TechnicianProfile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *requestRepository) FindRequest(ctx context.Context, id string) (*model.ClientRequest, error) {
	var req model.ClientRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// UpsertMatch inserts the match or, when (request_id, technician_id) already
// exists, overwrites the previous offer in place. The unique index is the
// store's own guarantee; a conflict is an update, never an error.
func (r *requestRepository) UpsertMatch(ctx context.Context, m *model.RequestMatch) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "request_id"}, {Name: "technician_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"technician_name", "technician_phone", "specialty", "city",
			"quote_status", "price_ars", "eta_hours", "updated_at",
		}),
	}).Create(m).Error
}

func (r *requestRepository) FindMatch(ctx context.Context, requestID, technicianID string) (*model.RequestMatch, error) {
	var m model.RequestMatch
	if err := r.db.WithContext(ctx).
		Where("request_id = ? AND technician_id = ?", requestID, technicianID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *requestRepository) UpdateRequestStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).Model(&model.ClientRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *requestRepository) AppendEvent(ctx context.Context, ev *model.RequestEvent) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

func (r *requestRepository) ListMatchesByRequest(ctx context.Context, requestID string) ([]*model.RequestMatch, error) {
	var list []*model.RequestMatch
	if err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("price_ars ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
