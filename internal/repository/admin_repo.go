package repository

import (
	"context"
	"time"

	"urbanfix/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OfferStats is the aggregate the admin overview shows for offers.
type OfferStats struct {
	Count    int64   `json:"count"`
	AvgPrice float64 `json:"avg_price_ars"`
}

// AdminRepository serves the read-mostly admin console: KPI counts, the
// support inbox, the roadmap board and the master price lists.
type AdminRepository interface {
	CountRequestsByStatus(ctx context.Context) (map[string]int64, error)
	OfferStats(ctx context.Context) (*OfferStats, error)
	CountOpenSupportTickets(ctx context.Context) (int64, error)
	CountActiveSubscriptions(ctx context.Context) (int64, error)

	ListSupportTickets(ctx context.Context, status string, page, pageSize int) ([]*model.SupportTicket, int64, error)
	UpdateSupportTicketStatus(ctx context.Context, id uint64, status string) error

	ListRoadmapItems(ctx context.Context) ([]*model.RoadmapItem, error)
	UpdateRoadmapItemStatus(ctx context.Context, id uint64, status string) error

	ListPriceItems(ctx context.Context, specialty string) ([]*model.PriceListItem, error)
	UpsertPriceItem(ctx context.Context, item *model.PriceListItem) error
}

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates the gorm-backed AdminRepository.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) CountRequestsByStatus(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Status string
		N      int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).Model(&model.ClientRequest{}).
		Select("status, count(*) as n").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, rw := range rows {
		out[rw.Status] = rw.N
	}
	return out, nil
}

func (r *adminRepository) OfferStats(ctx context.Context) (*OfferStats, error) {
	var stats OfferStats
	if err := r.db.WithContext(ctx).Model(&model.RequestMatch{}).
		Select("count(*) as count, coalesce(avg(price_ars), 0) as avg_price").
		Scan(&stats).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *adminRepository) CountOpenSupportTickets(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.SupportTicket{}).
		Where("status = ?", "open").Count(&n).Error
	return n, err
}

func (r *adminRepository) CountActiveSubscriptions(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("status = ?", "active").Count(&n).Error
	return n, err
}

func (r *adminRepository) ListSupportTickets(ctx context.Context, status string, page, pageSize int) ([]*model.SupportTicket, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	db := r.db.WithContext(ctx).Model(&model.SupportTicket{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []*model.SupportTicket
	if err := db.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *adminRepository) UpdateSupportTicketStatus(ctx context.Context, id uint64, status string) error {
	res := r.db.WithContext(ctx).Model(&model.SupportTicket{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *adminRepository) ListRoadmapItems(ctx context.Context) ([]*model.RoadmapItem, error) {
	var list []*model.RoadmapItem
	if err := r.db.WithContext(ctx).
		Order("votes DESC, created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *adminRepository) UpdateRoadmapItemStatus(ctx context.Context, id uint64, status string) error {
	res := r.db.WithContext(ctx).Model(&model.RoadmapItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *adminRepository) ListPriceItems(ctx context.Context, specialty string) ([]*model.PriceListItem, error) {
	db := r.db.WithContext(ctx).Model(&model.PriceListItem{})
	if specialty != "" {
		db = db.Where("specialty = ?", specialty)
	}
	var list []*model.PriceListItem
	if err := db.Order("specialty ASC, concept ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// UpsertPriceItem overwrites the suggested price when (specialty, concept)
// already exists.
func (r *adminRepository) UpsertPriceItem(ctx context.Context, item *model.PriceListItem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "specialty"}, {Name: "concept"}},
		DoUpdates: clause.AssignmentColumns([]string{"suggested_price_ars", "unit", "updated_at"}),
	}).Create(item).Error
}
