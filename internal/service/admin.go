package service

import (
	"context"
	"fmt"

	"urbanfix/internal/model"
	"urbanfix/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Overview is the admin console's KPI snapshot.
type Overview struct {
	RequestsByStatus    map[string]int64       `json:"requests_by_status"`
	Offers              *repository.OfferStats `json:"offers"`
	OpenSupportTickets  int64                  `json:"open_support_tickets"`
	ActiveSubscriptions int64                  `json:"active_subscriptions"`
}

// AdminService backs the admin console: KPI overview, support inbox, roadmap
// board and master price lists. All read-mostly, no state beyond the store.
type AdminService struct {
	repo   repository.AdminRepository
	logger *logrus.Logger
}

// NewAdminService creates an AdminService over a *gorm.DB.
func NewAdminService(db *gorm.DB, logger *logrus.Logger) *AdminService {
	return NewAdminServiceWithDeps(repository.NewAdminRepository(db), logger)
}

// NewAdminServiceWithDeps creates an AdminService with an injected repository.
func NewAdminServiceWithDeps(repo repository.AdminRepository, logger *logrus.Logger) *AdminService {
	return &AdminService{repo: repo, logger: logger}
}

// GetOverview fans out the four independent reads concurrently and joins the
// results in memory. Any failed read fails the whole snapshot.
func (s *AdminService) GetOverview(ctx context.Context) (*Overview, error) {
	var out Overview
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		byStatus, err := s.repo.CountRequestsByStatus(ctx)
		if err != nil {
			return fmt.Errorf("count requests: %w", err)
		}
		out.RequestsByStatus = byStatus
		return nil
	})
	g.Go(func() error {
		stats, err := s.repo.OfferStats(ctx)
		if err != nil {
			return fmt.Errorf("offer stats: %w", err)
		}
		out.Offers = stats
		return nil
	})
	g.Go(func() error {
		n, err := s.repo.CountOpenSupportTickets(ctx)
		if err != nil {
			return fmt.Errorf("count support tickets: %w", err)
		}
		out.OpenSupportTickets = n
		return nil
	})
	g.Go(func() error {
		n, err := s.repo.CountActiveSubscriptions(ctx)
		if err != nil {
			return fmt.Errorf("count subscriptions: %w", err)
		}
		out.ActiveSubscriptions = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// SupportInbox is one page of support tickets.
type SupportInbox struct {
	Tickets []*model.SupportTicket `json:"tickets"`
	Total   int64                  `json:"total"`
	Page    int                    `json:"page"`
}

// ListSupportTickets returns one inbox page, optionally filtered by status.
func (s *AdminService) ListSupportTickets(ctx context.Context, status string, page, pageSize int) (*SupportInbox, error) {
	switch status {
	case "", "open", "answered", "closed":
	default:
		return nil, validationErr("status", "must be open, answered or closed")
	}
	tickets, total, err := s.repo.ListSupportTickets(ctx, status, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list support tickets: %w", err)
	}
	return &SupportInbox{Tickets: tickets, Total: total, Page: page}, nil
}

// UpdateSupportTicketStatus moves a ticket between open/answered/closed.
func (s *AdminService) UpdateSupportTicketStatus(ctx context.Context, id uint64, status string) error {
	switch status {
	case "open", "answered", "closed":
	default:
		return validationErr("status", "must be open, answered or closed")
	}
	return s.repo.UpdateSupportTicketStatus(ctx, id, status)
}

// ListRoadmap returns the roadmap board ordered by votes.
func (s *AdminService) ListRoadmap(ctx context.Context) ([]*model.RoadmapItem, error) {
	return s.repo.ListRoadmapItems(ctx)
}

// UpdateRoadmapStatus moves a roadmap item between stages.
func (s *AdminService) UpdateRoadmapStatus(ctx context.Context, id uint64, status string) error {
	switch status {
	case "planned", "building", "shipped":
	default:
		return validationErr("status", "must be planned, building or shipped")
	}
	return s.repo.UpdateRoadmapItemStatus(ctx, id, status)
}

// ListPrices returns the master price list, optionally for one specialty.
func (s *AdminService) ListPrices(ctx context.Context, specialty string) ([]*model.PriceListItem, error) {
	return s.repo.ListPriceItems(ctx, specialty)
}

// UpsertPrice overwrites a master price entry keyed on (specialty, concept).
func (s *AdminService) UpsertPrice(ctx context.Context, item *model.PriceListItem) error {
	if item.Specialty == "" || item.Concept == "" {
		return validationErr("price item", "specialty and concept are required")
	}
	price, err := ParsePriceARS(item.SuggestedPriceARS)
	if err != nil {
		return err
	}
	item.SuggestedPriceARS = price
	return s.repo.UpsertPriceItem(ctx, item)
}
