package service

import (
	"context"
	"fmt"
	"testing"

	"urbanfix/internal/model"
	"urbanfix/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdminRepo is an in-memory AdminRepository double.
type fakeAdminRepo struct {
	requestsByStatus map[string]int64
	offerStats       repository.OfferStats
	openTickets      int64
	activeSubs       int64
	failCounts       bool

	tickets []*model.SupportTicket
	roadmap []*model.RoadmapItem
	prices  map[string]*model.PriceListItem
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{
		requestsByStatus: map[string]int64{"published": 12, "quoted": 7, "closed": 3},
		offerStats:       repository.OfferStats{Count: 19, AvgPrice: 21500.40},
		openTickets:      4,
		activeSubs:       31,
		prices:           map[string]*model.PriceListItem{},
	}
}

func (f *fakeAdminRepo) CountRequestsByStatus(_ context.Context) (map[string]int64, error) {
	if f.failCounts {
		return nil, fmt.Errorf("store down")
	}
	return f.requestsByStatus, nil
}

func (f *fakeAdminRepo) OfferStats(_ context.Context) (*repository.OfferStats, error) {
	return &f.offerStats, nil
}

func (f *fakeAdminRepo) CountOpenSupportTickets(_ context.Context) (int64, error) {
	return f.openTickets, nil
}

func (f *fakeAdminRepo) CountActiveSubscriptions(_ context.Context) (int64, error) {
	return f.activeSubs, nil
}

func (f *fakeAdminRepo) ListSupportTickets(_ context.Context, status string, page, pageSize int) ([]*model.SupportTicket, int64, error) {
	var out []*model.SupportTicket
	for _, tk := range f.tickets {
		if status == "" || tk.Status == status {
			out = append(out, tk)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAdminRepo) UpdateSupportTicketStatus(_ context.Context, id uint64, status string) error {
	for _, tk := range f.tickets {
		if tk.ID == id {
			tk.Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeAdminRepo) ListRoadmapItems(_ context.Context) ([]*model.RoadmapItem, error) {
	return f.roadmap, nil
}

func (f *fakeAdminRepo) UpdateRoadmapItemStatus(_ context.Context, id uint64, status string) error {
	for _, it := range f.roadmap {
		if it.ID == id {
			it.Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeAdminRepo) ListPriceItems(_ context.Context, specialty string) ([]*model.PriceListItem, error) {
	var out []*model.PriceListItem
	for _, it := range f.prices {
		if specialty == "" || it.Specialty == specialty {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeAdminRepo) UpsertPriceItem(_ context.Context, item *model.PriceListItem) error {
	f.prices[item.Specialty+"|"+item.Concept] = item
	return nil
}

func TestGetOverview(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := NewAdminServiceWithDeps(repo, quietLogger())

	overview, err := svc.GetOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), overview.RequestsByStatus["published"])
	assert.Equal(t, int64(19), overview.Offers.Count)
	assert.InDelta(t, 21500.40, overview.Offers.AvgPrice, 1e-9)
	assert.Equal(t, int64(4), overview.OpenSupportTickets)
	assert.Equal(t, int64(31), overview.ActiveSubscriptions)
}

func TestGetOverview_AnyFailedReadFails(t *testing.T) {
	repo := newFakeAdminRepo()
	repo.failCounts = true
	svc := NewAdminServiceWithDeps(repo, quietLogger())

	_, err := svc.GetOverview(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count requests")
}

func TestSupportTicketStatus(t *testing.T) {
	repo := newFakeAdminRepo()
	repo.tickets = []*model.SupportTicket{
		{ID: 1, Subject: "La app no abre", Status: "open"},
		{ID: 2, Subject: "Factura duplicada", Status: "answered"},
	}
	svc := NewAdminServiceWithDeps(repo, quietLogger())

	inbox, err := svc.ListSupportTickets(context.Background(), "open", 1, 20)
	require.NoError(t, err)
	require.Len(t, inbox.Tickets, 1)
	assert.Equal(t, "La app no abre", inbox.Tickets[0].Subject)

	require.NoError(t, svc.UpdateSupportTicketStatus(context.Background(), 1, "answered"))
	assert.Equal(t, "answered", repo.tickets[0].Status)

	err = svc.UpdateSupportTicketStatus(context.Background(), 1, "bogus")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	err = svc.UpdateSupportTicketStatus(context.Background(), 99, "closed")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.ListSupportTickets(context.Background(), "bogus", 1, 20)
	require.ErrorAs(t, err, &vErr)
}

func TestRoadmapStatus(t *testing.T) {
	repo := newFakeAdminRepo()
	repo.roadmap = []*model.RoadmapItem{{ID: 7, Title: "Exportar PDF", Status: "planned"}}
	svc := NewAdminServiceWithDeps(repo, quietLogger())

	require.NoError(t, svc.UpdateRoadmapStatus(context.Background(), 7, "building"))
	assert.Equal(t, "building", repo.roadmap[0].Status)

	err := svc.UpdateRoadmapStatus(context.Background(), 7, "someday")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestUpsertPrice(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := NewAdminServiceWithDeps(repo, quietLogger())

	item := &model.PriceListItem{Specialty: "plomeria", Concept: "destapacion", SuggestedPriceARS: 12999.999, Unit: "job"}
	require.NoError(t, svc.UpsertPrice(context.Background(), item))
	stored := repo.prices["plomeria|destapacion"]
	require.NotNil(t, stored)
	assert.InDelta(t, 13000.00, stored.SuggestedPriceARS, 1e-9)

	// same key overwrites
	require.NoError(t, svc.UpsertPrice(context.Background(), &model.PriceListItem{Specialty: "plomeria", Concept: "destapacion", SuggestedPriceARS: 15000}))
	assert.Len(t, repo.prices, 1)
	assert.InDelta(t, 15000, repo.prices["plomeria|destapacion"].SuggestedPriceARS, 1e-9)

	err := svc.UpsertPrice(context.Background(), &model.PriceListItem{Specialty: "", Concept: "x", SuggestedPriceARS: 10})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}
