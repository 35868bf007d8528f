package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"urbanfix/internal/model"
	"urbanfix/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OfferInput is the offer body after JSON decoding; both fields accept a
// number or a string (price "15.000,50", eta "3,5").
type OfferInput struct {
	PriceARS interface{} `json:"price_ars"`
	ETAHours interface{} `json:"eta_hours"`
}

// OfferResult echoes back what was stored.
type OfferResult struct {
	OK      bool          `json:"ok"`
	Message string        `json:"message"`
	Request RequestResult `json:"request"`
	Match   MatchResult   `json:"match"`
}

type RequestResult struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MatchResult struct {
	ID       string  `json:"id"`
	Status   string  `json:"status"`
	PriceARS float64 `json:"price_ars"`
	ETAHours int     `json:"eta_hours"`
}

// OfferService runs the quote-offer flow: validate the bid, authorize the
// caller, upsert the match, advance the request status and leave an audit
// trail.
type OfferService struct {
	repo   repository.RequestRepository
	logger *logrus.Logger
}

// NewOfferService creates an OfferService over a *gorm.DB.
func NewOfferService(db *gorm.DB, logger *logrus.Logger) *OfferService {
	return NewOfferServiceWithDeps(repository.NewRequestRepository(db), logger)
}

// NewOfferServiceWithDeps creates an OfferService with an injected repository
// (tests use an in-memory fake).
func NewOfferServiceWithDeps(repo repository.RequestRepository, logger *logrus.Logger) *OfferService {
	return &OfferService{repo: repo, logger: logger}
}

// SubmitOffer processes one technician bid against one request:
//  1. validate the request id and normalize price/eta (no writes on failure)
//  2. authorization chain: identity -> profile -> request -> status -> direct addressing
//  3. upsert the match on (request_id, technician_id); a resubmission overwrites
//  4. advance the request status (any active state -> quoted, idempotent)
//  5. append an audit event; its failure is logged and swallowed
func (s *OfferService) SubmitOffer(ctx context.Context, callerID, requestID string, in *OfferInput) (*OfferResult, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	if _, err := uuid.Parse(requestID); err != nil {
		return nil, validationErr("request id", "must be a UUID")
	}
	price, err := ParsePriceARS(in.PriceARS)
	if err != nil {
		return nil, err
	}
	eta, err := ParseETAHours(in.ETAHours)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.FindTechnicianProfile(ctx, callerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("load technician profile: %w", err)
	}

	request, err := s.repo.FindRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("load request: %w", err)
	}

	status := RequestStatus(request.Status)
	if !status.AcceptsOffers() {
		return nil, ErrRequestClosed
	}
	if request.Mode == "direct" && request.TargetTechnicianID != nil && *request.TargetTechnicianID != profile.ID {
		return nil, ErrForbidden
	}

	now := time.Now()
	match := &model.RequestMatch{
		ID:              uuid.NewString(),
		RequestID:       request.ID,
		TechnicianID:    profile.ID,
		TechnicianName:  profile.FullName,
		TechnicianPhone: profile.Phone,
		Specialty:       profile.Specialty,
		City:            profile.City,
		QuoteStatus:     "submitted",
		PriceARS:        price,
		ETAHours:        eta,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.UpsertMatch(ctx, match); err != nil {
		return nil, fmt.Errorf("save offer: %w", err)
	}
	// A resubmission overwrites the prior row; read back so the echoed id is
	// the persisted one, not the discarded insert candidate.
	stored, err := s.repo.FindMatch(ctx, request.ID, profile.ID)
	switch {
	case err == nil:
		match = stored
	case !errors.Is(err, repository.ErrNotFound):
		s.logger.WithError(err).WithFields(logrus.Fields{
			"request_id":    request.ID,
			"technician_id": profile.ID,
		}).Warn("offer read-back failed")
	}

	// Last-write-wins on the status column. Interleaved offers are fine: every
	// writer writes the same target state.
	next, changed := status.NextAfterOffer()
	if changed {
		if err := s.repo.UpdateRequestStatus(ctx, request.ID, string(next)); err != nil {
			return nil, fmt.Errorf("update request status: %w", err)
		}
	}

	s.appendOfferEvent(ctx, request.ID, profile, price, eta)

	s.logger.WithFields(logrus.Fields{
		"request_id":    request.ID,
		"technician_id": profile.ID,
		"price_ars":     price,
		"eta_hours":     eta,
		"status":        string(next),
	}).Info("offer recorded")

	return &OfferResult{
		OK:      true,
		Message: "offer recorded",
		Request: RequestResult{ID: request.ID, Status: string(next), UpdatedAt: now},
		Match:   MatchResult{ID: match.ID, Status: match.QuoteStatus, PriceARS: price, ETAHours: eta},
	}, nil
}

// appendOfferEvent writes the audit narration. The offer is the primary
// effect; a failed audit write only gets logged.
func (s *OfferService) appendOfferEvent(ctx context.Context, requestID string, profile *model.TechnicianProfile, price float64, eta int) {
	actorID := profile.ID
	meta, _ := json.Marshal(map[string]interface{}{
		"technician_id": profile.ID,
		"price_ars":     price,
		"eta_hours":     eta,
	})
	ev := &model.RequestEvent{
		RequestID: requestID,
		ActorID:   &actorID,
		Kind:      "offer_received",
		Message:   fmt.Sprintf("offer received from %s: %s – ETA %d hs.", profile.FullName, FormatARS(price), eta),
		Metadata:  datatypes.JSON(meta),
		CreatedAt: time.Now(),
	}
	if err := s.repo.AppendEvent(ctx, ev); err != nil {
		s.logger.WithError(err).WithField("request_id", requestID).Warn("audit event append failed")
	}
}

// RequestDetail is the public quote-viewer payload: the request plus the
// offers made against it, cheapest first. Phone numbers stay private until
// the client picks an offer, so they are not included here.
type RequestDetail struct {
	Request *model.ClientRequest `json:"request"`
	Offers  []PublicOffer        `json:"offers"`
}

type PublicOffer struct {
	ID             string    `json:"id"`
	TechnicianName string    `json:"technician_name"`
	Specialty      string    `json:"specialty"`
	City           string    `json:"city"`
	PriceARS       float64   `json:"price_ars"`
	PriceDisplay   string    `json:"price_display"`
	ETAHours       int       `json:"eta_hours"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// GetRequestDetail loads a request and its offers for the public quote page.
func (s *OfferService) GetRequestDetail(ctx context.Context, requestID string) (*RequestDetail, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return nil, validationErr("request id", "must be a UUID")
	}
	request, err := s.repo.FindRequest(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("load request: %w", err)
	}
	matches, err := s.repo.ListMatchesByRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("load offers: %w", err)
	}
	offers := make([]PublicOffer, 0, len(matches))
	for _, m := range matches {
		offers = append(offers, PublicOffer{
			ID:             m.ID,
			TechnicianName: m.TechnicianName,
			Specialty:      m.Specialty,
			City:           m.City,
			PriceARS:       m.PriceARS,
			PriceDisplay:   FormatARS(m.PriceARS),
			ETAHours:       m.ETAHours,
			UpdatedAt:      m.UpdatedAt,
		})
	}
	return &RequestDetail{Request: request, Offers: offers}, nil
}
