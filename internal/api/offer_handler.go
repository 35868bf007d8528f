package api

import (
	"errors"
	"net/http"

	"urbanfix/internal/metrics"
	"urbanfix/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// OfferHandler exposes the technician offer endpoint.
type OfferHandler struct {
	offers *service.OfferService
	logger *logrus.Logger
}

// NewOfferHandler creates an OfferHandler over a *gorm.DB.
func NewOfferHandler(db *gorm.DB, logger *logrus.Logger) *OfferHandler {
	return NewOfferHandlerWithDeps(service.NewOfferService(db, logger), logger)
}

// NewOfferHandlerWithDeps creates an OfferHandler with an injected service.
func NewOfferHandlerWithDeps(svc *service.OfferService, logger *logrus.Logger) *OfferHandler {
	return &OfferHandler{offers: svc, logger: logger}
}

// SubmitOffer handles POST /api/tecnico/requests/:id/offer.
// Body: { price_ars: number|string, eta_hours: number|string }.
func (h *OfferHandler) SubmitOffer(c *gin.Context) {
	identity := identityFrom(c)
	if identity == nil {
		metrics.CountOffer("denied")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var in service.OfferInput
	if err := c.ShouldBindJSON(&in); err != nil {
		metrics.CountOffer("validation")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := h.offers.SubmitOffer(c.Request.Context(), identity.ID, c.Param("id"), &in)
	if err != nil {
		status, outcome := offerErrorStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.WithError(err).WithField("request_id", c.Param("id")).Error("SubmitOffer failed")
		}
		metrics.CountOffer(outcome)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	metrics.CountOffer("ok")
	c.JSON(http.StatusOK, result)
}

// offerErrorStatus maps the service error taxonomy onto HTTP statuses and a
// metrics outcome label.
func offerErrorStatus(err error) (int, string) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, "denied"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "denied"
	case errors.Is(err, service.ErrProfileNotFound), errors.Is(err, service.ErrRequestNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrRequestClosed):
		// surfaced as plain 400 with guidance, not a conflict
		return http.StatusBadRequest, "closed"
	default:
		return http.StatusInternalServerError, "error"
	}
}
