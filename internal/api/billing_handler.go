package api

import (
	"errors"
	"net/http"

	"urbanfix/internal/interfaces"
	"urbanfix/internal/repository"
	"urbanfix/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BillingHandler exposes the subscription endpoints.
type BillingHandler struct {
	billing *service.BillingService
	logger  *logrus.Logger
}

// NewBillingHandler creates a BillingHandler over a *gorm.DB.
func NewBillingHandler(db *gorm.DB, provider interfaces.PaymentProvider, plans map[string]float64, backURL string, logger *logrus.Logger) *BillingHandler {
	return NewBillingHandlerWithDeps(service.NewBillingService(db, provider, plans, backURL, logger), logger)
}

// NewBillingHandlerWithDeps creates a BillingHandler with an injected service.
func NewBillingHandlerWithDeps(svc *service.BillingService, logger *logrus.Logger) *BillingHandler {
	return &BillingHandler{billing: svc, logger: logger}
}

type createSubscriptionRequest struct {
	Plan string `json:"plan"`
}

// CreateSubscription POST /api/billing/subscriptions — opens a recurring
// charge for the authenticated technician and returns the checkout URL.
func (h *BillingHandler) CreateSubscription(c *gin.Context) {
	identity := identityFrom(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	var req createSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	sub, err := h.billing.CreateSubscription(c.Request.Context(), identity.ID, identity.Email, req.Plan)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAlreadySubscribed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrProviderUnavailable):
			h.logger.WithError(err).Error("CreateSubscription provider failure")
			c.JSON(http.StatusBadGateway, gin.H{"error": "payment provider unavailable"})
		default:
			h.logger.WithError(err).Error("CreateSubscription failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "subscription": sub})
}

// GetSubscription GET /api/billing/subscriptions/:technician_id — the caller
// can only read their own subscription.
func (h *BillingHandler) GetSubscription(c *gin.Context) {
	identity := identityFrom(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	technicianID := c.Param("technician_id")
	if technicianID != identity.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "subscription belongs to another technician"})
		return
	}
	sub, err := h.billing.GetSubscription(c.Request.Context(), technicianID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no subscription"})
			return
		}
		h.logger.WithError(err).Error("GetSubscription failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscription": sub})
}
