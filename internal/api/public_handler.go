package api

import (
	"errors"
	"net/http"

	"urbanfix/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PublicHandler serves the unauthenticated quote-viewer endpoints used by the
// marketing/client web app.
type PublicHandler struct {
	offers *service.OfferService
	logger *logrus.Logger
}

// NewPublicHandler creates a PublicHandler over a *gorm.DB.
func NewPublicHandler(db *gorm.DB, logger *logrus.Logger) *PublicHandler {
	return NewPublicHandlerWithDeps(service.NewOfferService(db, logger), logger)
}

// NewPublicHandlerWithDeps creates a PublicHandler with an injected service.
func NewPublicHandlerWithDeps(svc *service.OfferService, logger *logrus.Logger) *PublicHandler {
	return &PublicHandler{offers: svc, logger: logger}
}

// GetRequest handles GET /api/public/requests/:id — the request plus its
// offers, cheapest first.
func (h *PublicHandler) GetRequest(c *gin.Context) {
	detail, err := h.offers.GetRequestDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		default:
			h.logger.WithError(err).WithField("request_id", c.Param("id")).Error("GetRequest failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, detail)
}
