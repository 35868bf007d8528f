package api

import (
	"net/http"
	"strings"

	"urbanfix/internal/interfaces"
	"urbanfix/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// identityKey is where AuthRequired stores the resolved identity in the gin
// context.
const identityKey = "identity"

// AuthRequired resolves the bearer token through the hosted auth service and
// aborts with 401 when it cannot. Resolver transport failures also deny: the
// handler chain must fail closed, never open.
func AuthRequired(resolver interfaces.IdentityResolver, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		identity, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			logger.WithError(err).Warn("identity resolution failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// AdminRequired loads the caller's profile and rejects non-admin roles. Must
// run after AuthRequired.
func AdminRequired(repo repository.RequestRepository, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := identityFrom(c)
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		profile, err := repo.FindTechnicianProfile(c.Request.Context(), identity.ID)
		if err != nil || profile.Role != "admin" {
			if err != nil {
				logger.WithError(err).WithField("user_id", identity.ID).Warn("admin profile lookup failed")
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// identityFrom returns the identity AuthRequired stored, or nil.
func identityFrom(c *gin.Context) *interfaces.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, ok := v.(*interfaces.Identity)
	if !ok {
		return nil
	}
	return identity
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
