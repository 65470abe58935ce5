package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"kapkurtar/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// The external identity provider issues the tokens; this core only
// validates the signature and trusts the resolved subject. There are no
// credential endpoints here.

const (
	ctxSubjectIDKey = "subject_id"
	ctxRoleKey      = "subject_role"

	RoleClient   = "client"
	RoleMerchant = "merchant"
)

type identityClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type IdentityMiddleware struct {
	secret []byte
}

func NewIdentityMiddleware(cfg config.IdentityConfig) *IdentityMiddleware {
	return &IdentityMiddleware{secret: []byte(cfg.TokenSecret)}
}

func (m *IdentityMiddleware) Require(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Access token required"},
			})
			return
		}

		claims := &identityClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.secret, nil
		})
		if err != nil || !parsed.Valid {
			slog.Warn("token validation failed", "error", errString(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Invalid access token"},
			})
			return
		}

		subjectID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Invalid access token"},
			})
			return
		}

		if role != "" && claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{"message": "Insufficient permissions"},
			})
			return
		}

		c.Set(ctxSubjectIDKey, subjectID)
		c.Set(ctxRoleKey, claims.Role)
		c.Next()
	}
}

// GetSubjectID returns the authenticated subject (clientID or merchantID
// depending on the route's role requirement).
func GetSubjectID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ctxSubjectIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetRole(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxRoleKey)
	if !ok {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}

func errString(err error) string {
	if err == nil {
		return "token rejected"
	}
	return err.Error()
}
