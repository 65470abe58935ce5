//go:build e2e

package helper

import (
	"testing"
	"time"

	"kapkurtar/internal/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// IdentityTestHelper mints tokens the way the external identity provider
// would: HMAC-signed with the shared secret, carrying subject and role.
type IdentityTestHelper struct {
	cfg config.IdentityConfig
}

func NewIdentityTestHelper(cfg config.IdentityConfig) *IdentityTestHelper {
	return &IdentityTestHelper{cfg: cfg}
}

type testClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (h *IdentityTestHelper) IssueToken(t *testing.T, subjectID uuid.UUID, role string) string {
	t.Helper()
	return h.issueToken(t, subjectID, role, time.Now().Add(time.Hour))
}

func (h *IdentityTestHelper) IssueExpiredToken(t *testing.T, subjectID uuid.UUID, role string) string {
	t.Helper()
	return h.issueToken(t, subjectID, role, time.Now().Add(-time.Minute))
}

func (h *IdentityTestHelper) issueToken(t *testing.T, subjectID uuid.UUID, role string, expiresAt time.Time) string {
	t.Helper()

	claims := testClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.cfg.TokenSecret))
	require.NoError(t, err)
	return token
}
