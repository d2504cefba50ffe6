package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret)

	tests := []struct {
		name     string
		username string
		role     Role
	}{
		{"admin token", "admin", RoleAdmin},
		{"user token", "akowalska", RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.Issue(tt.username, tt.role)
			assert.NoError(t, err)
			assert.NotEmpty(t, token)

			principal, err := svc.Validate(token)
			assert.NoError(t, err)
			assert.Equal(t, tt.username, principal.Username)
			assert.Equal(t, tt.role, principal.Role)
		})
	}
}

func TestJWTService_Validate_Expired(t *testing.T) {
	svc := NewJWTService(testSecret)

	// Craft a token whose expiry already passed, signed with the
	// service's own secret.
	claims := &Claims{
		Role: string(RoleUser),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "akowalska",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTService_Validate_Invalid(t *testing.T) {
	svc := NewJWTService(testSecret)

	t.Run("garbage input", func(t *testing.T) {
		_, err := svc.Validate("not-a-token")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService("other-secret")
		token, err := other.Issue("admin", RoleAdmin)
		assert.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("unknown role claim", func(t *testing.T) {
		claims := &Claims{
			Role: "ROLE_SUPERUSER",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "admin",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		assert.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}
