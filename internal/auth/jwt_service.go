package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// TokenTTL is the fixed lifetime of issued tokens. There is no refresh
// or revocation flow; a token stays valid until this duration elapses.
const TokenTTL = 8 * time.Hour

var (
	// ErrTokenExpired is returned when the token's expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for tampered or malformed tokens.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims represents JWT claims. The subject is the account username.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and validates signed bearer tokens. It holds only
// the immutable signing secret, so concurrent use needs no locking.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// Issue produces a signed token for the given username and role.
func (s *JWTService) Issue(username string, role Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate checks signature and expiry and returns the principal the
// token was issued for. It performs no storage lookup: a role change
// or account deletion after issuance takes effect only once the token
// expires.
func (s *JWTService) Validate(tokenString string) (Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, ErrTokenExpired
		}
		return Principal{}, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Principal{}, ErrTokenInvalid
	}

	role, err := ParseRole(claims.Role)
	if err != nil {
		return Principal{}, ErrTokenInvalid
	}

	return Principal{Username: claims.Subject, Role: role}, nil
}
