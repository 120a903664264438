package identity

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vitalhq/vital-gateway/internal/apperr"
)

// Claims are the JWT claims carried by gateway access tokens.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 access tokens.
type TokenService struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

var _ Verifier = (*TokenService)(nil)

// NewTokenService creates a token service with the given shared secret.
func NewTokenService(signingKey, issuer string, ttl time.Duration) *TokenService {
	return &TokenService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		ttl:        ttl,
	}
}

// Issue signs a token for the given identity.
func (s *TokenService) Issue(id Identity) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: id.UserID,
		Role:   string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   id.UserID,
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(s.signingKey)
}

// Verify implements Verifier. Expired, malformed, and forged tokens all
// normalize to the same auth error so clients cannot probe which check
// failed; the wrapped cause stays available for logging.
func (s *TokenService) Verify(ctx context.Context, tokenString string) (Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		// jwt.ErrTokenExpired vs malformed vs bad signature stays in the
		// wrapped cause; the client sees one message either way.
		return Identity{}, apperr.Wrap(apperr.CodeAuth, "Invalid token", err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Identity{}, apperr.New(apperr.CodeAuth, "Invalid token")
	}

	role := Role(claims.Role)
	if role != RoleUser && role != RoleAdmin {
		return Identity{}, apperr.New(apperr.CodeAuth, "Invalid token")
	}
	return Identity{UserID: claims.UserID, Role: role}, nil
}
