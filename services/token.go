package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"netflix-clone-backend/models"
)

// The signed token expires after two hours while the cookie that
// carries it lives for three days. The mismatch is inherited behavior;
// changing either side is a product decision.
const (
	SessionTokenTTL  = 2 * time.Hour
	SessionCookieTTL = 3 * 24 * time.Hour
)

// SessionClaims is the JWT payload for a logged-in session.
type SessionClaims struct {
	jwt.RegisteredClaims
	Email  string `json:"email"`
	UserID string `json:"id"`
	Role   string `json:"role,omitempty"`
}

// TokenService issues and verifies session JWTs backed by symmetric HMAC.
type TokenService struct {
	secretKey string
}

func NewTokenService(secretKey string) *TokenService {
	return &TokenService{secretKey: secretKey}
}

// IssueSessionToken signs a token carrying the user's email, id and role.
func (t *TokenService) IssueSessionToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTokenTTL)),
		},
		Email:  user.Email,
		UserID: user.ID.Hex(),
		Role:   user.Role,
	})

	tokenString, err := token.SignedString([]byte(t.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// ParseSessionToken validates the signature and expiry and returns the claims.
func (t *TokenService) ParseSessionToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", tok.Header["alg"])
		}
		return []byte(t.secretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, models.ErrInvalidToken
	}
	return claims, nil
}
