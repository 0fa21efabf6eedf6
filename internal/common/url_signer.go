package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// StatementToken is the decoded form of a shared statement link.
type StatementToken struct {
	MemberID  string
	SchoolID  string
	From      string
	To        string
	TokenID   string
	ExpiresAt time.Time
}

// URLSignerService generates and validates presigned statement links. Links
// stay valid until expiry unless explicitly revoked.
type URLSignerService struct {
	secretKey []byte
	redis     *redis.Client
}

// NewURLSignerService creates a new URL signer service
func NewURLSignerService(secretKey []byte, redis *redis.Client) *URLSignerService {
	return &URLSignerService{
		secretKey: secretKey,
		redis:     redis,
	}
}

// GenerateStatementLink signs a token granting read access to one member's
// statement for a fixed date range.
func (s *URLSignerService) GenerateStatementLink(
	memberID, schoolID, from, to string,
	ttl time.Duration,
) (string, time.Time, error) {
	tokenID := uuid.New().String()
	expiresAt := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"member_id": memberID,
		"school_id": schoolID,
		"from":      from,
		"to":        to,
		"jti":       tokenID,
		"exp":       expiresAt.Unix(),
		"iat":       time.Now().Unix(),
	}

	// Sign with HMAC
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a statement link token
func (s *URLSignerService) ValidateToken(ctx context.Context, tokenString string) (*StatementToken, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	memberID, ok := (*claims)["member_id"].(string)
	if !ok {
		return nil, errors.New("missing or invalid member_id claim")
	}

	schoolID, ok := (*claims)["school_id"].(string)
	if !ok {
		return nil, errors.New("missing or invalid school_id claim")
	}

	from, _ := (*claims)["from"].(string)
	to, _ := (*claims)["to"].(string)

	tokenID, ok := (*claims)["jti"].(string)
	if !ok {
		return nil, errors.New("missing or invalid jti claim")
	}

	expFloat, ok := (*claims)["exp"].(float64)
	if !ok {
		return nil, errors.New("missing or invalid exp claim")
	}
	expiresAt := time.Unix(int64(expFloat), 0)

	if time.Now().After(expiresAt) {
		return nil, errors.New("token expired")
	}

	revoked, err := s.IsTokenRevoked(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, errors.New("token revoked")
	}

	return &StatementToken{
		MemberID:  memberID,
		SchoolID:  schoolID,
		From:      from,
		To:        to,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

// RevokeToken invalidates a shared link before its natural expiry.
func (s *URLSignerService) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	err := s.redis.Set(ctx, "revoked_link:"+tokenID, "1", ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// IsTokenRevoked checks whether a link has been revoked
func (s *URLSignerService) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	result, err := s.redis.Get(ctx, "revoked_link:"+tokenID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return result == "1", nil
}
