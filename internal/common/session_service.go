package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"skybound/flightline/internal/logging"
)

// ViewerSession is a short-lived session minted when a shared statement link
// is redeemed. It lets the statement page refetch without re-presenting the
// signed token.
type ViewerSession struct {
	SessionID string    `json:"session_id"`
	MemberID  string    `json:"member_id"`
	SchoolID  string    `json:"school_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionService manages viewer sessions in Redis
type SessionService struct {
	redis *redis.Client
}

func NewSessionService(redis *redis.Client) *SessionService {
	return &SessionService{
		redis: redis,
	}
}

const viewerSessionTTL = 2 * time.Hour

// CreateSession mints a viewer session scoped to one statement range.
func (s *SessionService) CreateSession(
	ctx context.Context,
	memberID, schoolID, from, to string,
) (string, error) {
	sessionID := uuid.New().String()

	now := time.Now()
	session := ViewerSession{
		SessionID: sessionID,
		MemberID:  memberID,
		SchoolID:  schoolID,
		From:      from,
		To:        to,
		CreatedAt: now,
		ExpiresAt: now.Add(viewerSessionTTL),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}

	err = s.redis.Set(ctx, "session:"+sessionID, data, viewerSessionTTL).Err()
	if err != nil {
		logging.Error("Failed to store viewer session", "error", err)
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	return sessionID, nil
}

// GetSession retrieves a viewer session from Redis
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*ViewerSession, error) {
	val, err := s.redis.Get(ctx, "session:"+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.New("session not found")
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session ViewerSession
	err = json.Unmarshal([]byte(val), &session)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		s.DeleteSession(ctx, sessionID) // Clean up expired session
		return nil, errors.New("session expired")
	}

	return &session, nil
}

// DeleteSession deletes a viewer session from Redis
func (s *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	err := s.redis.Del(ctx, "session:"+sessionID).Err()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// RefreshSession extends the session expiration
func (s *SessionService) RefreshSession(ctx context.Context, sessionID string) error {
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}

	session.ExpiresAt = time.Now().Add(viewerSessionTTL)

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	err = s.redis.Set(ctx, "session:"+sessionID, data, viewerSessionTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to refresh session: %w", err)
	}

	return nil
}
