package common

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"skybound/flightline/internal/logging"
)

// VisitEventQueue publishes and consumes maintenance-visit events over a
// Redis Stream. Consumers evict the cached due-status views that the visit
// invalidated.
type VisitEventQueue struct {
	client *redis.Client
}

func NewVisitEventQueue(client *redis.Client) *VisitEventQueue {
	return &VisitEventQueue{
		client: client,
	}
}

// VisitEvent is emitted after a maintenance visit commits.
type VisitEvent struct {
	SchoolID    string  `json:"school_id"`
	AircraftID  string  `json:"aircraft_id"`
	ComponentID *string `json:"component_id,omitempty"`
	VisitID     string  `json:"visit_id"`
	LoggedAt    string  `json:"logged_at"`
}

// Enqueue adds a visit event to the stream.
// XADD stream_name * data <json>
func (s *VisitEventQueue) Enqueue(ctx context.Context, streamName string, event *VisitEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal visit event: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: streamName,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}

	_, err = s.client.XAdd(ctx, args).Result()
	if err != nil {
		return fmt.Errorf("failed to add to stream: %w", err)
	}

	return nil
}

// Dequeue reads one visit event via the consumer group.
// Returns (event, messageID, error); a nil event means the block timed out.
func (s *VisitEventQueue) Dequeue(ctx context.Context, streamName, groupName, consumerName string, blockTime time.Duration) (*VisitEvent, string, error) {
	args := &redis.XReadGroupArgs{
		Group:    groupName,
		Consumer: consumerName,
		Streams:  []string{streamName, ">"}, // ">" means new messages only
		Count:    1,
		Block:    blockTime,
	}

	streams, err := s.client.XReadGroup(ctx, args).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to read from stream: %w", err)
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return nil, "", nil
	}

	msg := streams[0].Messages[0]

	dataStr, ok := msg.Values["data"].(string)
	if !ok {
		return nil, "", fmt.Errorf("invalid message format: data field missing")
	}

	var event VisitEvent
	if err := json.Unmarshal([]byte(dataStr), &event); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal visit event: %w", err)
	}

	return &event, msg.ID, nil
}

// Ack acknowledges successful processing of a message
func (s *VisitEventQueue) Ack(ctx context.Context, streamName, groupName, messageID string) error {
	return s.client.XAck(ctx, streamName, groupName, messageID).Err()
}

// CreateConsumerGroup creates a consumer group for the stream if it doesn't exist
func (s *VisitEventQueue) CreateConsumerGroup(ctx context.Context, streamName, groupName string) error {
	// XGROUP CREATE stream group 0 MKSTREAM
	err := s.client.XGroupCreateMkStream(ctx, streamName, groupName, "0").Err()
	if err != nil && err.Error() == "BUSYGROUP Consumer Group name already exists" {
		return nil
	}
	return err
}

// GetQueueLength returns the number of messages in the stream
func (s *VisitEventQueue) GetQueueLength(ctx context.Context, streamName string) (int64, error) {
	length, err := s.client.XLen(ctx, streamName).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get queue length: %w", err)
	}
	return length, nil
}

// TrimStream keeps only the most recent maxLen messages
func (s *VisitEventQueue) TrimStream(ctx context.Context, streamName string, maxLen int64) error {
	return s.client.XTrimMaxLen(ctx, streamName, maxLen).Err()
}

// ClaimStale claims messages pending longer than minIdleTime, likely left by
// a dead consumer. Returns the claimed events and their message IDs.
func (s *VisitEventQueue) ClaimStale(ctx context.Context, streamName, groupName, consumerName string, minIdleTime time.Duration) ([]*VisitEvent, []string, error) {
	pending, err := s.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: streamName,
		Group:  groupName,
		Start:  "-",
		End:    "+",
		Count:  100,
	}).Result()

	if err != nil {
		return nil, nil, fmt.Errorf("failed to get pending messages: %w", err)
	}

	if len(pending) == 0 {
		return nil, nil, nil
	}

	var staleIDs []string
	for _, p := range pending {
		if p.Idle >= minIdleTime {
			staleIDs = append(staleIDs, p.ID)
		}
	}

	if len(staleIDs) == 0 {
		return nil, nil, nil
	}

	messages, err := s.client.XClaim(ctx, &redis.XClaimArgs{
		Stream:   streamName,
		Group:    groupName,
		Consumer: consumerName,
		MinIdle:  minIdleTime,
		Messages: staleIDs,
	}).Result()

	if err != nil {
		return nil, nil, fmt.Errorf("failed to claim stale messages: %w", err)
	}

	var events []*VisitEvent
	var messageIDs []string
	for _, msg := range messages {
		dataStr, ok := msg.Values["data"].(string)
		if !ok {
			continue
		}

		var event VisitEvent
		if err := json.Unmarshal([]byte(dataStr), &event); err != nil {
			logging.Warn("visit queue: failed to unmarshal claimed message", "error", err)
			continue
		}

		events = append(events, &event)
		messageIDs = append(messageIDs, msg.ID)
	}

	return events, messageIDs, nil
}
