package workers

import (
	"context"
	"log"
	"os"
	"time"

	"skybound/flightline/internal/common"
	"skybound/flightline/internal/constants"
)

const (
	visitEventGroup = "cache_invalidators"

	// Visits arrive at human pace; a long block keeps Redis chatter low.
	dequeueBlock = 5 * time.Second

	staleClaimInterval = 1 * time.Minute
	staleMinIdle       = 2 * time.Minute

	streamMaxLen = 10000
)

// VisitEventWorker consumes visit.logged events and evicts the cached rows
// they invalidate. Losing an event is tolerable; the cache entries expire on
// TTL anyway.
type VisitEventWorker struct {
	queue    *common.VisitEventQueue
	cache    common.CacheInterface
	consumer string
}

func NewVisitEventWorker(queue *common.VisitEventQueue, cache common.CacheInterface) *VisitEventWorker {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "flightline"
	}
	return &VisitEventWorker{
		queue:    queue,
		cache:    cache,
		consumer: hostname,
	}
}

// Start blocks until the context is cancelled.
func (w *VisitEventWorker) Start(ctx context.Context) {
	if err := w.queue.CreateConsumerGroup(ctx, constants.VisitEventStream, visitEventGroup); err != nil {
		log.Printf("[VisitEventWorker] Failed to create consumer group: %v", err)
		return
	}

	go w.reclaimLoop(ctx)

	log.Printf("[VisitEventWorker] Consuming %s as %s", constants.VisitEventStream, w.consumer)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[VisitEventWorker] Stopping")
			return
		default:
		}

		event, msgID, err := w.queue.Dequeue(ctx, constants.VisitEventStream, visitEventGroup, w.consumer, dequeueBlock)
		if err != nil {
			log.Printf("[VisitEventWorker] Dequeue error: %v", err)
			time.Sleep(1 * time.Second)
			continue
		}
		if event == nil {
			continue
		}

		w.handle(event)

		if err := w.queue.Ack(ctx, constants.VisitEventStream, visitEventGroup, msgID); err != nil {
			log.Printf("[VisitEventWorker] Ack failed for %s: %v", msgID, err)
		}
	}
}

// handle evicts everything a logged visit can change: the aircraft's
// component list and its cached meter reading.
func (w *VisitEventWorker) handle(event *common.VisitEvent) {
	w.cache.Delete(string(constants.CachePrefixComponentList) + event.AircraftID)
	w.cache.Delete(string(constants.CachePrefixAircraftHours) + event.AircraftID)

	log.Printf("[VisitEventWorker] Evicted caches for aircraft %s (visit %s)", event.AircraftID, event.VisitID)
}

// reclaimLoop re-reads messages a dead consumer left pending and trims the
// stream so it cannot grow without bound.
func (w *VisitEventWorker) reclaimLoop(ctx context.Context) {
	ticker := time.NewTicker(staleClaimInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			events, msgIDs, err := w.queue.ClaimStale(ctx, constants.VisitEventStream, visitEventGroup, w.consumer, staleMinIdle)
			if err != nil {
				log.Printf("[VisitEventWorker] Stale claim error: %v", err)
				continue
			}
			for i, event := range events {
				w.handle(event)
				if err := w.queue.Ack(ctx, constants.VisitEventStream, visitEventGroup, msgIDs[i]); err != nil {
					log.Printf("[VisitEventWorker] Ack failed for reclaimed %s: %v", msgIDs[i], err)
				}
			}

			if err := w.queue.TrimStream(ctx, constants.VisitEventStream, streamMaxLen); err != nil {
				log.Printf("[VisitEventWorker] Trim error: %v", err)
			}
		}
	}
}
