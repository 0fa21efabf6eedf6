package workers

import (
	"context"

	"skybound/flightline/internal/common"
)

type WorkersContainer struct {
	VisitEvents *VisitEventWorker
}

// InitWorkers starts the background consumers.
func InitWorkers(
	ctx context.Context,
	queue *common.VisitEventQueue,
	cache common.CacheInterface,
) *WorkersContainer {
	visitWorker := NewVisitEventWorker(queue, cache)

	go visitWorker.Start(ctx)

	return &WorkersContainer{
		VisitEvents: visitWorker,
	}
}
