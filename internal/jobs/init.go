package jobs

import (
	"context"
	"time"

	"skybound/flightline/internal/db/repositories"
	"skybound/flightline/internal/metrics"
	"skybound/flightline/internal/services"
)

type JobsContainer struct {
	DueScan *DueScanJob
}

// InitializeJobs starts all background jobs.
func InitializeJobs(
	ctx context.Context,
	schools *repositories.SchoolRepository,
	components *services.ComponentService,
	metricsReg *metrics.MetricsRegistry,
) *JobsContainer {
	dueScan := NewDueScanJob(schools, components, metricsReg)

	// Hourly sweep keeps the fleet gauges current without API traffic.
	go dueScan.RunScheduled(ctx, 1*time.Hour)

	return &JobsContainer{
		DueScan: dueScan,
	}
}
