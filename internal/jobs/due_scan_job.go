package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"skybound/flightline/internal/db/repositories"
	"skybound/flightline/internal/duestatus"
	"skybound/flightline/internal/metrics"
	"skybound/flightline/internal/services"
)

// DueScanJob sweeps every school's active components on a schedule and
// exports the overdue / due-soon counts as gauges. The API always evaluates
// fresh; the scan only exists so dashboards and alerts see fleet health
// without traffic.
type DueScanJob struct {
	schools    *repositories.SchoolRepository
	components *services.ComponentService
	metrics    *metrics.MetricsRegistry
}

func NewDueScanJob(
	schools *repositories.SchoolRepository,
	components *services.ComponentService,
	metricsReg *metrics.MetricsRegistry,
) *DueScanJob {
	return &DueScanJob{
		schools:    schools,
		components: components,
		metrics:    metricsReg,
	}
}

// RunScheduled runs the scan immediately, then on every tick until the
// context is cancelled.
func (j *DueScanJob) RunScheduled(ctx context.Context, interval time.Duration) {
	if err := j.Run(ctx); err != nil {
		log.Printf("[DueScanJob] Initial scan failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[DueScanJob] Stopping scheduled scans")
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				log.Printf("[DueScanJob] Scan failed: %v", err)
			}
		}
	}
}

// Run scans all schools once. A failing school is logged and skipped so one
// bad tenant cannot starve the rest.
func (j *DueScanJob) Run(ctx context.Context) error {
	start := time.Now()

	schoolIDs, err := j.schools.ListSchoolIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list schools: %w", err)
	}

	scanned := 0
	for _, schoolID := range schoolIDs {
		if err := j.scanSchool(ctx, schoolID); err != nil {
			log.Printf("[DueScanJob] Error scanning school %s: %v", schoolID, err)
			continue
		}
		scanned++
	}

	log.Printf("[DueScanJob] Scanned %d/%d schools in %s",
		scanned, len(schoolIDs), time.Since(start).Truncate(time.Millisecond))

	return nil
}

func (j *DueScanJob) scanSchool(ctx context.Context, schoolID string) error {
	start := time.Now()

	rows, summary, err := j.components.FleetStatus(ctx, schoolID)
	if err != nil {
		return err
	}

	if j.metrics != nil {
		j.metrics.ComponentsOverdue.WithLabelValues(schoolID).Set(float64(summary.Overdue))
		j.metrics.ComponentsDueSoon.WithLabelValues(schoolID).Set(float64(summary.DueSoon))
		j.metrics.DueScanDuration.WithLabelValues(schoolID).Observe(time.Since(start).Seconds())
	}

	for _, row := range rows {
		if row.Status == duestatus.StatusOverdue {
			log.Printf("[DueScanJob] OVERDUE school=%s aircraft=%s component=%s due_in=%q",
				schoolID, row.AircraftID, row.Name, row.DueIn)
		}
	}

	return nil
}
