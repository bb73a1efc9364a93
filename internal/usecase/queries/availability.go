package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"resource-scheduler/internal/domain/booking"
	"resource-scheduler/internal/infra"
	"resource-scheduler/internal/pkg/clock"
	"resource-scheduler/internal/pkg/errs"
	"resource-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

const MessageAvailable = "Time slot is available."

var (
	ErrResourceNotFound = errs.Mark(errs.New("resource not found"), shared.ErrNotFound)
	ErrResourceInactive = errs.Mark(errs.New("the selected resource is currently not active"), shared.ErrValidation)
)

type AvailabilityQueries interface {
	CheckAvailability(ctx context.Context, resourceID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (*AvailabilityReport, error)
}

type availabilityQueriesImpl struct {
	uow    shared.UnitOfWork
	cache  shared.AvailabilityCache
	rules  booking.TimingRules
	clock  clock.Clock
	logger *slog.Logger
}

func NewAvailabilityQueries(uow shared.UnitOfWork, cache shared.AvailabilityCache, rules booking.TimingRules, clock clock.Clock, logger *slog.Logger) AvailabilityQueries {
	return &availabilityQueriesImpl{
		uow:    uow,
		cache:  cache,
		rules:  rules,
		clock:  clock,
		logger: logger,
	}
}

// CheckAvailability ignores priority: it only reports whether capacity is left.
func (q *availabilityQueriesImpl) CheckAvailability(ctx context.Context, resourceID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (*AvailabilityReport, error) {
	slot, err := q.rules.NewSlot(start, end, q.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, shared.ErrValidation)
	}

	key := availabilityKey(slot, excludeID)
	if report, ok := q.cached(ctx, resourceID, key); ok {
		return report, nil
	}

	var report *AvailabilityReport
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Resources().FindByID(ctx, resourceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrResourceNotFound
			}
			return errs.Mark(err, shared.ErrInfrastructure)
		}
		if !res.IsActive() {
			return ErrResourceInactive
		}

		conflicts, err := tx.Bookings().FindConflicts(ctx, resourceID, slot, excludeID)
		if err != nil {
			return errs.Mark(err, shared.ErrInfrastructure)
		}
		report = buildReport(res.Capacity(), conflicts)
		return nil
	})
	if err != nil {
		return nil, err
	}

	q.store(ctx, resourceID, key, report)
	return report, nil
}

func buildReport(capacity int, conflicts []*booking.Booking) *AvailabilityReport {
	report := &AvailabilityReport{
		Available: true,
		Message:   MessageAvailable,
		Conflicts: NewBookingViews(conflicts),
	}
	switch {
	case capacity == 1 && len(conflicts) > 0:
		report.Available = false
		report.Message = "Resource is already fully booked during this time."
	case capacity > 1 && len(conflicts) >= capacity:
		report.Available = false
		report.Message = fmt.Sprintf("Resource capacity (%d) is fully booked for the selected time period.", capacity)
	}
	return report
}

func availabilityKey(slot booking.TimeSlot, excludeID *uuid.UUID) string {
	exclude := "-"
	if excludeID != nil {
		exclude = excludeID.String()
	}
	return strconv.FormatInt(slot.Start().UnixMicro(), 10) + ":" +
		strconv.FormatInt(slot.End().UnixMicro(), 10) + ":" + exclude
}

// Cache failures degrade to a database read.
func (q *availabilityQueriesImpl) cached(ctx context.Context, resourceID uuid.UUID, key string) (*AvailabilityReport, bool) {
	if q.cache == nil {
		return nil, false
	}
	raw, ok, err := q.cache.Get(ctx, resourceID, key)
	if err != nil {
		q.logger.Warn("availability cache read failed",
			slog.String("resource_id", resourceID.String()),
			slog.String("error", err.Error()))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var report AvailabilityReport
	if err := json.Unmarshal(raw, &report); err != nil {
		q.logger.Warn("discarding undecodable availability cache entry",
			slog.String("resource_id", resourceID.String()),
			slog.String("error", err.Error()))
		return nil, false
	}
	return &report, true
}

func (q *availabilityQueriesImpl) store(ctx context.Context, resourceID uuid.UUID, key string, report *AvailabilityReport) {
	if q.cache == nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := q.cache.Set(ctx, resourceID, key, raw); err != nil {
		q.logger.Warn("availability cache write failed",
			slog.String("resource_id", resourceID.String()),
			slog.String("error", err.Error()))
	}
}
