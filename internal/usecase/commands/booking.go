package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"resource-scheduler/internal/domain/booking"
	"resource-scheduler/internal/domain/resource"
	"resource-scheduler/internal/domain/user"
	"resource-scheduler/internal/infra"
	"resource-scheduler/internal/pkg/clock"
	"resource-scheduler/internal/pkg/errs"
	"resource-scheduler/internal/pkg/patch"
	"resource-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("resource-scheduler/usecase/commands")

const (
	maxReferenceAttempts = 5
	maxCollisionRetries  = 3
)

var errReferenceCollision = errs.New("booking reference collided on insert")

type SchedulerSettings struct {
	MaxActiveBookings int
	Rules             booking.TimingRules
}

func DefaultSchedulerSettings() SchedulerSettings {
	return SchedulerSettings{
		MaxActiveBookings: 5,
		Rules:             booking.DefaultTimingRules(),
	}
}

type CreateBookingInput struct {
	ResourceID uuid.UUID
	Start      time.Time
	End        time.Time
	Category   booking.Category
	Purpose    string
}

// UpdateBookingInput fields left nil keep the booking's current value.
type UpdateBookingInput struct {
	Start    *time.Time
	End      *time.Time
	Category *booking.Category
	Purpose  *string
}

type CancelFailure struct {
	BookingID uuid.UUID
	Err       error
}

type CancelManyResult struct {
	Cancelled int
	Requested int
	Failures  []CancelFailure
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, in CreateBookingInput, requesterID uuid.UUID) (*booking.Booking, error)
	UpdateBooking(ctx context.Context, bookingID uuid.UUID, in UpdateBookingInput, requesterID uuid.UUID) (*booking.Booking, error)
	CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID, reason string) (*booking.Booking, error)
	CancelBookings(ctx context.Context, bookingIDs []uuid.UUID, actorID uuid.UUID, reason string) CancelManyResult
}

type bookingCommandsImpl struct {
	uow        shared.UnitOfWork
	priorities booking.PriorityCalculator
	references *booking.ReferenceGenerator
	dispatcher *Dispatcher
	clock      clock.Clock
	settings   SchedulerSettings
	logger     *slog.Logger
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	priorities booking.PriorityCalculator,
	references *booking.ReferenceGenerator,
	dispatcher *Dispatcher,
	clock clock.Clock,
	settings SchedulerSettings,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:        uow,
		priorities: priorities,
		references: references,
		dispatcher: dispatcher,
		clock:      clock,
		settings:   settings,
		logger:     logger,
	}
}

func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, in CreateBookingInput, requesterID uuid.UUID) (*booking.Booking, error) {
	ctx, span := tracer.Start(ctx, "BookingCommands.CreateBooking", trace.WithAttributes(
		attribute.String("resource_id", in.ResourceID.String()),
		attribute.String("requester_id", requesterID.String()),
	))
	defer span.End()

	now := c.clock.Now()
	slot, err := c.settings.Rules.NewSlot(in.Start, in.End, now)
	if err != nil {
		return nil, c.fail(ctx, span, "create booking", validationErr(err))
	}
	category, err := booking.NewCategory(in.Category.String())
	if err != nil {
		return nil, c.fail(ctx, span, "create booking", validationErr(err))
	}

	var created *booking.Booking
	fx := &effects{}
	for attempt := 0; ; attempt++ {
		err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			fx.reset()
			created = nil

			if err := tx.Users().LockForQuota(ctx, requesterID); err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return notFoundErr(ErrRequesterNotFound)
				}
				return infraErr(err, "lock requester")
			}
			count, err := tx.Bookings().CountActiveByRequester(ctx, requesterID, now)
			if err != nil {
				return infraErr(err, "count active bookings")
			}
			if count >= c.settings.MaxActiveBookings {
				return validationErr(errs.Wrapf(ErrQuotaExceeded,
					"you have reached the maximum limit of %d active bookings", c.settings.MaxActiveBookings))
			}

			res, err := loadActiveResource(ctx, tx, in.ResourceID)
			if err != nil {
				return err
			}
			role, err := roleOf(ctx, tx, requesterID)
			if err != nil {
				return err
			}
			priority := c.priorities.Priority(role, category)

			decision, err := c.admit(ctx, tx, res, priority, slot, nil)
			if err != nil {
				return err
			}

			ref, err := c.allocateReference(ctx, tx, now)
			if err != nil {
				return err
			}
			if err := c.preempt(ctx, tx, fx, decision.ToPreempt, "preempted by higher-priority booking "+ref.String(), now); err != nil {
				return err
			}

			b, err := booking.NewBooking(booking.NewBookingParams{
				Reference:   ref,
				ResourceID:  res.ID(),
				RequesterID: requesterID,
				Slot:        slot,
				Purpose:     in.Purpose,
				Category:    category,
				Priority:    priority,
			}, now)
			if err != nil {
				return validationErr(err)
			}
			if err := tx.Bookings().Insert(ctx, b); err != nil {
				if infra.IsKind(err, infra.KindDuplicateKey) {
					return errs.Mark(err, errReferenceCollision)
				}
				return infraErr(err, "insert booking")
			}

			fx.notify(requesterID, shared.EventApproved, eventFor(b, "", now))
			fx.touch(res.ID())
			created = b

			c.logger.Info("booking admitted",
				slog.String("booking_id", b.ID().String()),
				slog.String("reference", ref.String()),
				slog.String("resource_id", res.ID().String()),
				slog.Int("priority", priority),
				slog.Int("preempted", len(decision.ToPreempt)))
			return nil
		})
		if errs.Is(err, errReferenceCollision) && attempt < maxCollisionRetries {
			c.logger.Warn("booking reference collision, retrying", slog.Int("attempt", attempt+1))
			continue
		}
		break
	}
	if err != nil {
		if errs.Is(err, errReferenceCollision) {
			err = infraErr(errs.Mark(err, ErrReferenceExhausted), "insert booking")
		}
		return nil, c.fail(ctx, span, "create booking", err)
	}

	c.dispatcher.dispatch(ctx, fx)
	return created, nil
}

func (c *bookingCommandsImpl) UpdateBooking(ctx context.Context, bookingID uuid.UUID, in UpdateBookingInput, requesterID uuid.UUID) (*booking.Booking, error) {
	ctx, span := tracer.Start(ctx, "BookingCommands.UpdateBooking", trace.WithAttributes(
		attribute.String("booking_id", bookingID.String()),
		attribute.String("requester_id", requesterID.String()),
	))
	defer span.End()

	now := c.clock.Now()
	var updated *booking.Booking
	fx := &effects{}
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fx.reset()

		// Resource lock first, then the booking row: the same order admission uses.
		current, err := loadBooking(ctx, tx, bookingID, false)
		if err != nil {
			return err
		}
		res, err := loadActiveResource(ctx, tx, current.ResourceID())
		if err != nil {
			return err
		}
		if err := tx.Resources().LockForAdmission(ctx, res.ID()); err != nil {
			return mapResourceErr(err)
		}
		b, err := loadBooking(ctx, tx, bookingID, true)
		if err != nil {
			return err
		}

		role, err := roleOf(ctx, tx, requesterID)
		if err != nil {
			return err
		}
		if !b.IsOwnedBy(requesterID) && !role.IsAdmin() {
			return forbiddenErr(ErrNotOwner)
		}
		if err := b.CanModify(now); err != nil {
			return validationErr(err)
		}

		slot, err := booking.NewTimeSlot(
			patch.Coalesce(in.Start, b.Slot().Start()),
			patch.Coalesce(in.End, b.Slot().End()),
		)
		if err != nil {
			return validationErr(err)
		}
		if patch.Differs(in.Start, b.Slot().Start(), time.Time.Equal) || patch.Differs(in.End, b.Slot().End(), time.Time.Equal) {
			if err := c.settings.Rules.Validate(slot, now); err != nil {
				return validationErr(err)
			}
		}
		category, err := booking.NewCategory(patch.Coalesce(in.Category, b.Category()).String())
		if err != nil {
			return validationErr(err)
		}
		priority := c.priorities.Priority(role, category)

		id := b.ID()
		decision, err := c.decide(ctx, tx, res, priority, slot, &id)
		if err != nil {
			return err
		}
		if err := c.preempt(ctx, tx, fx, decision.ToPreempt, "preempted by updated higher-priority booking "+b.Reference().String(), now); err != nil {
			return err
		}

		if err := b.Reschedule(booking.Changes{
			Slot:     slot,
			Category: category,
			Purpose:  patch.Coalesce(in.Purpose, b.Purpose()),
			Priority: priority,
		}, now); err != nil {
			return validationErr(err)
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return infraErr(err, "update booking")
		}

		fx.notify(b.RequesterID(), shared.EventApproved, eventFor(b, "", now))
		fx.touch(res.ID())
		updated = b

		c.logger.Info("booking rescheduled",
			slog.String("booking_id", b.ID().String()),
			slog.String("resource_id", res.ID().String()),
			slog.Int("priority", priority),
			slog.Int("preempted", len(decision.ToPreempt)))
		return nil
	})
	if err != nil {
		return nil, c.fail(ctx, span, "update booking", err)
	}

	c.dispatcher.dispatch(ctx, fx)
	return updated, nil
}

func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID, actorID uuid.UUID, reason string) (*booking.Booking, error) {
	ctx, span := tracer.Start(ctx, "BookingCommands.CancelBooking", trace.WithAttributes(
		attribute.String("booking_id", bookingID.String()),
		attribute.String("actor_id", actorID.String()),
	))
	defer span.End()

	now := c.clock.Now()
	var cancelled *booking.Booking
	fx := &effects{}
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		fx.reset()

		b, err := loadBooking(ctx, tx, bookingID, true)
		if err != nil {
			return err
		}
		role, err := roleOf(ctx, tx, actorID)
		if err != nil {
			return err
		}
		if !b.IsOwnedBy(actorID) && !role.IsAdmin() {
			return forbiddenErr(ErrNotOwner)
		}
		if err := b.Cancel(actorID, reason, now); err != nil {
			return validationErr(err)
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return infraErr(err, "cancel booking")
		}

		fx.notify(b.RequesterID(), shared.EventCancelled, eventFor(b, b.CancellationReason(), now))
		fx.touch(b.ResourceID())
		cancelled = b
		return nil
	})
	if err != nil {
		return nil, c.fail(ctx, span, "cancel booking", err)
	}

	c.logger.Info("booking cancelled",
		slog.String("booking_id", bookingID.String()),
		slog.String("actor_id", actorID.String()))
	c.dispatcher.dispatch(ctx, fx)
	return cancelled, nil
}

// CancelBookings cancels each booking in its own transaction and collects per-id failures.
func (c *bookingCommandsImpl) CancelBookings(ctx context.Context, bookingIDs []uuid.UUID, actorID uuid.UUID, reason string) CancelManyResult {
	result := CancelManyResult{Requested: len(bookingIDs)}
	for _, id := range bookingIDs {
		if _, err := c.CancelBooking(ctx, id, actorID, reason); err != nil {
			result.Failures = append(result.Failures, CancelFailure{BookingID: id, Err: err})
			continue
		}
		result.Cancelled++
	}
	return result
}

// admit locks the resource and decides; a rejection becomes a ConflictError.
func (c *bookingCommandsImpl) admit(ctx context.Context, tx shared.Tx, res *resource.Resource, priority int, slot booking.TimeSlot, excludeID *uuid.UUID) (booking.Decision, error) {
	if err := tx.Resources().LockForAdmission(ctx, res.ID()); err != nil {
		return booking.Decision{}, mapResourceErr(err)
	}
	return c.decide(ctx, tx, res, priority, slot, excludeID)
}

// decide expects the resource lock to be held already.
func (c *bookingCommandsImpl) decide(ctx context.Context, tx shared.Tx, res *resource.Resource, priority int, slot booking.TimeSlot, excludeID *uuid.UUID) (booking.Decision, error) {
	conflicts, err := tx.Bookings().FindConflicts(ctx, res.ID(), slot, excludeID)
	if err != nil {
		return booking.Decision{}, infraErr(err, "find conflicts")
	}
	decision := booking.Decide(res.Capacity(), priority, conflicts)
	if !decision.Accepted {
		return decision, &ConflictError{Reason: decision.Reason, Conflicts: decision.Blocking}
	}
	return decision, nil
}

func (c *bookingCommandsImpl) preempt(ctx context.Context, tx shared.Tx, fx *effects, victims []*booking.Booking, reason string, now time.Time) error {
	for _, v := range victims {
		if err := v.Preempt(reason, now); err != nil {
			return infraErr(err, fmt.Sprintf("preempt booking %s", v.ID()))
		}
		if err := tx.Bookings().Update(ctx, v); err != nil {
			return infraErr(err, "update preempted booking")
		}
		fx.notify(v.RequesterID(), shared.EventPreempted, eventFor(v, reason, now))
		fx.touch(v.ResourceID())
	}
	return nil
}

func (c *bookingCommandsImpl) allocateReference(ctx context.Context, tx shared.Tx, now time.Time) (booking.Reference, error) {
	for i := 0; i < maxReferenceAttempts; i++ {
		ref, err := c.references.Generate(now)
		if err != nil {
			return "", infraErr(err, "generate booking reference")
		}
		exists, err := tx.Bookings().ReferenceExists(ctx, ref)
		if err != nil {
			return "", infraErr(err, "check booking reference")
		}
		if !exists {
			return ref, nil
		}
	}
	return "", infraErr(ErrReferenceExhausted, "allocate booking reference")
}

func (c *bookingCommandsImpl) fail(ctx context.Context, span trace.Span, op string, err error) error {
	return failOperation(ctx, c.logger, span, op, err)
}

func failOperation(ctx context.Context, logger *slog.Logger, span trace.Span, op string, err error) error {
	if isBusinessRejection(err) {
		span.SetAttributes(attribute.String("rejection", err.Error()))
		logger.WarnContext(ctx, op+" rejected", slog.String("reason", err.Error()))
		return err
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, op+" failed")
	logger.ErrorContext(ctx, op+" failed",
		slog.String("error", err.Error()),
		slog.Any("stack", errs.ExtractStackLines(err, 10)))
	if !errs.Is(err, ErrInfrastructure) {
		err = errs.Mark(err, ErrInfrastructure)
	}
	return err
}

func loadActiveResource(ctx context.Context, tx shared.Tx, id uuid.UUID) (*resource.Resource, error) {
	res, err := tx.Resources().FindByID(ctx, id)
	if err != nil {
		return nil, mapResourceErr(err)
	}
	if !res.IsActive() {
		return nil, validationErr(ErrResourceInactive)
	}
	return res, nil
}

func mapResourceErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return notFoundErr(ErrResourceNotFound)
	}
	return infraErr(err, "load resource")
}

func loadBooking(ctx context.Context, tx shared.Tx, id uuid.UUID, forUpdate bool) (*booking.Booking, error) {
	var (
		b   *booking.Booking
		err error
	)
	if forUpdate {
		b, err = tx.Bookings().FindByIDForUpdate(ctx, id)
	} else {
		b, err = tx.Bookings().FindByID(ctx, id)
	}
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, notFoundErr(ErrBookingNotFound)
		}
		return nil, infraErr(err, "load booking")
	}
	return b, nil
}

func roleOf(ctx context.Context, tx shared.Tx, userID uuid.UUID) (user.Role, error) {
	role, err := tx.Users().RoleOf(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", notFoundErr(ErrRequesterNotFound)
		}
		return "", infraErr(err, "resolve requester role")
	}
	return role, nil
}

func eventFor(b *booking.Booking, reason string, now time.Time) shared.BookingEvent {
	return shared.BookingEvent{
		BookingID:  b.ID(),
		Reference:  b.Reference().String(),
		ResourceID: b.ResourceID(),
		Start:      b.Slot().Start(),
		End:        b.Slot().End(),
		Status:     b.Status().String(),
		Reason:     reason,
		OccurredAt: now,
	}
}
