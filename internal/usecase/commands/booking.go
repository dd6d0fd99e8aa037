package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"resource-booking/internal/domain/booking"
	"resource-booking/internal/infra"
	"resource-booking/internal/pkg/clock"
	"resource-booking/internal/pkg/config"
	"resource-booking/internal/pkg/errs"
	"resource-booking/internal/pkg/reslock"
	"resource-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeRange        = errs.New("invalid time range")
	ErrDurationExceeded        = errs.New("booking duration exceeded")
	ErrPastStartTime           = errs.New("start time in the past")
	ErrResourceNotFound        = errs.New("resource not found")
	ErrResourceInactive        = errs.New("resource inactive")
	ErrBookingOverlap          = errs.New("booking overlap")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrForbidden               = errs.New("forbidden")
	ErrInvalidStatus           = errs.New("invalid booking status")
	ErrReservationBusy         = errs.New("reservation busy, retry")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingParams struct {
	ResourceID uuid.UUID
	StartAt    time.Time
	EndAt      time.Time
	Note       *string
}

type BookingRepository interface {
	ReserveSlot(ctx context.Context, b *booking.Booking) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to booking.Status) error
}

type ResourceReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error)
}

type BookingViewReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error)
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, params CreateBookingParams, actor booking.Actor) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, actor booking.Actor) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	bookingRepo  BookingRepository
	resourceRead ResourceReader
	bookingRead  BookingViewReader
	locks        *reslock.KeyedMutex
	clock        clock.Clock
	cfg          config.BookingConfig
}

func NewBookingCommands(
	bookingRepo BookingRepository,
	resourceRead ResourceReader,
	bookingRead BookingViewReader,
	locks *reslock.KeyedMutex,
	clk clock.Clock,
	cfg config.BookingConfig,
) BookingCommands {
	return &bookingCommandsImpl{
		bookingRepo:  bookingRepo,
		resourceRead: resourceRead,
		bookingRead:  bookingRead,
		locks:        locks,
		clock:        clk,
		cfg:          cfg,
	}
}

// CreateBooking validates the proposed slot, gates on the resource, then
// commits through the conflict resolver. The whole check-and-insert runs
// under the resource's exclusion token, so of any set of mutually
// overlapping concurrent attempts exactly one commits.
func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, params CreateBookingParams, actor booking.Actor) (*queries.BookingView, error) {
	slot, err := booking.NewTimeSlot(params.StartAt, params.EndAt)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeRange)
	}
	if err := slot.ValidateProposalAt(c.clock.Now(), c.cfg.MaxDuration); err != nil {
		switch {
		case errors.Is(err, booking.ErrDurationExceeded):
			return nil, errs.Mark(err, ErrDurationExceeded)
		case errors.Is(err, booking.ErrPastStartTime):
			return nil, errs.Mark(err, ErrPastStartTime)
		default:
			return nil, errs.Mark(err, ErrInvalidTimeRange)
		}
	}

	resourceView, err := c.resourceRead.FindByID(ctx, params.ResourceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !resourceView.Active {
		return nil, ErrResourceInactive
	}

	release, err := c.locks.Acquire(ctx, params.ResourceID, c.cfg.LockWait)
	if err != nil {
		if errors.Is(err, reslock.ErrLockBusy) {
			return nil, errs.Mark(err, ErrReservationBusy)
		}
		return nil, err
	}
	defer release()

	entity := booking.NewBooking(params.ResourceID, actor.ID, slot, newNote(params.Note))

	bookingID, err := c.bookingRepo.ReserveSlot(ctx, entity)
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindConflict):
			return nil, errs.Mark(err, ErrBookingOverlap)
		case infra.IsKind(err, infra.KindLockNotAvailable):
			return nil, errs.Mark(err, ErrReservationBusy)
		default:
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	slog.Info("booking created",
		"booking_id", bookingID,
		"resource_id", params.ResourceID,
		"user_id", actor.ID)

	view, err := c.bookingRead.FindByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// CancelBooking is the single cancellation path for both owners and
// administrators; booking.Cancel holds the capability gate. No slot
// re-validation happens here.
func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID uuid.UUID, actor booking.Actor) (*queries.BookingView, error) {
	entity, err := c.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := entity.Cancel(actor); err != nil {
		switch {
		case errors.Is(err, booking.ErrNotOwner):
			return nil, errs.Mark(err, ErrForbidden)
		case errors.Is(err, booking.ErrNotCancelable):
			return nil, errs.Mark(err, ErrInvalidStatus)
		default:
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	if err := c.bookingRepo.UpdateStatus(ctx, bookingID, booking.StatusActive, entity.Status()); err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return nil, ErrBookingNotFound
		case infra.IsKind(err, infra.KindConflict):
			// lost the transition to a concurrent cancel
			return nil, errs.Mark(err, ErrInvalidStatus)
		default:
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	slog.Info("booking cancelled",
		"booking_id", bookingID,
		"actor_id", actor.ID,
		"as_admin", actor.IsAdmin && actor.ID != entity.UserID())

	view, err := c.bookingRead.FindByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func newNote(note *string) booking.Note {
	if note == nil {
		return booking.NewNote("")
	}
	return booking.NewNote(strings.TrimSpace(*note))
}
