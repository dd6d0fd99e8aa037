package repository

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"resource-booking/internal/domain/booking"
	"resource-booking/internal/infra"
	"resource-booking/internal/infra/db"
	"resource-booking/internal/pkg/config"
	"resource-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeLockNotAvailable   = "55P03"
	pgErrCodeExclusionViolation = "23P01"

	// serialization failures and deadlocks roll back and retry; conflict and
	// lock-timeout errors pass straight through
	reserveMaxRetries = 2
)

type BookingRepository struct {
	pool     *pgxpool.Pool
	lockWait time.Duration
}

func NewBookingRepository(pool *pgxpool.Pool, cfg config.BookingConfig) *BookingRepository {
	return &BookingRepository{
		pool:     pool,
		lockWait: cfg.LockWait,
	}
}

// ReserveSlot commits a booking only if no ACTIVE booking on the same
// resource overlaps its slot. The overlap scan and the insert run in one
// transaction under an advisory lock keyed on the resource, so concurrent
// attempts for one resource are serialized into a single-writer stream.
// The schema's exclusion constraint backstops the same invariant.
func (r *BookingRepository) ReserveSlot(ctx context.Context, b *booking.Booking) (uuid.UUID, error) {
	return db.RunInTxWithRetry(ctx, r.pool, reserveMaxRetries, func(tx db.DBTX) (uuid.UUID, error) {
		// SET LOCAL does not accept bind parameters; the value is a config duration.
		lockTimeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockWait.Milliseconds())
		if _, err := tx.Exec(ctx, lockTimeout); err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to set lock timeout", err)
		}

		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, advisoryKey(b.ResourceID())); err != nil {
			return uuid.Nil, translateReserveErr("failed to acquire resource lock", err)
		}

		var exists bool
		err := tx.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM bookings
				WHERE resource_id = $1
				  AND status = 'active'
				  AND start_at < $3
				  AND end_at > $2
			)`,
			b.ResourceID(), b.Slot().Start(), b.Slot().End(),
		).Scan(&exists)
		if err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to scan for overlapping bookings", err)
		}
		if exists {
			return uuid.Nil, infra.WrapRepoErr("slot overlaps an active booking", nil, infra.KindConflict)
		}

		note := pgtype.Text{}
		if !b.Note().IsEmpty() {
			note = pgconv.StringToPgtype(b.Note().String())
		}

		var id uuid.UUID
		err = tx.QueryRow(ctx, `
			INSERT INTO bookings (id, resource_id, user_id, start_at, end_at, status, note)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id`,
			b.ID(), b.ResourceID(), b.UserID(), b.Slot().Start(), b.Slot().End(), b.Status().String(), note,
		).Scan(&id)
		if err != nil {
			return uuid.Nil, translateReserveErr("failed to insert booking", err)
		}

		return id, nil
	})
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	var (
		bookingID  uuid.UUID
		resourceID uuid.UUID
		userID     uuid.UUID
		startAt    time.Time
		endAt      time.Time
		status     string
		note       pgtype.Text
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, `
		SELECT id, resource_id, user_id, start_at, end_at, status, note, created_at, updated_at
		FROM bookings
		WHERE id = $1`,
		id,
	).Scan(&bookingID, &resourceID, &userID, &startAt, &endAt, &status, &note, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	slot, err := booking.NewTimeSlot(startAt, endAt)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has an invalid slot", err)
	}

	noteValue := ""
	if note.Valid {
		noteValue = note.String
	}

	return booking.ReconstructBooking(
		bookingID, resourceID, userID,
		slot,
		booking.Status(status),
		booking.NewNote(noteValue),
		pgconv.TimeFromPgtype(createdAt), pgconv.TimeFromPgtype(updatedAt),
	), nil
}

// UpdateStatus writes the transition only when the row still holds the
// expected status, so two racers loading the same ACTIVE booking cannot
// both commit a cancel. A zero-row update on an existing booking means the
// precondition was lost to a concurrent writer.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to booking.Status) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE bookings
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`,
		id, from.String(), to.String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id).Scan(&exists); err != nil {
			return infra.WrapRepoErr("failed to check booking existence", err)
		}
		if !exists {
			return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
		}
		return infra.WrapRepoErr("booking status changed concurrently", nil, infra.KindConflict)
	}
	return nil
}

// advisoryKey folds a resource UUID into the int64 keyspace of
// pg_advisory_xact_lock. Distinct resources may collide in theory; a
// collision only costs extra serialization, never a missed conflict.
func advisoryKey(resourceID uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write(resourceID[:])
	return int64(h.Sum64())
}

func translateReserveErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeLockNotAvailable:
			return infra.WrapRepoErr(msg, err, infra.KindLockNotAvailable)
		case pgErrCodeExclusionViolation:
			return infra.WrapRepoErr(msg, err, infra.KindConflict)
		}
	}
	return infra.WrapRepoErr(msg, err)
}
