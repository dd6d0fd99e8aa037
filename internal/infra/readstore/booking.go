package readstore

import (
	"context"
	"time"

	"resource-booking/internal/infra"
	"resource-booking/internal/infra/db"
	"resource-booking/internal/pkg/pgconv"
	"resource-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.db.QueryRow(ctx, `
		SELECT b.id, b.resource_id, r.name, b.user_id, u.email,
		       b.start_at, b.end_at, b.status, b.note, b.created_at, b.updated_at
		FROM bookings b
		JOIN resources r ON r.id = b.resource_id
		JOIN users u ON u.id = b.user_id
		WHERE b.id = $1`,
		id,
	)

	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

func (r *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.resource_id, r.name, b.start_at, b.end_at, b.status, b.created_at
		FROM bookings b
		JOIN resources r ON r.id = b.resource_id
		WHERE b.user_id = $1
		ORDER BY b.start_at DESC`,
		userID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by user", err)
	}
	defer rows.Close()

	return collectListItems(rows)
}

// FindAllWithFilters serves the administrative listing; nil filter fields
// are skipped. Ordered by start time descending, newest first.
func (r *BookingReadStore) FindAllWithFilters(ctx context.Context, filter queries.BookingFilter) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.resource_id, r.name, b.start_at, b.end_at, b.status, b.created_at
		FROM bookings b
		JOIN resources r ON r.id = b.resource_id
		WHERE ($1::uuid IS NULL OR b.resource_id = $1)
		  AND ($2::timestamptz IS NULL OR b.start_at >= $2)
		  AND ($3::timestamptz IS NULL OR b.start_at <= $3)
		ORDER BY b.start_at DESC`,
		pgconv.UUIDPtrToPgtype(filter.ResourceID),
		pgconv.TimePtrToPgtype(filter.From),
		pgconv.TimePtrToPgtype(filter.To),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	return collectListItems(rows)
}

// FindActiveInWindow returns ACTIVE bookings whose start falls inside
// [windowStart, windowEnd), ordered by start ascending. Feeds the
// availability projection.
func (r *BookingReadStore) FindActiveInWindow(ctx context.Context, resourceID uuid.UUID, windowStart, windowEnd time.Time) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.resource_id, r.name, b.start_at, b.end_at, b.status, b.created_at
		FROM bookings b
		JOIN resources r ON r.id = b.resource_id
		WHERE b.resource_id = $1
		  AND b.status = 'active'
		  AND b.start_at >= $2
		  AND b.start_at < $3
		ORDER BY b.start_at ASC`,
		resourceID, windowStart, windowEnd,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings in window", err)
	}
	defer rows.Close()

	return collectListItems(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingView(row rowScanner) (*queries.BookingView, error) {
	var (
		view      queries.BookingView
		note      pgtype.Text
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&view.ID, &view.ResourceID, &view.ResourceName, &view.UserID, &view.UserEmail,
		&view.StartAt, &view.EndAt, &view.Status, &note, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.Note = pgconv.StringPtrFromPgtype(note)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}

type bookingRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func collectListItems(rows bookingRows) ([]*queries.BookingListItem, error) {
	var result []*queries.BookingListItem
	for rows.Next() {
		var (
			item      queries.BookingListItem
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&item.ID, &item.ResourceID, &item.ResourceName, &item.StartAt, &item.EndAt, &item.Status, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return result, nil
}
