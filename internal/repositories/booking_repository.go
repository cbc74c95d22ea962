package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	intdb "smartcab/internal/db"
	"smartcab/internal/domain"
	"smartcab/internal/domain/models"
	"smartcab/internal/utils"
)

const searchLimit = 50

// BookingRepository owns all SQL against the bookings table. The handle is
// injected; there is no global fallback. Every call runs under the configured
// per-operation timeout.
type BookingRepository struct {
	DB      *sql.DB
	Timeout time.Duration
}

func (r BookingRepository) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

const bookingColumns = `id, booking_id, COALESCE(user_id, 0), customer_name, customer_phone,
		pickup_location, dropoff_location, ride_date, ride_time, car_type,
		COALESCE(additional_notes, ''), status, created_at`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	var createdAt time.Time
	err := row.Scan(
		&b.ID,
		&b.BookingID,
		&b.UserID,
		&b.CustomerName,
		&b.CustomerPhone,
		&b.PickupLocation,
		&b.DropoffLocation,
		&b.RideDate,
		&b.RideTime,
		&b.CarType,
		&b.AdditionalNotes,
		&b.Status,
		&createdAt,
	)
	if err != nil {
		return models.Booking{}, err
	}
	b.CreatedAt = utils.FormatDateTime(createdAt)
	return b, nil
}

// ExistsBookingID is the pre-insert collision check. Purely an optimization;
// the unique index on booking_id is what actually guarantees uniqueness.
func (r BookingRepository) ExistsBookingID(ctx context.Context, bookingID string) (bool, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	var id int64
	err := r.DB.QueryRowContext(ctx, `SELECT id FROM bookings WHERE booking_id = ?`, bookingID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, domain.StorageError{Op: "booking exists check", Err: err}
	}
	return true, nil
}

// Insert stores a new booking with status pending. A duplicate booking_id is
// surfaced as ConflictError so the caller can retry with a fresh candidate.
func (r BookingRepository) Insert(ctx context.Context, bookingID string, nb models.NewBooking) (int64, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO bookings
			(booking_id, customer_name, customer_phone, pickup_location, dropoff_location,
			 ride_date, ride_time, car_type, additional_notes, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 'pending', NOW())`,
		bookingID,
		nb.CustomerName,
		nb.CustomerPhone,
		nb.PickupLocation,
		nb.DropoffLocation,
		nb.RideDate,
		nb.RideTime,
		nb.CarType,
		intdb.NullIfEmpty(nb.AdditionalNotes),
	)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "booking_id", Err: err}
		}
		return 0, domain.StorageError{Op: "booking insert", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, domain.StorageError{Op: "booking insert id", Err: err}
	}
	return id, nil
}

// GetByBookingID fetches a single booking by its external id.
func (r BookingRepository) GetByBookingID(ctx context.Context, bookingID string) (models.Booking, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	row := r.DB.QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE booking_id = ? LIMIT 1`, bookingID)
	b, err := scanBooking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return models.Booking{}, domain.StorageError{Op: "booking get", Err: err}
	}
	return b, nil
}

// List returns bookings matching the filter, newest first, plus the total
// count over the same filter ignoring pagination.
func (r BookingRepository) List(ctx context.Context, f models.BookingFilter) ([]models.Booking, int, error) {
	query, countQuery, args, countArgs := buildBookingListQuery(f)

	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, domain.StorageError{Op: "booking list", Err: err}
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, domain.StorageError{Op: "booking list scan", Err: err}
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.StorageError{Op: "booking list rows", Err: err}
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, domain.StorageError{Op: "booking count", Err: err}
	}

	return bookings, total, nil
}

// buildBookingListQuery assembles the filtered list query and its matching
// count query. Absent criteria are omitted entirely; every present value is
// bound positionally, never interpolated.
func buildBookingListQuery(f models.BookingFilter) (query, countQuery string, args, countArgs []any) {
	where := []string{}
	whereArgs := []any{}

	if f.BookingID != "" {
		where = append(where, "booking_id = ?")
		whereArgs = append(whereArgs, f.BookingID)
	}
	if f.UserID > 0 {
		where = append(where, "user_id = ?")
		whereArgs = append(whereArgs, f.UserID)
	}
	if f.Status != "" {
		where = append(where, "status = ?")
		whereArgs = append(whereArgs, f.Status)
	}
	if f.CustomerPhone != "" {
		where = append(where, "customer_phone = ?")
		whereArgs = append(whereArgs, f.CustomerPhone)
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	query = `SELECT ` + bookingColumns + ` FROM bookings` + cond +
		` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	countQuery = `SELECT COUNT(*) FROM bookings` + cond

	args = append(args, whereArgs...)
	args = append(args, limit, offset)
	countArgs = append(countArgs, whereArgs...)
	return query, countQuery, args, countArgs
}

// UpdateFields applies a PATCH-style update over the updatable columns.
func (r BookingRepository) UpdateFields(ctx context.Context, bookingID string, upd models.BookingUpdate) error {
	sets := []string{}
	args := []any{}

	add := func(col string, val *string) {
		if val != nil {
			sets = append(sets, col+" = ?")
			args = append(args, *val)
		}
	}
	add("status", upd.Status)
	add("pickup_location", upd.PickupLocation)
	add("dropoff_location", upd.DropoffLocation)
	add("ride_date", upd.RideDate)
	add("ride_time", upd.RideTime)
	add("car_type", upd.CarType)
	add("additional_notes", upd.AdditionalNotes)

	if len(sets) == 0 {
		return domain.ValidationError{Msg: "No fields to update"}
	}
	args = append(args, bookingID)

	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	_, err := r.DB.ExecContext(ctx,
		`UPDATE bookings SET `+strings.Join(sets, ", ")+` WHERE booking_id = ?`, args...)
	if err != nil {
		return domain.StorageError{Op: "booking update", Err: err}
	}
	return nil
}

// Delete removes a booking, reporting NotFound when nothing matched.
func (r BookingRepository) Delete(ctx context.Context, bookingID string) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	res, err := r.DB.ExecContext(ctx, `DELETE FROM bookings WHERE booking_id = ?`, bookingID)
	if err != nil {
		return domain.StorageError{Op: "booking delete", Err: err}
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.StorageError{Op: "booking delete result", Err: err}
	}
	if affected == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// SearchByRoute finds bookings whose pickup matches or contains the pickup
// term AND whose dropoff matches or contains the dropoff term, newest first,
// capped at 50 rows.
func (r BookingRepository) SearchByRoute(ctx context.Context, pickup, dropoff string) ([]models.Booking, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+bookingColumns+` FROM bookings
		WHERE (pickup_location = ? OR pickup_location LIKE ?)
		  AND (dropoff_location = ? OR dropoff_location LIKE ?)
		ORDER BY created_at DESC LIMIT ?`,
		pickup, "%"+pickup+"%", dropoff, "%"+dropoff+"%", searchLimit)
	if err != nil {
		return nil, domain.StorageError{Op: "booking search", Err: err}
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, domain.StorageError{Op: "booking search scan", Err: err}
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageError{Op: "booking search rows", Err: err}
	}
	return bookings, nil
}
