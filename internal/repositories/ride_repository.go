package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"smartcab/internal/domain"
	"smartcab/internal/domain/models"
	"smartcab/internal/utils"
)

// RideRepository reads the bookings/ride_history join. ride_history rows are
// written by the operational dispatch side; this repository never mutates
// them.
type RideRepository struct {
	DB      *sql.DB
	Timeout time.Duration
}

func (r RideRepository) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

// GetDetail loads one booking joined to its ride_history row, selected by
// booking id or ride_history id. At least one selector must be set.
func (r RideRepository) GetDetail(ctx context.Context, bookingID string, rideHistoryID int64) (models.RideDetail, error) {
	query := `
		SELECT
			rh.id,
			b.booking_id, b.customer_name, b.customer_phone,
			b.pickup_location, b.dropoff_location, b.ride_date, b.ride_time,
			b.car_type, COALESCE(b.additional_notes, ''), b.status, b.created_at,
			rh.driver_name, rh.driver_phone, rh.vehicle_number,
			rh.start_time, rh.end_time, rh.distance, rh.duration, rh.fare
		FROM bookings b
		LEFT JOIN ride_history rh ON rh.booking_id = b.booking_id
		WHERE 1 = 1`
	args := []any{}

	if bookingID != "" {
		query += " AND b.booking_id = ?"
		args = append(args, bookingID)
	}
	if rideHistoryID > 0 {
		query += " AND rh.id = ?"
		args = append(args, rideHistoryID)
	}
	query += " LIMIT 1"

	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	var d models.RideDetail
	var rideHistID sql.NullInt64
	var createdAt time.Time
	var driverName, driverPhone, vehicleNumber sql.NullString
	var startTime, endTime, distance, duration, fare sql.NullString

	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&rideHistID,
		&d.BookingID,
		&d.CustomerName,
		&d.CustomerPhone,
		&d.PickupLocation,
		&d.DropoffLocation,
		&d.RideDate,
		&d.RideTime,
		&d.CarType,
		&d.AdditionalNotes,
		&d.BookingStatus,
		&createdAt,
		&driverName,
		&driverPhone,
		&vehicleNumber,
		&startTime,
		&endTime,
		&distance,
		&duration,
		&fare,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RideDetail{}, domain.NotFoundError{Resource: "ride"}
	}
	if err != nil {
		return models.RideDetail{}, domain.StorageError{Op: "ride detail", Err: err}
	}

	if rideHistID.Valid {
		d.RideHistoryID = &rideHistID.Int64
	}
	d.CreatedAt = utils.FormatDateTime(createdAt)
	d.DriverName = nullablePtr(driverName)
	d.DriverPhone = nullablePtr(driverPhone)
	d.VehicleNumber = nullablePtr(vehicleNumber)
	d.StartTime = nullablePtr(startTime)
	d.EndTime = nullablePtr(endTime)
	d.Distance = nullablePtr(distance)
	d.Duration = nullablePtr(duration)
	d.Fare = nullablePtr(fare)
	return d, nil
}

// ListHistoryByPhone returns a customer's bookings joined with ride_history,
// newest first.
func (r RideRepository) ListHistoryByPhone(ctx context.Context, phone string, limit, offset int) ([]models.RideHistoryItem, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `
		SELECT
			b.booking_id, b.customer_name, b.customer_phone,
			b.pickup_location, b.dropoff_location, b.ride_date, b.ride_time,
			b.car_type, COALESCE(b.additional_notes, ''), b.status, b.created_at,
			rh.driver_name, rh.driver_phone, rh.vehicle_number,
			rh.start_time, rh.end_time, rh.distance, rh.fare
		FROM bookings b
		LEFT JOIN ride_history rh ON rh.booking_id = b.booking_id
		WHERE b.customer_phone = ?
		ORDER BY b.created_at DESC
		LIMIT ? OFFSET ?`,
		phone, limit, offset)
	if err != nil {
		return nil, domain.StorageError{Op: "ride history", Err: err}
	}
	defer rows.Close()

	items := []models.RideHistoryItem{}
	for rows.Next() {
		var it models.RideHistoryItem
		var createdAt time.Time
		var driverName, driverPhone, vehicleNumber sql.NullString
		var startTime, endTime, distance, fare sql.NullString

		if err := rows.Scan(
			&it.BookingID,
			&it.CustomerName,
			&it.CustomerPhone,
			&it.PickupLocation,
			&it.DropoffLocation,
			&it.RideDate,
			&it.RideTime,
			&it.CarType,
			&it.AdditionalNotes,
			&it.Status,
			&createdAt,
			&driverName,
			&driverPhone,
			&vehicleNumber,
			&startTime,
			&endTime,
			&distance,
			&fare,
		); err != nil {
			return nil, domain.StorageError{Op: "ride history scan", Err: err}
		}

		it.CreatedAt = utils.FormatDateTime(createdAt)
		it.DriverName = nullablePtr(driverName)
		it.DriverPhone = nullablePtr(driverPhone)
		it.VehicleNumber = nullablePtr(vehicleNumber)
		it.Distance = nullablePtr(distance)
		it.Fare = nullablePtr(fare)
		it.StartTime = nullablePtr(startTime)
		it.EndTime = nullablePtr(endTime)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageError{Op: "ride history rows", Err: err}
	}
	return items, nil
}

func nullablePtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
