package domain

import (
	"strings"
	"time"
)

// Display statuses shown to customers. Stored booking status uses the same
// strings minus "upcoming", which only exists as a derived value.
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusUpcoming  = "upcoming"
)

const (
	layoutDateTimeSec = "2006-01-02 15:04:05"
	layoutDateTimeMin = "2006-01-02 15:04"
)

// DeriveDisplayStatus computes the customer-facing ride status from the
// stored booking status plus schedule and trip timestamps. Both the ride
// detail and the ride history listing go through here; the rules are:
//
//  1. cancelled is terminal and wins over everything,
//  2. a recorded end time means the ride completed,
//  3. a recorded start time without an end means the ride is active,
//  4. otherwise a future schedule is upcoming and a past one completed,
//  5. with nothing to go on, fall back to the stored status (pending when
//     storage has none).
func DeriveDisplayStatus(stored, rideDate, rideTime string, startTime, endTime *string, now time.Time) string {
	status := strings.ToLower(strings.TrimSpace(stored))
	if status == "" {
		status = StatusPending
	}
	if status == StatusCancelled {
		return StatusCancelled
	}

	if present(endTime) {
		return StatusCompleted
	}
	if present(startTime) {
		return StatusActive
	}

	if scheduled, ok := scheduledAt(rideDate, rideTime); ok {
		if scheduled.After(now) {
			return StatusUpcoming
		}
		return StatusCompleted
	}

	return status
}

func present(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// scheduledAt combines ride date and time into a moment, defaulting the time
// to midnight when absent.
func scheduledAt(rideDate, rideTime string) (time.Time, bool) {
	date := strings.TrimSpace(rideDate)
	if date == "" {
		return time.Time{}, false
	}
	clock := strings.TrimSpace(rideTime)
	if clock == "" {
		clock = "00:00:00"
	}
	raw := date + " " + clock
	for _, layout := range []string{layoutDateTimeSec, layoutDateTimeMin} {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
