package models

// Booking is the primary entity: one customer ride request.
type Booking struct {
	ID              int64  `json:"id"`
	BookingID       string `json:"booking_id"`
	UserID          int64  `json:"user_id,omitempty"`
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	PickupLocation  string `json:"pickup_location"`
	DropoffLocation string `json:"dropoff_location"`
	RideDate        string `json:"ride_date"`
	RideTime        string `json:"ride_time"`
	CarType         string `json:"car_type"`
	AdditionalNotes string `json:"additional_notes"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
}

// NewBooking carries the validated creation input before persistence.
type NewBooking struct {
	CustomerName    string
	CustomerPhone   string
	PickupLocation  string
	DropoffLocation string
	RideDate        string
	RideTime        string
	CarType         string
	AdditionalNotes string
}

// BookingUpdate supports PATCH-style updates via key presence. Only fields
// listed here are updatable; everything else in a payload is ignored.
type BookingUpdate struct {
	Status          *string `json:"status"`
	PickupLocation  *string `json:"pickup_location"`
	DropoffLocation *string `json:"dropoff_location"`
	RideDate        *string `json:"ride_date"`
	RideTime        *string `json:"ride_time"`
	CarType         *string `json:"car_type"`
	AdditionalNotes *string `json:"additional_notes"`
}

// Empty reports whether no updatable field was provided.
func (u BookingUpdate) Empty() bool {
	return u.Status == nil &&
		u.PickupLocation == nil &&
		u.DropoffLocation == nil &&
		u.RideDate == nil &&
		u.RideTime == nil &&
		u.CarType == nil &&
		u.AdditionalNotes == nil
}

// BookingFilter is a conjunction of optional exact-match criteria. Zero
// values mean "not filtered".
type BookingFilter struct {
	BookingID     string
	UserID        int64
	Status        string
	CustomerPhone string
	Limit         int
	Offset        int
}
