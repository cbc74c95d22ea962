package models

// RideDetail joins a booking with its ride_history row when one exists.
// ride_history is written by the dispatch side; this service only reads it.
type RideDetail struct {
	RideHistoryID   *int64  `json:"ride_history_id"`
	BookingID       string  `json:"booking_id"`
	CustomerName    string  `json:"customer_name"`
	CustomerPhone   string  `json:"customer_phone"`
	PickupLocation  string  `json:"pickup_location"`
	DropoffLocation string  `json:"dropoff_location"`
	RideDate        string  `json:"ride_date"`
	RideTime        string  `json:"ride_time"`
	CarType         string  `json:"car_type"`
	AdditionalNotes string  `json:"additional_notes"`
	BookingStatus   string  `json:"-"`
	RideStatus      string  `json:"ride_status"`
	Distance        *string `json:"distance"`
	Duration        *string `json:"duration"`
	Fare            *string `json:"fare"`
	DriverName      *string `json:"driver_name"`
	DriverPhone     *string `json:"driver_phone"`
	VehicleNumber   *string `json:"vehicle_number"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	CreatedAt       string  `json:"created_at"`
}

// RideHistoryItem is one row of the customer-facing ride history listing.
type RideHistoryItem struct {
	BookingID       string  `json:"booking_id"`
	CustomerName    string  `json:"customer_name"`
	CustomerPhone   string  `json:"customer_phone"`
	PickupLocation  string  `json:"pickup_location"`
	DropoffLocation string  `json:"dropoff_location"`
	RideDate        string  `json:"ride_date"`
	RideTime        string  `json:"ride_time"`
	CarType         string  `json:"car_type"`
	AdditionalNotes string  `json:"additional_notes"`
	Status          string  `json:"status"`
	RideStatus      string  `json:"ride_status"`
	CreatedAt       string  `json:"created_at"`
	DriverName      *string `json:"driver_name"`
	DriverPhone     *string `json:"driver_phone"`
	VehicleNumber   *string `json:"vehicle_number"`
	Distance        *string `json:"distance"`
	Fare            *string `json:"fare"`

	// Trip timestamps feed status derivation but stay out of the listing
	// payload, which mirrors the booking row plus driver info.
	StartTime *string `json:"-"`
	EndTime   *string `json:"-"`
}
