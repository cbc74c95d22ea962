package services

import (
	"context"
	"time"

	"smartcab/internal/domain"
	"smartcab/internal/domain/models"
	"smartcab/internal/repositories"
	"smartcab/internal/utils"
)

// RideService serves the derived ride views. Status annotation happens here,
// and only here, so the detail and history endpoints can never drift apart.
type RideService struct {
	Repo      repositories.RideRepository
	RequestID string

	// Now overrides the clock in tests.
	Now func() time.Time
}

func (s RideService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// GetDetail returns a single ride with its derived display status. Either
// bookingID or rideHistoryID must be provided.
func (s RideService) GetDetail(ctx context.Context, bookingID string, rideHistoryID int64) (models.RideDetail, error) {
	bookingID = utils.SanitizeText(bookingID)
	if bookingID == "" && rideHistoryID <= 0 {
		return models.RideDetail{}, domain.ValidationError{Msg: "booking_id or ride_history_id is required"}
	}

	d, err := s.Repo.GetDetail(ctx, bookingID, rideHistoryID)
	if err != nil {
		return models.RideDetail{}, err
	}

	d.RideStatus = domain.DeriveDisplayStatus(
		d.BookingStatus, d.RideDate, d.RideTime, d.StartTime, d.EndTime, s.now())
	return d, nil
}

// GetHistory lists a customer's rides, each annotated with the derived
// display status.
func (s RideService) GetHistory(ctx context.Context, customerPhone string, limit, offset int) ([]models.RideHistoryItem, error) {
	customerPhone = utils.SanitizeText(customerPhone)
	if customerPhone == "" {
		return nil, domain.ValidationError{Msg: "customer_phone is required"}
	}
	if limit < 1 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	items, err := s.Repo.ListHistoryByPhone(ctx, customerPhone, limit, offset)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range items {
		items[i].RideStatus = domain.DeriveDisplayStatus(
			items[i].Status, items[i].RideDate, items[i].RideTime,
			items[i].StartTime, items[i].EndTime, now)
	}
	return items, nil
}
