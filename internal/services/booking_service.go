package services

import (
	"context"
	"strings"

	"smartcab/internal/domain"
	"smartcab/internal/domain/models"
	"smartcab/internal/repositories"
	"smartcab/internal/utils"

	"github.com/google/uuid"
)

// maxIDAttempts caps booking id generation retries. Collisions are
// vanishingly rare; hitting the cap means something is broken and looping
// forever would only hide it.
const maxIDAttempts = 5

// BookingService validates and normalizes booking input and orchestrates the
// repository. Uniqueness of booking ids is enforced by the storage unique
// index; the pre-check here only saves a round trip in the common case.
type BookingService struct {
	Repo      repositories.BookingRepository
	RequestID string

	// NewID overrides candidate generation in tests.
	NewID func() string
}

func (s BookingService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "BK" + raw[:6]
}

// Create validates the seven required fields, sanitizes everything, generates
// a unique booking id and stores the row with status pending. The returned
// booking is re-read from storage so it reflects storage-side defaults.
func (s BookingService) Create(ctx context.Context, nb models.NewBooking) (models.Booking, error) {
	nb.PickupLocation = utils.SanitizeText(nb.PickupLocation)
	nb.DropoffLocation = utils.SanitizeText(nb.DropoffLocation)
	nb.RideDate = utils.SanitizeText(nb.RideDate)
	nb.RideTime = utils.SanitizeText(nb.RideTime)
	nb.CarType = utils.SanitizeText(nb.CarType)
	nb.CustomerName = utils.SanitizeText(nb.CustomerName)
	nb.CustomerPhone = utils.SanitizeText(nb.CustomerPhone)
	nb.AdditionalNotes = utils.SanitizeText(nb.AdditionalNotes)

	missing := []string{}
	for _, f := range []struct{ name, value string }{
		{"pickupLocation", nb.PickupLocation},
		{"dropoffLocation", nb.DropoffLocation},
		{"rideDate", nb.RideDate},
		{"rideTime", nb.RideTime},
		{"carType", nb.CarType},
		{"customerName", nb.CustomerName},
		{"customerPhone", nb.CustomerPhone},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return models.Booking{}, domain.ValidationError{
			Msg: "Missing required fields: " + strings.Join(missing, ", "),
		}
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		candidate := s.newID()

		exists, err := s.Repo.ExistsBookingID(ctx, candidate)
		if err != nil {
			return models.Booking{}, err
		}
		if exists {
			continue
		}

		_, err = s.Repo.Insert(ctx, candidate, nb)
		if domain.IsConflict(err) {
			// lost the check-then-insert race, try a fresh candidate
			continue
		}
		if err != nil {
			return models.Booking{}, err
		}

		utils.LogEvent(s.RequestID, "booking", "create", "booking_id="+candidate)
		return s.Repo.GetByBookingID(ctx, candidate)
	}

	return models.Booking{}, domain.GenerationExhaustedError{Attempts: maxIDAttempts}
}

// List returns bookings matching the filter plus the unpaginated total.
func (s BookingService) List(ctx context.Context, f models.BookingFilter) ([]models.Booking, int, error) {
	f.BookingID = utils.SanitizeText(f.BookingID)
	f.Status = utils.SanitizeText(f.Status)
	f.CustomerPhone = utils.SanitizeText(f.CustomerPhone)
	return s.Repo.List(ctx, f)
}

// Update applies the allow-listed fields and returns the row re-read from
// storage. Unknown payload fields never reach this point; the update struct
// is the static allow-list.
func (s BookingService) Update(ctx context.Context, bookingID string, upd models.BookingUpdate) (models.Booking, error) {
	bookingID = utils.SanitizeText(bookingID)
	if bookingID == "" {
		return models.Booking{}, domain.ValidationError{Msg: "Booking ID is required"}
	}
	if upd.Empty() {
		return models.Booking{}, domain.ValidationError{Msg: "No fields to update"}
	}

	sanitize := func(p *string) {
		if p != nil {
			*p = utils.SanitizeText(*p)
		}
	}
	sanitize(upd.Status)
	sanitize(upd.PickupLocation)
	sanitize(upd.DropoffLocation)
	sanitize(upd.RideDate)
	sanitize(upd.RideTime)
	sanitize(upd.CarType)
	sanitize(upd.AdditionalNotes)

	if _, err := s.Repo.GetByBookingID(ctx, bookingID); err != nil {
		return models.Booking{}, err
	}
	if err := s.Repo.UpdateFields(ctx, bookingID, upd); err != nil {
		return models.Booking{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "update", "booking_id="+bookingID)
	return s.Repo.GetByBookingID(ctx, bookingID)
}

// Delete removes a booking and echoes its id for confirmation.
func (s BookingService) Delete(ctx context.Context, bookingID string) (string, error) {
	bookingID = utils.SanitizeText(bookingID)
	if bookingID == "" {
		return "", domain.ValidationError{Msg: "Booking ID is required"}
	}
	if err := s.Repo.Delete(ctx, bookingID); err != nil {
		return "", err
	}
	utils.LogEvent(s.RequestID, "booking", "delete", "booking_id="+bookingID)
	return bookingID, nil
}

// Search finds bookings by pickup/dropoff substring match. An empty result is
// reported as NotFound so the handler can distinguish it from bad input.
func (s BookingService) Search(ctx context.Context, pickup, dropoff string) ([]models.Booking, error) {
	pickup = utils.SanitizeText(pickup)
	dropoff = utils.SanitizeText(dropoff)
	if pickup == "" || dropoff == "" {
		return nil, domain.ValidationError{Msg: "Pickup and dropoff locations are required"}
	}

	bookings, err := s.Repo.SearchByRoute(ctx, pickup, dropoff)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, domain.NotFoundError{Resource: "booking"}
	}
	return bookings, nil
}
