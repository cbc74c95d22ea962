package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"smartcab/internal/domain/models"
	"smartcab/internal/repositories"
	"smartcab/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the booking confirmation PDF customers get after
// booking a cab.
type DocsService struct {
	BookingRepo repositories.BookingRepository
	RequestID   string

	// Loader overrides booking lookup in tests.
	Loader func(context.Context, string) (models.Booking, error)
}

// GenerateConfirmation renders a one-page confirmation for the booking.
func (s DocsService) GenerateConfirmation(ctx context.Context, bookingID string) ([]byte, string, error) {
	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_confirmation", "booking_id="+bookingID)
	return buildConfirmationPDF(booking)
}

func (s DocsService) loadBooking(ctx context.Context, bookingID string) (models.Booking, error) {
	if s.Loader != nil {
		return s.Loader(ctx, bookingID)
	}
	return s.BookingRepo.GetByBookingID(ctx, bookingID)
}

func buildConfirmationPDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Confirmation", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING CONFIRMATION")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking ID    : %s", safe(b.BookingID, "-")),
		fmt.Sprintf("Customer      : %s", safe(b.CustomerName, "-")),
		fmt.Sprintf("Phone         : %s", safe(b.CustomerPhone, "-")),
		fmt.Sprintf("Pickup        : %s", safe(b.PickupLocation, "-")),
		fmt.Sprintf("Dropoff       : %s", safe(b.DropoffLocation, "-")),
		fmt.Sprintf("Date / Time   : %s %s", safe(b.RideDate, "-"), safe(b.RideTime, "-")),
		fmt.Sprintf("Car Type      : %s", safe(b.CarType, "-")),
		fmt.Sprintf("Status        : %s", safe(b.Status, "-")),
		fmt.Sprintf("Booked At     : %s", safe(b.CreatedAt, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	if strings.TrimSpace(b.AdditionalNotes) != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Notes: "+b.AdditionalNotes, "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("CONFIRMATION_%s.pdf", safeFilenamePart(b.BookingID))
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func safeFilenamePart(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
