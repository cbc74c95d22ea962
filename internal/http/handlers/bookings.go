package handlers

import (
	"net/http"

	"smartcab/internal/domain"
	"smartcab/internal/domain/models"
	"smartcab/internal/utils"

	"github.com/gin-gonic/gin"
)

// createBookingRequest mirrors the booking form field names.
type createBookingRequest struct {
	PickupLocation  string `json:"pickupLocation" form:"pickupLocation"`
	DropoffLocation string `json:"dropoffLocation" form:"dropoffLocation"`
	RideDate        string `json:"rideDate" form:"rideDate"`
	RideTime        string `json:"rideTime" form:"rideTime"`
	CarType         string `json:"carType" form:"carType"`
	CustomerName    string `json:"customerName" form:"customerName"`
	CustomerPhone   string `json:"customerPhone" form:"customerPhone"`
	AdditionalNotes string `json:"additionalNotes" form:"additionalNotes"`
}

// POST /api/bookings
func (a *API) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindOrError(c, &req) {
		return
	}

	booking, err := a.bookingService(c).Create(c.Request.Context(), models.NewBooking{
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
		RideDate:        req.RideDate,
		RideTime:        req.RideTime,
		CarType:         req.CarType,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		AdditionalNotes: req.AdditionalNotes,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	Respond(c, http.StatusOK, "Booking saved successfully!", booking)
}

// GET /api/bookings
func (a *API) GetBookings(c *gin.Context) {
	filter := models.BookingFilter{
		BookingID:     c.Query("booking_id"),
		UserID:        int64(utils.ParseIntDefault(c.Query("user_id"), 0)),
		Status:        c.Query("status"),
		CustomerPhone: c.Query("customer_phone"),
		Limit:         utils.ParseIntDefault(c.Query("limit"), 100),
		Offset:        utils.ParseIntDefault(c.Query("offset"), 0),
	}

	bookings, total, err := a.bookingService(c).List(c.Request.Context(), filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	Respond(c, http.StatusOK, "Bookings retrieved successfully", gin.H{
		"bookings": bookings,
		"total":    total,
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	})
}

// updateBookingRequest carries the booking id plus the static allow-list of
// updatable fields. Anything else in the payload is dropped by the decoder.
type updateBookingRequest struct {
	BookingID string `json:"booking_id"`
	models.BookingUpdate
}

// PUT|POST /api/bookings/:booking_id (id also accepted in the body)
func (a *API) UpdateBooking(c *gin.Context) {
	var req updateBookingRequest
	if !BindOrError(c, &req) {
		return
	}

	bookingID := utils.FirstNonEmpty(c.Param("booking_id"), req.BookingID)
	if bookingID == "" {
		RespondError(c, http.StatusBadRequest, "Booking ID is required")
		return
	}

	booking, err := a.bookingService(c).Update(c.Request.Context(), bookingID, req.BookingUpdate)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	Respond(c, http.StatusOK, "Booking updated successfully", booking)
}

type deleteBookingRequest struct {
	BookingID string `json:"booking_id" form:"booking_id"`
}

// DELETE /api/bookings (id in body)
func (a *API) DeleteBooking(c *gin.Context) {
	var req deleteBookingRequest
	if !BindOrError(c, &req) {
		return
	}
	if req.BookingID == "" {
		RespondError(c, http.StatusBadRequest, "Booking ID is required")
		return
	}

	bookingID, err := a.bookingService(c).Delete(c.Request.Context(), req.BookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	Respond(c, http.StatusOK, "Booking deleted successfully", gin.H{"booking_id": bookingID})
}

type searchBookingRequest struct {
	Pickup  string `json:"pickup" form:"pickup"`
	Dropoff string `json:"dropoff" form:"dropoff"`
}

// GET|POST /api/bookings/search
func (a *API) SearchBookings(c *gin.Context) {
	var req searchBookingRequest
	if c.Request.Method == http.MethodGet {
		req.Pickup = c.Query("pickup")
		req.Dropoff = c.Query("dropoff")
	} else if !BindOrError(c, &req) {
		return
	}

	bookings, err := a.bookingService(c).Search(c.Request.Context(), req.Pickup, req.Dropoff)
	if err != nil {
		if domain.IsNotFound(err) {
			// distinct from validation failure: the query was fine, nothing
			// matched
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "No bookings found matching the search criteria",
				"data":    gin.H{"bookings": []models.Booking{}},
			})
			return
		}
		RespondDomainError(c, err)
		return
	}

	Respond(c, http.StatusOK, "Bookings found", gin.H{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// GET /api/bookings/:booking_id/confirmation
func (a *API) GetBookingConfirmation(c *gin.Context) {
	bookingID := c.Param("booking_id")
	if bookingID == "" {
		RespondError(c, http.StatusBadRequest, "Booking ID is required")
		return
	}

	pdf, filename, err := a.docsService(c).GenerateConfirmation(c.Request.Context(), bookingID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
