package handlers

import (
	"net/http"

	"smartcab/internal/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/rides/detail?booking_id=|ride_history_id=
func (a *API) GetRideDetail(c *gin.Context) {
	bookingID := c.Query("booking_id")
	rideHistoryID := int64(utils.ParseIntDefault(c.Query("ride_history_id"), 0))

	detail, err := a.rideService(c).GetDetail(c.Request.Context(), bookingID, rideHistoryID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	Respond(c, http.StatusOK, "Ride detail retrieved successfully", detail)
}

// GET /api/rides/history?customer_phone=
func (a *API) GetRideHistory(c *gin.Context) {
	phone := c.Query("customer_phone")
	limit := utils.ParseIntDefault(c.Query("limit"), 50)
	offset := utils.ParseIntDefault(c.Query("offset"), 0)

	rides, err := a.rideService(c).GetHistory(c.Request.Context(), phone, limit, offset)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	Respond(c, http.StatusOK, "Ride history retrieved successfully", gin.H{
		"rides":  rides,
		"total":  len(rides),
		"limit":  limit,
		"offset": offset,
	})
}
