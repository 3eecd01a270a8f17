package booking

import (
	"context"
	"errors"
	"net/http"

	"studiobook/internal/api"
	"studiobook/internal/class"
	"studiobook/internal/client"
	"studiobook/internal/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Book a class
// @Description  Reserves one slot in a class for the given client, creating the client if needed
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        request body booking.CreateBookingRequest true "Booking payload"
// @Success      201 {object} api.Response
// @Failure      400 {object} api.Response
// @Failure      404 {object} api.Response
// @Failure      409 {object} api.Response
// @Failure      500 {object} api.Response
// @Router       /bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if fieldErrs := api.BindingErrors(err); fieldErrs != nil {
			c.JSON(http.StatusBadRequest, api.ValidationFail("Invalid request payload", fieldErrs))
			return
		}
		c.JSON(http.StatusBadRequest, api.Fail("Invalid request payload"))
		return
	}

	ctx := c.Request.Context()
	b, err := h.service.CreateBooking(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidName):
			c.JSON(http.StatusBadRequest, api.Fail("First and last name must contain letters only"))
		case errors.Is(err, ErrPastSchedule):
			c.JSON(http.StatusBadRequest, api.Fail("This class has already started"))
		case errors.Is(err, class.ErrClassNotFound):
			c.JSON(http.StatusNotFound, api.Fail("Fitness class not found"))
		case errors.Is(err, ErrClassFull):
			c.JSON(http.StatusConflict, api.Fail("No available slots for this class"))
		case errors.Is(err, ErrDuplicateBooking):
			c.JSON(http.StatusConflict, api.Fail("You have already booked this class"))
		case errors.Is(err, context.DeadlineExceeded):
			c.JSON(http.StatusServiceUnavailable, api.Fail("Storage timeout, try again later"))
		default:
			logger.WithError(err).Error("create booking failed")
			c.JSON(http.StatusInternalServerError, api.Fail("Failed to create booking"))
		}
		return
	}

	c.JSON(http.StatusCreated, api.OK("Booking created successfully.", b))
}

// @Summary      List bookings for a client
// @Description  Returns all bookings made with the given email address
// @Tags         bookings
// @Produce      json
// @Param        email_address query string true "Client email"
// @Success      200 {object} api.Response
// @Failure      400 {object} api.Response
// @Failure      404 {object} api.Response
// @Failure      500 {object} api.Response
// @Router       /bookings [get]
func (h *Handler) ListBookings(c *gin.Context) {
	email := c.Query("email_address")
	if email == "" {
		c.JSON(http.StatusBadRequest, api.Fail("Email is absent in the params!"))
		return
	}

	ctx := c.Request.Context()
	bookings, err := h.service.ListBookingsForEmail(ctx, email)
	if err != nil {
		switch {
		case errors.Is(err, client.ErrClientNotFound):
			c.JSON(http.StatusNotFound, api.Fail("No client found with this email address"))
		case errors.Is(err, context.DeadlineExceeded):
			c.JSON(http.StatusServiceUnavailable, api.Fail("Storage timeout, try again later"))
		default:
			logger.WithError(err).Error("list bookings failed")
			c.JSON(http.StatusInternalServerError, api.Fail("Failed to fetch bookings"))
		}
		return
	}

	c.JSON(http.StatusOK, api.OK("Success", bookings))
}
