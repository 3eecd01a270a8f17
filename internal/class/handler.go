package class

import (
	"context"
	"errors"
	"net/http"

	"studiobook/internal/api"
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

// @Summary      Create a fitness class
// @Description  Schedules a class for a future time with a fixed number of slots
// @Tags         classes
// @Accept       json
// @Produce      json
// @Param        request body class.CreateClassRequest true "Class payload"
// @Success      201 {object} api.Response
// @Failure      400 {object} api.Response
// @Failure      409 {object} api.Response
// @Failure      500 {object} api.Response
// @Router       /classes [post]
func (h *Handler) CreateClass(c *gin.Context) {
	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if fieldErrs := api.BindingErrors(err); fieldErrs != nil {
			c.JSON(http.StatusBadRequest, api.ValidationFail("Invalid request payload", fieldErrs))
			return
		}
		c.JSON(http.StatusBadRequest, api.Fail("Invalid request payload"))
		return
	}

	ctx := c.Request.Context()
	fc, err := h.service.CreateClass(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidClassName):
			c.JSON(http.StatusBadRequest, api.Fail("Class name must be one of YOGA, ZUMBA, HIIT"))
		case errors.Is(err, ErrInvalidSlotCount):
			c.JSON(http.StatusBadRequest, api.Fail("Available slots must be between 1 and 100"))
		case errors.Is(err, ErrInvalidSchedule):
			c.JSON(http.StatusBadRequest, api.Fail("Scheduled time must be a valid RFC3339 timestamp"))
		case errors.Is(err, ErrPastSchedule):
			c.JSON(http.StatusBadRequest, api.Fail("Class cannot be scheduled in the past"))
		case errors.Is(err, ErrUnknownInstructor):
			c.JSON(http.StatusBadRequest, api.Fail("Instructor does not exist"))
		case errors.Is(err, ErrDuplicateClass):
			c.JSON(http.StatusConflict, api.Fail("A class of this type is already scheduled at this time"))
		case errors.Is(err, context.DeadlineExceeded):
			c.JSON(http.StatusServiceUnavailable, api.Fail("Storage timeout, try again later"))
		default:
			logger.WithError(err).Error("create class failed")
			c.JSON(http.StatusInternalServerError, api.Fail("Failed to create class"))
		}
		return
	}

	c.JSON(http.StatusCreated, api.OK("Class created successfully", fc))
}

// @Summary      List upcoming classes
// @Description  Returns all classes scheduled from now on, soonest first
// @Tags         classes
// @Produce      json
// @Success      200 {object} api.Response
// @Failure      500 {object} api.Response
// @Router       /classes [get]
func (h *Handler) ListClasses(c *gin.Context) {
	ctx := c.Request.Context()
	classes, err := h.service.ListUpcomingClasses(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.JSON(http.StatusServiceUnavailable, api.Fail("Storage timeout, try again later"))
			return
		}
		logger.WithError(err).Error("list classes failed")
		c.JSON(http.StatusInternalServerError, api.Fail("Failed to fetch classes"))
		return
	}

	c.JSON(http.StatusOK, api.OK("Success", classes))
}
