package instructor

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

// @Summary      Create an instructor
// @Description  Creates an instructor, or returns the existing one with the same name
// @Tags         instructors
// @Accept       json
// @Produce      json
// @Param        request body instructor.CreateInstructorRequest true "Instructor payload"
// @Success      201 {object} api.Response
// @Failure      400 {object} api.Response
// @Failure      500 {object} api.Response
// @Router       /instructors [post]
func (h *Handler) CreateInstructor(c *gin.Context) {
	var req CreateInstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if fieldErrs := api.BindingErrors(err); fieldErrs != nil {
			c.JSON(http.StatusBadRequest, api.ValidationFail("Invalid request payload", fieldErrs))
			return
		}
		c.JSON(http.StatusBadRequest, api.Fail("Invalid request payload"))
		return
	}

	ctx := c.Request.Context()
	ins, err := h.service.CreateInstructor(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidName):
			c.JSON(http.StatusBadRequest, api.Fail("Instructor name must be non-empty and at most 100 characters"))
		case errors.Is(err, context.DeadlineExceeded):
			c.JSON(http.StatusServiceUnavailable, api.Fail("Storage timeout, try again later"))
		default:
			logger.WithError(err).Error("create instructor failed")
			c.JSON(http.StatusInternalServerError, api.Fail("Failed to create instructor"))
		}
		return
	}

	c.JSON(http.StatusCreated, api.OK("Instructor created successfully", ins))
}
