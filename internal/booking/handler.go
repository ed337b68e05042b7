package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gymdesk/internal/api"
	"gymdesk/internal/auth"
	"gymdesk/internal/cache"
	"gymdesk/internal/training"
)

type Handler struct {
	service Service
	cache   *cache.Client
}

// NewHandler wires the booking routes. The schedule cache is invalidated on
// every successful mutation: the cached listing embeds booking counts.
func NewHandler(service Service, scheduleCache *cache.Client) *Handler {
	return &Handler{service: service, cache: scheduleCache}
}

// CreateBooking godoc
// @Summary      Book a training
// @Description  Registers the authenticated client for a training. One booking per training per user.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      CreateBookingRequest  true  "Training to book"
// @Success      201   {object}  BookingWithTraining
// @Failure      400   {object}  api.ErrorResponse
// @Failure      404   {object}  api.ErrorResponse
// @Failure      409   {object}  api.ErrorResponse
// @Router       /bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.service.Book(c.Request.Context(), userID, req.TrainingID)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}

	h.cache.InvalidateSchedule(c.Request.Context())
	c.JSON(http.StatusCreated, result)
}

// CancelBooking godoc
// @Summary      Cancel a booking
// @Description  Removes the authenticated user's booking for the given training.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      CancelBookingRequest  true  "Training to cancel"
// @Success      200   {object}  api.MessageResponse
// @Failure      400   {object}  api.ErrorResponse
// @Failure      404   {object}  api.ErrorResponse
// @Router       /bookings [delete]
func (h *Handler) CancelBooking(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), userID, req.TrainingID); err != nil {
		h.respondServiceError(c, err)
		return
	}

	h.cache.InvalidateSchedule(c.Request.Context())
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking cancelled"})
}

// ListMyBookings godoc
// @Summary      List the authenticated user's bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   BookingWithTraining
// @Failure      500  {object}  api.ErrorResponse
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	bookings, err := h.service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *Handler) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, training.ErrTrainingNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Training not found"})
	case errors.Is(err, ErrBookingNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
	case errors.Is(err, ErrBookingExists):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Internal error"})
	}
}
