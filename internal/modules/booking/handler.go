package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"travelnest/internal/domain"
	"travelnest/internal/middleware"
	"travelnest/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Admit)
	rg.GET("/bookings", h.MyBookings)
	rg.GET("/bookings/host", h.HostBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.PATCH("/bookings/:id/status", h.Transition)
}

func (h *Handler) Admit(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing identity")
		return
	}

	var req AdmitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	req.GuestID = userID

	b, err := h.service.Admit(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) MyBookings(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	status := domain.BookingStatus(c.Query("status"))

	out, err := h.service.ListForGuest(c.Request.Context(), userID, status, 100, 0)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": out})
}

func (h *Handler) HostBookings(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	status := domain.BookingStatus(c.Query("status"))

	out, err := h.service.ListForHost(c.Request.Context(), userID, status, 100, 0)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": out})
}

func (h *Handler) GetBooking(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	b, err := h.service.GetForActor(c.Request.Context(), id, userID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) Transition(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking id")
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Transition(c.Request.Context(), id, userID, domain.BookingStatus(req.Status))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid booking request")
	case errors.Is(err, ErrCapacityExceeded):
		response.Error(c, http.StatusBadRequest, "CAPACITY_EXCEEDED", "Guest count exceeds listing capacity")
	case errors.Is(err, ErrListingNotFound):
		response.Error(c, http.StatusNotFound, "LISTING_NOT_FOUND", "Listing does not exist")
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking does not exist")
	case errors.Is(err, ErrListingUnavailable):
		response.Error(c, http.StatusConflict, "LISTING_UNAVAILABLE", "Listing is not open for booking")
	case errors.Is(err, ErrDateConflict):
		response.Error(c, http.StatusConflict, "BOOKING_CONFLICT", "Listing is not available for the selected dates")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not allowed for this booking")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Status transition is not allowed from the current state")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process booking request")
	}
}
