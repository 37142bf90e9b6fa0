package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openroad/driveschool/internal/model"
	"github.com/openroad/driveschool/internal/service"
)

type BookingHandler struct {
	bookingService *service.BookingService
}

func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

type BookingUserRequest struct {
	ID       *uuid.UUID `json:"id"`
	FullName string     `json:"fullName"`
	Email    string     `json:"email"`
	Phone    string     `json:"phone"`
}

type BookingPaymentRequest struct {
	Method    string `json:"method"`
	CardLast4 string `json:"cardLast4"`
}

type CreateBookingRequest struct {
	SlotID  uuid.UUID             `json:"slotId" binding:"required"`
	User    BookingUserRequest    `json:"user"`
	Payment BookingPaymentRequest `json:"payment"`
}

func (r *CreateBookingRequest) toService() service.SlotBookingRequest {
	return service.SlotBookingRequest{
		SlotID: r.SlotID,
		Learner: service.LearnerInfo{
			UserID:   r.User.ID,
			FullName: r.User.FullName,
			Email:    r.User.Email,
			Phone:    r.User.Phone,
		},
		Payment: service.PaymentInfo{
			Method:    r.Payment.Method,
			CardLast4: r.Payment.CardLast4,
		},
	}
}

// Create handles POST /api/bookings, the legacy direct path. The booking
// starts CONFIRMED.
func (h *BookingHandler) Create(c *gin.Context) {
	h.createWithStatus(c, model.BookingStatusConfirmed)
}

// CreateDriverFlow handles POST /api/bookings/driver-flow. Same payload as
// Create, but the booking starts PENDING and waits for the instructor.
func (h *BookingHandler) CreateDriverFlow(c *gin.Context) {
	h.createWithStatus(c, model.BookingStatusPending)
}

func (h *BookingHandler) createWithStatus(c *gin.Context, status model.BookingStatus) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.bookingService.BookSlot(c.Request.Context(), req.toService(), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

type CalendarBookingRequest struct {
	InstructorID uuid.UUID             `json:"instructorId" binding:"required"`
	Date         string                `json:"date" binding:"required"`
	TimeSlot     string                `json:"timeSlot" binding:"required"`
	User         BookingUserRequest    `json:"user"`
	Payment      BookingPaymentRequest `json:"payment"`
}

// CreateFromCalendar handles POST /api/bookings/driver-availability: books
// one calendar cell, materializing the lesson slot on demand.
func (h *BookingHandler) CreateFromCalendar(c *gin.Context) {
	var req CalendarBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.bookingService.BookFromCalendar(c.Request.Context(), service.CalendarBookingRequest{
		InstructorID: req.InstructorID,
		Date:         req.Date,
		TimeSlot:     req.TimeSlot,
		Learner: service.LearnerInfo{
			UserID:   req.User.ID,
			FullName: req.User.FullName,
			Email:    req.User.Email,
			Phone:    req.User.Phone,
		},
		Payment: service.PaymentInfo{
			Method:    req.Payment.Method,
			CardLast4: req.Payment.CardLast4,
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// Cancel handles POST /api/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	booking, err := h.bookingService.Cancel(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// List handles GET /api/bookings
func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.bookingService.AllBookings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// ForUser handles GET /api/users/:id/bookings
func (h *BookingHandler) ForUser(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	bookings, err := h.bookingService.BookingsForUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}
