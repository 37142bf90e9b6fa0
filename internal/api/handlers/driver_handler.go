package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openroad/driveschool/internal/service"
)

// DriverHandler serves the instructor-facing surface: booking review and
// the calendar view.
type DriverHandler struct {
	bookingService  *service.BookingService
	calendarService *service.CalendarService
}

func NewDriverHandler(bookingService *service.BookingService, calendarService *service.CalendarService) *DriverHandler {
	return &DriverHandler{
		bookingService:  bookingService,
		calendarService: calendarService,
	}
}

// Bookings handles GET /api/driver/:instructorId/bookings
func (h *DriverHandler) Bookings(c *gin.Context) {
	id, ok := pathUUID(c, "instructorId")
	if !ok {
		return
	}
	bookings, err := h.bookingService.BookingsForInstructor(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// BookingsForDay handles GET /api/driver/:instructorId/bookings/day/:date
func (h *DriverHandler) BookingsForDay(c *gin.Context) {
	id, ok := pathUUID(c, "instructorId")
	if !ok {
		return
	}
	bookings, err := h.bookingService.BookingsForInstructorDay(c.Request.Context(), id, c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// Confirm handles POST /api/driver/bookings/:bookingId/confirm
func (h *DriverHandler) Confirm(c *gin.Context) {
	id, ok := pathUUID(c, "bookingId")
	if !ok {
		return
	}
	booking, err := h.bookingService.Confirm(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// Reject handles POST /api/driver/bookings/:bookingId/reject
func (h *DriverHandler) Reject(c *gin.Context) {
	id, ok := pathUUID(c, "bookingId")
	if !ok {
		return
	}
	booking, err := h.bookingService.Reject(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// Calendar handles GET /api/driver/:instructorId/calendar/:month
func (h *DriverHandler) Calendar(c *gin.Context) {
	id, ok := pathUUID(c, "instructorId")
	if !ok {
		return
	}
	cells, err := h.calendarService.Calendar(c.Request.Context(), id, c.Param("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cells)
}
