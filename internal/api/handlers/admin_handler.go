package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openroad/driveschool/internal/model"
	"github.com/openroad/driveschool/internal/service"
)

// AdminHandler serves the back-office surface: catalog management and the
// instructor availability calendar.
type AdminHandler struct {
	schoolService   *service.SchoolService
	bookingService  *service.BookingService
	reviewService   *service.ReviewService
	calendarService *service.CalendarService
}

func NewAdminHandler(
	schoolService *service.SchoolService,
	bookingService *service.BookingService,
	reviewService *service.ReviewService,
	calendarService *service.CalendarService,
) *AdminHandler {
	return &AdminHandler{
		schoolService:   schoolService,
		bookingService:  bookingService,
		reviewService:   reviewService,
		calendarService: calendarService,
	}
}

type SchoolRequest struct {
	Name                 string   `json:"name" binding:"required"`
	Description          string   `json:"description"`
	City                 string   `json:"city"`
	Address              string   `json:"address"`
	ContactPhone         string   `json:"contactPhone"`
	PricePerLesson       *float64 `json:"pricePerLesson"`
	DefaultLessonMinutes *int     `json:"defaultLessonMinutes"`
}

func (r *SchoolRequest) apply(s *model.School) {
	s.Name = r.Name
	s.Description = r.Description
	s.City = r.City
	s.Address = r.Address
	s.ContactPhone = r.ContactPhone
	s.PricePerLesson = r.PricePerLesson
	s.DefaultLessonMinutes = r.DefaultLessonMinutes
}

// CreateSchool handles POST /api/admin/schools
func (h *AdminHandler) CreateSchool(c *gin.Context) {
	var req SchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var school model.School
	req.apply(&school)
	if err := h.schoolService.CreateSchool(c.Request.Context(), &school); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, school)
}

// UpdateSchool handles PUT /api/admin/schools/:id
func (h *AdminHandler) UpdateSchool(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req SchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	school, err := h.schoolService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	req.apply(school)
	if err := h.schoolService.UpdateSchool(c.Request.Context(), school); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, school)
}

// DeleteSchool handles DELETE /api/admin/schools/:id
func (h *AdminHandler) DeleteSchool(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.schoolService.DeleteSchool(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type InstructorRequest struct {
	SchoolID uuid.UUID `json:"schoolId" binding:"required"`
	Name     string    `json:"name" binding:"required"`
	Bio      string    `json:"bio"`
}

// CreateInstructor handles POST /api/admin/instructors
func (h *AdminHandler) CreateInstructor(c *gin.Context) {
	var req InstructorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	instructor := model.Instructor{
		SchoolID: req.SchoolID,
		Name:     req.Name,
		Bio:      req.Bio,
	}
	if err := h.schoolService.CreateInstructor(c.Request.Context(), &instructor); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, instructor)
}

// DeleteInstructor handles DELETE /api/admin/instructors/:id
func (h *AdminHandler) DeleteInstructor(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.schoolService.DeleteInstructor(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type SlotRequest struct {
	InstructorID    uuid.UUID `json:"instructorId" binding:"required"`
	StartTime       time.Time `json:"startTime" binding:"required"`
	DurationMinutes int       `json:"durationMinutes" binding:"required"`
	Price           float64   `json:"price"`
}

// CreateSlot handles POST /api/admin/slots
func (h *AdminHandler) CreateSlot(c *gin.Context) {
	var req SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	slot, err := h.schoolService.CreateSlot(c.Request.Context(), req.InstructorID, req.StartTime, req.DurationMinutes, req.Price)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, slot)
}

// DeleteSlot handles DELETE /api/admin/slots/:id
func (h *AdminHandler) DeleteSlot(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.schoolService.DeleteSlot(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Bookings handles GET /api/admin/bookings
func (h *AdminHandler) Bookings(c *gin.Context) {
	bookings, err := h.bookingService.AllBookings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// Reviews handles GET /api/admin/reviews
func (h *AdminHandler) Reviews(c *gin.Context) {
	reviews, err := h.reviewService.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

type EnableMonthRequest struct {
	Month string `json:"month" binding:"required"`
}

// EnableMonth handles POST /api/admin/drivers/:instructorId/enable-month
func (h *AdminHandler) EnableMonth(c *gin.Context) {
	id, ok := pathUUID(c, "instructorId")
	if !ok {
		return
	}
	var req EnableMonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.calendarService.EnableMonth(c.Request.Context(), id, req.Month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": req.Month, "cellsCreated": created})
}

// DisableMonth handles DELETE /api/admin/drivers/:instructorId/disable-month/:month
func (h *AdminHandler) DisableMonth(c *gin.Context) {
	id, ok := pathUUID(c, "instructorId")
	if !ok {
		return
	}
	if err := h.calendarService.DisableMonth(c.Request.Context(), id, c.Param("month")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type UnavailableDayRequest struct {
	InstructorID uuid.UUID `json:"instructorId" binding:"required"`
	Date         string    `json:"date" binding:"required"`
}

// SetUnavailableDay handles POST /api/admin/drivers/set-unavailable-day
func (h *AdminHandler) SetUnavailableDay(c *gin.Context) {
	var req UnavailableDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.calendarService.SetUnavailableDay(c.Request.Context(), req.InstructorID, req.Date); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type TimeSlotRequest struct {
	Date     string `json:"date" binding:"required"`
	TimeSlot string `json:"timeSlot" binding:"required"`
}

// SetUnavailableTimeSlot handles POST /api/admin/drivers/:instructorId/set-unavailable-timeslot
func (h *AdminHandler) SetUnavailableTimeSlot(c *gin.Context) {
	id, ok := pathUUID(c, "instructorId")
	if !ok {
		return
	}
	var req TimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.calendarService.SetUnavailableTimeSlot(c.Request.Context(), id, req.Date, req.TimeSlot); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetAvailableTimeSlot handles POST /api/admin/drivers/:instructorId/set-available-timeslot
func (h *AdminHandler) SetAvailableTimeSlot(c *gin.Context) {
	id, ok := pathUUID(c, "instructorId")
	if !ok {
		return
	}
	var req TimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.calendarService.SetAvailableTimeSlot(c.Request.Context(), id, req.Date, req.TimeSlot); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Availability handles GET /api/admin/drivers/:instructorId/availability
func (h *AdminHandler) Availability(c *gin.Context) {
	id, ok := pathUUID(c, "instructorId")
	if !ok {
		return
	}
	cells, err := h.calendarService.Availability(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cells)
}

// Months handles GET /api/admin/drivers/:instructorId/months
func (h *AdminHandler) Months(c *gin.Context) {
	id, ok := pathUUID(c, "instructorId")
	if !ok {
		return
	}
	enabled, disabled, err := h.calendarService.MonthsSummary(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"enabled": enabled, "disabled": disabled})
}
