package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openroad/driveschool/internal/service"
)

type SchoolHandler struct {
	schoolService  *service.SchoolService
	reviewService  *service.ReviewService
	bookingService *service.BookingService
}

func NewSchoolHandler(
	schoolService *service.SchoolService,
	reviewService *service.ReviewService,
	bookingService *service.BookingService,
) *SchoolHandler {
	return &SchoolHandler{
		schoolService:  schoolService,
		reviewService:  reviewService,
		bookingService: bookingService,
	}
}

// List handles GET /api/schools?city=&name=
func (h *SchoolHandler) List(c *gin.Context) {
	schools, err := h.schoolService.Search(c.Request.Context(), c.Query("city"), c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schools)
}

// Get handles GET /api/schools/:id
func (h *SchoolHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	school, err := h.schoolService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, school)
}

// Instructors handles GET /api/schools/:id/instructors
func (h *SchoolHandler) Instructors(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	instructors, err := h.schoolService.Instructors(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, instructors)
}

// Reviews handles GET /api/schools/:id/reviews
func (h *SchoolHandler) Reviews(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	reviews, err := h.reviewService.ForSchool(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// InstructorSlots handles GET /api/instructors/:id/slots
func (h *SchoolHandler) InstructorSlots(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	slots, err := h.bookingService.AvailableSlots(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}
