package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openroad/driveschool/internal/model"
	"github.com/openroad/driveschool/internal/service"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

type CreateReviewRequest struct {
	SchoolID   uuid.UUID `json:"schoolId" binding:"required"`
	ReviewerID uuid.UUID `json:"reviewerId" binding:"required"`
	Rating     int       `json:"rating" binding:"required"`
	Comment    string    `json:"comment" binding:"required"`
}

// Create handles POST /api/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review := &model.Review{
		SchoolID:   req.SchoolID,
		ReviewerID: req.ReviewerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := h.reviewService.Create(c.Request.Context(), review); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
