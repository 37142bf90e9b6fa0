package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openroad/driveschool/internal/model"
	"github.com/openroad/driveschool/internal/repository"
)

type ReviewService struct {
	reviewRepo repository.ReviewRepository
	schoolRepo repository.SchoolRepository
	userRepo   repository.UserRepository
	logger     *zap.Logger
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	schoolRepo repository.SchoolRepository,
	userRepo repository.UserRepository,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		schoolRepo: schoolRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// Create validates the rating and references, then stores the review.
func (s *ReviewService) Create(ctx context.Context, review *model.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5: %w", ErrValidation)
	}
	if strings.TrimSpace(review.Comment) == "" {
		return fmt.Errorf("comment required: %w", ErrValidation)
	}
	if _, err := s.schoolRepo.GetByID(ctx, review.SchoolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("school %s: %w", review.SchoolID, ErrNotFound)
		}
		return fmt.Errorf("get school: %w", err)
	}
	if _, err := s.userRepo.GetByID(ctx, review.ReviewerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s: %w", review.ReviewerID, ErrNotFound)
		}
		return fmt.Errorf("get user: %w", err)
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	s.logger.Info("review created",
		zap.String("review_id", review.ID.String()),
		zap.String("school_id", review.SchoolID.String()),
		zap.Int("rating", review.Rating),
	)
	return nil
}

func (s *ReviewService) ForSchool(ctx context.Context, schoolID uuid.UUID) ([]model.Review, error) {
	if _, err := s.schoolRepo.GetByID(ctx, schoolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("school %s: %w", schoolID, ErrNotFound)
		}
		return nil, fmt.Errorf("get school: %w", err)
	}
	return s.reviewRepo.ListBySchool(ctx, schoolID)
}

func (s *ReviewService) All(ctx context.Context) ([]model.Review, error) {
	return s.reviewRepo.ListAll(ctx)
}
