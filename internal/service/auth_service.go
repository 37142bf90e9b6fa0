package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openroad/driveschool/internal/model"
	"github.com/openroad/driveschool/internal/repository"
)

// AuthService is the demo-grade identity layer: plaintext credentials,
// no sessions. Signup is an upsert on email so a learner created by a
// booking can claim the account later.
type AuthService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{userRepo: userRepo, logger: logger}
}

type SignupRequest struct {
	FullName string
	Email    string
	Phone    string
	Password string
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, fmt.Errorf("email required: %w", ErrValidation)
	}
	if req.Password == "" {
		return nil, fmt.Errorf("password required: %w", ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find user: %w", err)
		}
		user = &model.User{
			FullName: req.FullName,
			Email:    email,
			Phone:    req.Phone,
			Password: req.Password,
			Role:     model.UserRoleLearner,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		s.logger.Info("user signed up", zap.String("user_id", user.ID.String()))
		return user, nil
	}

	// Existing learner record, possibly created through a booking.
	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	user.Password = req.Password
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", ErrValidation)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user.Password == "" || user.Password != password {
		return nil, fmt.Errorf("invalid credentials: %w", ErrValidation)
	}
	return user, nil
}
