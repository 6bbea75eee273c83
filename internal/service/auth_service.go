package service

import (
	"errors"
	"time"

	"go-saristore-pos/internal/model"
	"go-saristore-pos/internal/repository"
	"go-saristore-pos/pkg/jwt"

	"gorm.io/gorm"
)

type AuthService interface {
	Login(req *model.LoginRequest) (string, *model.UserResponse, error)
	Heartbeat(actor Actor) error
}

type authService struct {
	userRepo repository.UserRepository
	activity ActivityLogger
}

func NewAuthService(userRepo repository.UserRepository, activity ActivityLogger) AuthService {
	return &authService{userRepo: userRepo, activity: activity}
}

func (s *authService) Login(req *model.LoginRequest) (string, *model.UserResponse, error) {
	if err := firstValidationError(req); err != nil {
		return "", nil, err
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredential
		}
		return "", nil, err
	}
	if !user.CheckPassword(req.Password) {
		return "", nil, ErrInvalidCredential
	}
	if !user.IsActive {
		return "", nil, ErrAccountDisabled
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName(), user.Role)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	user.LastSeenAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return "", nil, err
	}

	s.activity.Log(user.ID, user.FullName(), "Nag-login", user.Email, model.ActivityAuth)

	resp := user.ToResponse()
	return token, &resp, nil
}

func (s *authService) Heartbeat(actor Actor) error {
	user, err := s.userRepo.FindByID(actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	now := time.Now()
	user.LastSeenAt = &now
	return s.userRepo.Update(user)
}
