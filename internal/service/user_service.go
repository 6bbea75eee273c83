package service

import (
	"errors"
	"fmt"

	"go-saristore-pos/internal/model"
	"go-saristore-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserUpdateRequest carries the editable account fields. CreditLimit is the
// ceiling consulted by the manual utang path.
type UserUpdateRequest struct {
	FirstName   *string  `json:"first_name"`
	LastName    *string  `json:"last_name"`
	Role        *string  `json:"role" validate:"omitempty,oneof=admin staff customer"`
	PhoneNumber *string  `json:"phone_number"`
	Address     *string  `json:"address"`
	CreditLimit *float64 `json:"credit_limit" validate:"omitempty,gte=0"`
	IsActive    *bool    `json:"is_active"`
	Password    *string  `json:"password" validate:"omitempty,min=6"`
}

type UserService interface {
	CreateUser(req *model.User, password string, actor Actor) error
	UpdateUser(id uuid.UUID, req *UserUpdateRequest, actor Actor) (*model.User, error)
	DeleteUser(id uuid.UUID, actor Actor) error
	GetUsers(role string) ([]model.User, error)
	GetUser(id uuid.UUID) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	activity ActivityLogger
}

func NewUserService(userRepo repository.UserRepository, activity ActivityLogger) UserService {
	return &userService{userRepo: userRepo, activity: activity}
}

func (s *userService) CreateUser(req *model.User, password string, actor Actor) error {
	if err := firstValidationError(req); err != nil {
		return err
	}
	if password == "" {
		return &ValidationError{Field: "password", Tag: "required"}
	}

	existing, err := s.userRepo.FindByEmail(req.Email)
	if err == nil && existing != nil && existing.ID != uuid.Nil {
		return ErrEmailTaken
	}

	if err := req.SetPassword(password); err != nil {
		return err
	}
	req.CreatedBy = actor.ID.String()
	req.UpdatedBy = actor.ID.String()

	if err := s.userRepo.Create(req); err != nil {
		return err
	}

	s.activity.Log(actor.ID, actor.Name, "Nagdagdag ng user",
		fmt.Sprintf("%s (%s)", req.FullName(), req.Role), model.ActivityUser)
	return nil
}

func (s *userService) UpdateUser(id uuid.UUID, req *UserUpdateRequest, actor Actor) (*model.User, error) {
	if err := firstValidationError(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.CreditLimit != nil {
		user.CreditLimit = *req.CreditLimit
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}
	user.UpdatedBy = actor.ID.String()

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	s.activity.Log(actor.ID, actor.Name, "Nag-update ng user", user.FullName(), model.ActivityUser)
	return user, nil
}

func (s *userService) DeleteUser(id uuid.UUID, actor Actor) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if err := s.userRepo.Delete(id, actor.ID.String()); err != nil {
		return err
	}
	s.activity.Log(actor.ID, actor.Name, "Nag-delete ng user", user.FullName(), model.ActivityUser)
	return nil
}

func (s *userService) GetUsers(role string) ([]model.User, error) {
	return s.userRepo.FindAll(role)
}

func (s *userService) GetUser(id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
