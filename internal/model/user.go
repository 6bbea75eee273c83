package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role codes as constants
const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleCustomer = "customer"
)

// User represents any account in the system: admins and staff who run the
// store, and customers who can carry utang against their credit limit.
type User struct {
	BaseModel
	FirstName   string `gorm:"type:varchar(100);not null" json:"first_name" validate:"required"`
	LastName    string `gorm:"type:varchar(100);not null" json:"last_name" validate:"required"`
	Email       string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password    string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Role        string `gorm:"type:varchar(20);not null;default:'customer';index" json:"role" validate:"required,oneof=admin staff customer"`
	PhoneNumber string `gorm:"type:varchar(20)" json:"phone_number"`
	Address     string `gorm:"type:text" json:"address"`

	// Ceiling on total outstanding non-paid debt. 0 = unlimited.
	CreditLimit float64 `gorm:"default:0" json:"credit_limit"`

	IsActive   bool       `gorm:"default:true" json:"is_active"`
	LastSeenAt *time.Time `json:"last_seen_at,omitempty"`
}

// FullName returns the display name used on receipts and activity entries
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	PhoneNumber string     `json:"phone_number"`
	Address     string     `json:"address"`
	CreditLimit float64    `json:"credit_limit"`
	IsActive    bool       `json:"is_active"`
	LastSeenAt  *time.Time `json:"last_seen_at,omitempty"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Role:        u.Role,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		CreditLimit: u.CreditLimit,
		IsActive:    u.IsActive,
		LastSeenAt:  u.LastSeenAt,
	}
}

// LoginRequest is the payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
