package dto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BE-BINAR-ACADEMY-FGA/challeng5/internal/domain"
)

type CreateUserRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	IdentityType   string `json:"identity_type"`
	IdentityNumber string `json:"identity_number"`
	Address        string `json:"address"`
}

func (r CreateUserRequest) IsValid() error {
	var errs []error
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, fmt.Errorf("name is required"))
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, fmt.Errorf("email is required"))
	} else if !strings.Contains(r.Email, "@") {
		errs = append(errs, fmt.Errorf("email is invalid"))
	}
	if strings.TrimSpace(r.Password) == "" {
		errs = append(errs, fmt.Errorf("password is required"))
	}
	if strings.TrimSpace(r.IdentityType) == "" {
		errs = append(errs, fmt.Errorf("identity_type is required"))
	}
	if strings.TrimSpace(r.IdentityNumber) == "" {
		errs = append(errs, fmt.Errorf("identity_number is required"))
	}
	return errors.Join(errs...)
}

type UpdateUserRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	IdentityType   string `json:"identity_type"`
	IdentityNumber string `json:"identity_number"`
	Address        string `json:"address"`
}

func (r UpdateUserRequest) IsValid() error {
	var errs []error
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, fmt.Errorf("name is required"))
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, fmt.Errorf("email is required"))
	}
	return errors.Join(errs...)
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	IdentityType   string `json:"identity_type"`
	IdentityNumber string `json:"identity_number"`
	Address        string `json:"address"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		IdentityType:   user.IdentityType,
		IdentityNumber: user.IdentityNumber,
		Address:        user.Address,
		CreatedAt:      user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      user.UpdatedAt.Format(time.RFC3339),
	}
}
