package dto

import (
	"errors"
	"fmt"
	"strings"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) IsValid() error {
	var errs []error
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, fmt.Errorf("name is required"))
	}
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, fmt.Errorf("email is required"))
	}
	if strings.TrimSpace(r.Password) == "" {
		errs = append(errs, fmt.Errorf("password is required"))
	}
	return errors.Join(errs...)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) IsValid() error {
	var errs []error
	if strings.TrimSpace(r.Email) == "" {
		errs = append(errs, fmt.Errorf("email is required"))
	}
	if strings.TrimSpace(r.Password) == "" {
		errs = append(errs, fmt.Errorf("password is required"))
	}
	return errors.Join(errs...)
}

type TokenResponse struct {
	Token string `json:"token"`
}

type RegisterResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type IdentityResponse struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}
