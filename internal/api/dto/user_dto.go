package dto

import (
	"errors"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/behnamfe76/finance-service/internal/domain"
	"github.com/behnamfe76/finance-service/internal/service"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// LoginRequest accepts either a username or an email next to the password.
type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Identifier returns the login handle, preferring the username.
func (r LoginRequest) Identifier() string {
	if u := strings.TrimSpace(r.Username); u != "" {
		return u
	}
	return strings.TrimSpace(r.Email)
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Email, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
	return requireIdentifier(err, r.Identifier())
}

// requireIdentifier adds the username error to field errors. Other errors pass through.
func requireIdentifier(err error, identifier string) error {
	if identifier != "" {
		return err
	}
	if err == nil {
		return validation.Errors{"username": errors.New("username or email is required")}
	}
	errs, ok := err.(validation.Errors)
	if !ok {
		return err
	}
	errs["username"] = errors.New("username or email is required")
	return errs
}

// RefreshRequest is the body fallback for the refresh credential.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RegisterRequest payload for new users. Password2 is an optional confirmation.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 150), validation.Match(usernamePattern)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&r.Password2, validation.By(stringEquals(r.Password))),
	)
}

// Input maps the payload to the service input.
func (r RegisterRequest) Input() service.RegisterInput {
	return service.RegisterInput{
		Username: strings.TrimSpace(r.Username),
		Email:    strings.TrimSpace(r.Email),
		Password: r.Password,
	}
}

// CreateUserRequest is the staff variant of registration.
type CreateUserRequest struct {
	RegisterRequest
	IsStaff bool `json:"is_staff"`
}

// Validate will run validation rules
func (r CreateUserRequest) Validate() error {
	return r.RegisterRequest.Validate()
}

// Input maps the payload to the service input.
func (r CreateUserRequest) Input() service.RegisterInput {
	input := r.RegisterRequest.Input()
	input.IsStaff = r.IsStaff
	return input
}

// RegisterResponse is returned by the public registration endpoint.
type RegisterResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserResponse is the staff view of a user.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsStaff   bool      `json:"is_staff"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse maps a user.
func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsStaff:   u.IsStaff,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// LoginResponse body.
type LoginResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// MeResponse describes the authenticated caller.
type MeResponse struct {
	Authenticated bool   `json:"authenticated"`
	UserID        int64  `json:"user_id"`
	Username      string `json:"username"`
	IsStaff       bool   `json:"is_staff"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
