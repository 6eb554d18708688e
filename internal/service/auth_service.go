package service

import (
	"context"
	"strings"
	"time"

	"shopadmin/internal/apperr"
	"shopadmin/internal/model"
	"shopadmin/internal/repository"
	"shopadmin/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type SignUpRequest struct {
	PhoneNumber string `json:"phone_number" form:"phone_number" validate:"required,len=10,numeric"`
	Password    string `json:"password" form:"password" validate:"required,min=8"`
	Role        string `json:"role" form:"role" validate:"omitempty,oneof=user admin seller"`
}

type LoginRequest struct {
	PhoneNumber string `json:"phone_number" form:"phone_number" validate:"required,len=10,numeric"`
	Password    string `json:"password" form:"password" validate:"required"`
}

// UserResponse mirrors the User record without the password hash.
type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	PhoneNumber  string    `json:"phone_number"`
	Role         string    `json:"role"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Address      string    `json:"address"`
	ImageProfile string    `json:"image_profile"`
	CreatedAt    string    `json:"created_at"`
	UpdatedAt    string    `json:"updated_at"`
}

type AuthResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

type AuthService interface {
	SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Logout(ctx context.Context, tokenID uuid.UUID) error
}

type authService struct {
	users  repository.UserRepository
	tokens TokenService
}

func NewAuthService(users repository.UserRepository, tokens TokenService) AuthService {
	return &authService{users: users, tokens: tokens}
}

// NewUserResponse maps a User record to its outward shape.
func NewUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:           user.ID,
		PhoneNumber:  user.PhoneNumber,
		Role:         user.Role,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Address:      user.Address,
		ImageProfile: user.ImageProfile,
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    user.UpdatedAt.Format(time.RFC3339),
	}
}

func (s *authService) SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error) {
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))

	errs := validation.Struct(req)
	if errs == nil {
		errs = make(validation.Errors)
	}
	if _, ok := errs["phone_number"]; !ok {
		if _, err := s.users.FindByPhone(ctx, req.PhoneNumber); err == nil {
			errs.Add("phone_number", "The phone number has already been taken.")
		}
	}
	if len(errs) > 0 {
		return nil, apperr.Validation(errs)
	}

	if req.Role == "" {
		req.Role = model.RoleUser
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &model.User{
		PhoneNumber: req.PhoneNumber,
		Password:    string(hashed),
		Role:        req.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}

	token, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: NewUserResponse(user), Token: token}, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if errs := validation.Struct(req); errs != nil {
		return nil, apperr.Validation(errs)
	}

	// Same failure for unknown phone and wrong password; the distinction would
	// let callers probe for registered numbers.
	user, err := s.users.FindByPhone(ctx, req.PhoneNumber)
	if err != nil {
		return nil, apperr.Credentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Credentials()
	}

	token, err := s.tokens.Issue(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: NewUserResponse(user), Token: token}, nil
}

func (s *authService) Logout(ctx context.Context, tokenID uuid.UUID) error {
	return s.tokens.Revoke(ctx, tokenID)
}
