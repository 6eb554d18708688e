package service

import (
	"context"
	"mime/multipart"

	"shopadmin/internal/apperr"
	"shopadmin/internal/repository"
	"shopadmin/internal/storage"
	"shopadmin/internal/validation"

	"github.com/google/uuid"
)

// Folder on the image host that profile pictures are uploaded into.
const profileImageFolder = "users"

type EditProfileRequest struct {
	FirstName *string `json:"first_name" form:"first_name" validate:"omitempty,max=255"`
	LastName  *string `json:"last_name" form:"last_name" validate:"omitempty,max=255"`
	Address   *string `json:"address" form:"address" validate:"omitempty,max=255"`
}

// UserService edits the authenticated caller's own profile. The route carries
// no target id, so ownership holds by construction.
type UserService interface {
	EditMyProfile(ctx context.Context, userID uuid.UUID, req EditProfileRequest, image *multipart.FileHeader) (*UserResponse, error)
}

type userService struct {
	users  repository.UserRepository
	images storage.ImageHost
}

func NewUserService(users repository.UserRepository, images storage.ImageHost) UserService {
	return &userService{users: users, images: images}
}

func (s *userService) EditMyProfile(ctx context.Context, userID uuid.UUID, req EditProfileRequest, image *multipart.FileHeader) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.NotFound("User not found")
	}

	errs := validation.Struct(req)
	if errs == nil {
		errs = make(validation.Errors)
	}
	if msg := validation.CheckImage(image); msg != "" {
		errs.Add("image_profile", msg)
	}
	if len(errs) > 0 {
		return nil, apperr.Validation(errs)
	}

	if image != nil {
		// Drop the previously hosted image before uploading the replacement.
		if user.ImageProfile != "" {
			_ = s.images.Destroy(ctx, storage.PublicIDFromURL(user.ImageProfile))
		}

		file, err := image.Open()
		if err != nil {
			return nil, apperr.Internal(err)
		}
		defer file.Close()

		secureURL, err := s.images.Upload(ctx, file, profileImageFolder)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		user.ImageProfile = secureURL
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Address != nil {
		user.Address = *req.Address
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}

	return NewUserResponse(user), nil
}
