package repository

import (
	"context"
	"time"

	"shopadmin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenRepository persists issued bearer tokens. A token exists exactly while
// its row does; deletion is revocation.
type TokenRepository interface {
	Create(ctx context.Context, token *model.AuthToken) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.AuthToken, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *model.AuthToken) error {
	return GetDB(ctx, r.db).Create(token).Error
}

func (r *tokenRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AuthToken, error) {
	var token model.AuthToken
	if err := GetDB(ctx, r.db).First(&token, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.AuthToken{}).Error
}

func (r *tokenRepository) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	return GetDB(ctx, r.db).Model(&model.AuthToken{}).Where("id = ?", id).Update("last_used_at", at).Error
}
