package service

import (
	"context"
	"time"

	"shopadmin/internal/apperr"
	"shopadmin/internal/model"
	"shopadmin/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenName labels every issued session token, mirroring the single session
// type the API supports.
const TokenName = "auth_token"

// TokenService issues and validates bearer tokens. A token is an HS256 JWT
// whose jti is persisted as an auth_tokens row: validation requires both a
// valid signature and a live row, so revoking deletes exactly one token while
// a user's other device tokens keep working. Tokens carry no expiry.
type TokenService interface {
	Issue(ctx context.Context, user *model.User) (string, error)
	Validate(ctx context.Context, token string) (*model.User, *model.AuthToken, error)
	Revoke(ctx context.Context, tokenID uuid.UUID) error
}

type tokenService struct {
	tokens repository.TokenRepository
	users  repository.UserRepository
	secret []byte
}

func NewTokenService(tokens repository.TokenRepository, users repository.UserRepository, secret []byte) TokenService {
	return &tokenService{tokens: tokens, users: users, secret: secret}
}

func (s *tokenService) Issue(ctx context.Context, user *model.User) (string, error) {
	jti := uuid.New()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"jti":  jti.String(),
		"sub":  user.ID.String(),
		"role": user.Role,
		"iat":  time.Now().Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperr.Internal(err)
	}

	record := &model.AuthToken{ID: jti, UserID: user.ID, Name: TokenName}
	if err := s.tokens.Create(ctx, record); err != nil {
		return "", apperr.Internal(err)
	}
	return signed, nil
}

func (s *tokenService) Validate(ctx context.Context, tokenString string) (*model.User, *model.AuthToken, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, nil, apperr.Unauthenticated()
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil, apperr.Unauthenticated()
	}

	jtiValue, _ := claims["jti"].(string)
	jti, err := uuid.Parse(jtiValue)
	if err != nil {
		return nil, nil, apperr.Unauthenticated()
	}

	// The row is the source of truth: a signature-valid token whose row was
	// deleted via logout no longer authenticates.
	record, err := s.tokens.FindByID(ctx, jti)
	if err != nil {
		return nil, nil, apperr.Unauthenticated()
	}

	user, err := s.users.FindByID(ctx, record.UserID)
	if err != nil {
		return nil, nil, apperr.Unauthenticated()
	}

	// Best effort; a failed touch must not fail the request.
	_ = s.tokens.Touch(ctx, jti, time.Now())

	return user, record, nil
}

func (s *tokenService) Revoke(ctx context.Context, tokenID uuid.UUID) error {
	if err := s.tokens.Delete(ctx, tokenID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
