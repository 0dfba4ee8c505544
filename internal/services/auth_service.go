package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/poofware/rental-service/internal/dtos"
	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/repositories"
	"github.com/poofware/rental-service/internal/utils"
)

type AuthService struct {
	users       repositories.UserRepository
	jwt         JWTService
	tokenExpiry time.Duration
}

func NewAuthService(users repositories.UserRepository, jwt JWTService, tokenExpiry time.Duration) *AuthService {
	return &AuthService{users: users, jwt: jwt, tokenExpiry: tokenExpiry}
}

// Register creates an active client account.
func (s *AuthService) Register(ctx context.Context, req dtos.RegisterRequest) (*models.User, error) {
	existing, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, storeError(entityUser, err)
	}
	if existing != nil {
		return nil, invalidField("username", "A user with that username already exists.")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, utils.NewInternalError("Failed to hash password", err)
	}
	u := &models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, utils.ErrDuplicateKey) {
			return nil, invalidField("username", "A user with that username already exists.")
		}
		return nil, storeError(entityUser, err)
	}
	utils.Logger.WithField("user_id", u.ID).Info("Account registered")
	return u, nil
}

// Login checks the password and issues an access token.
func (s *AuthService) Login(ctx context.Context, req dtos.LoginRequest) (*dtos.LoginResponse, error) {
	u, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, storeError(entityUser, err)
	}
	if u == nil || !utils.CheckPasswordHash(req.Password, u.PasswordHash) {
		return nil, &utils.AppError{
			StatusCode: http.StatusUnauthorized,
			Code:       utils.ErrCodeInvalidCredentials,
			Message:    "Unable to log in with provided credentials.",
			Err:        utils.ErrInvalidCredentials,
		}
	}
	if !u.IsActive {
		return nil, &utils.AppError{
			StatusCode: http.StatusUnauthorized,
			Code:       utils.ErrCodeUnauthorized,
			Message:    "User account is disabled.",
			Err:        utils.ErrInactiveAccount,
		}
	}

	token, err := s.jwt.GenerateAccessToken(u, s.tokenExpiry)
	if err != nil {
		return nil, utils.NewInternalError("Failed to issue token", err)
	}
	utils.Logger.WithField("user_id", u.ID).Info("Login succeeded")
	return &dtos.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenExpiry.Seconds()),
		User:        dtos.NewUserFromModel(u),
	}, nil
}

// Me returns the account behind an authenticated request.
func (s *AuthService) Me(ctx context.Context, userID int64) (*models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError(entityUser, err)
	}
	if u == nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusUnauthorized,
			Code:       utils.ErrCodeUnauthorized,
			Message:    "User no longer exists",
		}
	}
	return u, nil
}
