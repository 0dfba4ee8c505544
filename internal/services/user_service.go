package services

import (
	"context"
	"errors"

	"github.com/poofware/rental-service/internal/dtos"
	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/repositories"
	"github.com/poofware/rental-service/internal/utils"
	"github.com/sirupsen/logrus"
)

const entityUser = "User"

type UserService struct {
	repo repositories.UserRepository
}

func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// List returns all users, or only agents / only clients when isStaff is set.
func (s *UserService) List(ctx context.Context, isStaff *bool) ([]*models.User, error) {
	list, err := s.repo.List(ctx, repositories.UserFilter{IsStaff: isStaff})
	if err != nil {
		return nil, storeError(entityUser, err)
	}
	return list, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(entityUser, err)
	}
	if u == nil {
		return nil, utils.NewNotFoundError("User not found")
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, req dtos.CreateUserRequest) (*models.User, error) {
	if err := s.ensureUsernameFree(ctx, *req.Username, 0); err != nil {
		return nil, err
	}

	u := &models.User{IsActive: true}
	patch := dtos.ReplaceUserRequest{UserFields: req.UserFields}.AsPatch()
	if err := patch.Apply(u); err != nil {
		return nil, invalidField("birth_date", "Date has wrong format. Use YYYY-MM-DD.")
	}
	hash, err := utils.HashPassword(*req.Password)
	if err != nil {
		return nil, utils.NewInternalError("Failed to hash password", err)
	}
	u.PasswordHash = hash

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, utils.ErrDuplicateKey) {
			return nil, invalidField("username", "A user with that username already exists.")
		}
		return nil, storeError(entityUser, err)
	}
	utils.Logger.WithFields(logrus.Fields{"user_id": u.ID, "is_staff": u.IsStaff}).Info("User created")
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id int64, patch dtos.PatchUserRequest) (*models.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Username != nil && *patch.Username != u.Username {
		if err := s.ensureUsernameFree(ctx, *patch.Username, id); err != nil {
			return nil, err
		}
	}
	if err := patch.Apply(u); err != nil {
		return nil, invalidField("birth_date", "Date has wrong format. Use YYYY-MM-DD.")
	}
	if patch.Password != nil {
		hash, err := utils.HashPassword(*patch.Password)
		if err != nil {
			return nil, utils.NewInternalError("Failed to hash password", err)
		}
		u.PasswordHash = hash
	}
	if err := s.repo.Update(ctx, u); err != nil {
		if errors.Is(err, utils.ErrDuplicateKey) {
			return nil, invalidField("username", "A user with that username already exists.")
		}
		return nil, storeError(entityUser, err)
	}
	return u, nil
}

// Delete removes the user and every contract naming them as agent or client.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(entityUser, err)
	}
	utils.Logger.WithField("user_id", id).Info("User deleted")
	return nil
}

func (s *UserService) ensureUsernameFree(ctx context.Context, username string, selfID int64) error {
	existing, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return storeError(entityUser, err)
	}
	if existing != nil && existing.ID != selfID {
		return invalidField("username", "A user with that username already exists.")
	}
	return nil
}
