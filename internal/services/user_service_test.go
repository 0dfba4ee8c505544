package services

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/poofware/rental-service/internal/dtos"
	"github.com/poofware/rental-service/internal/mocks"
	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/repositories"
	"github.com/poofware/rental-service/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestUserServiceCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mocks.NewMockUserRepository(ctrl)
	svc := NewUserService(repo)
	ctx := context.Background()

	req := dtos.CreateUserRequest{
		UserFields: dtos.UserFields{
			Username:  utils.Ptr("ivanov"),
			IsStaff:   utils.Ptr(true),
			BirthDate: utils.Ptr("1985-02-11"),
		},
		Password: utils.Ptr("s3cret-pass"),
	}

	repo.EXPECT().GetByUsername(ctx, "ivanov").Return(nil, nil)
	repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *models.User) error {
		require.True(t, u.IsActive, "accounts are active by default")
		require.True(t, u.IsStaff)
		require.True(t, utils.CheckPasswordHash("s3cret-pass", u.PasswordHash))
		require.Equal(t, "1985-02-11", u.BirthDate.Format(utils.DateLayout))
		u.ID = 11
		return nil
	})

	u, err := svc.Create(ctx, req)
	require.NoError(t, err)
	require.Equal(t, int64(11), u.ID)

	repo.EXPECT().GetByUsername(ctx, "ivanov").Return(&models.User{ID: 11, Username: "ivanov"}, nil)
	_, err = svc.Create(ctx, req)
	appErr := requireAppError(t, err, http.StatusBadRequest)
	require.Equal(t, utils.ErrCodeValidation, appErr.Code)
}

func TestUserServiceListPassesRoleFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mocks.NewMockUserRepository(ctrl)
	svc := NewUserService(repo)
	ctx := context.Background()

	staff := true
	repo.EXPECT().List(ctx, repositories.UserFilter{IsStaff: &staff}).
		Return([]*models.User{{ID: 1, IsStaff: true}}, nil)

	list, err := svc.List(ctx, &staff)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestUserServiceUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mocks.NewMockUserRepository(ctrl)
	svc := NewUserService(repo)
	ctx := context.Background()

	repo.EXPECT().GetByID(ctx, int64(3)).Return(&models.User{ID: 3, Username: "petrov", PasswordHash: "old"}, nil)
	repo.EXPECT().GetByUsername(ctx, "sidorov").Return(&models.User{ID: 4, Username: "sidorov"}, nil)

	_, err := svc.Update(ctx, 3, dtos.PatchUserRequest{Username: utils.Ptr("sidorov")})
	requireAppError(t, err, http.StatusBadRequest)

	repo.EXPECT().GetByID(ctx, int64(3)).Return(&models.User{ID: 3, Username: "petrov", PasswordHash: "old"}, nil)
	repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, u *models.User) error {
		require.Equal(t, "79001234567", *u.Phone)
		require.Equal(t, "old", u.PasswordHash, "password untouched when omitted")
		return nil
	})
	_, err = svc.Update(ctx, 3, dtos.PatchUserRequest{Phone: utils.Ptr("79001234567")})
	require.NoError(t, err)

	// A concurrent writer takes the name between the check and the write.
	repo.EXPECT().GetByID(ctx, int64(3)).Return(&models.User{ID: 3, Username: "petrov"}, nil)
	repo.EXPECT().GetByUsername(ctx, "kuznetsov").Return(nil, nil)
	repo.EXPECT().Update(ctx, gomock.Any()).Return(fmt.Errorf("%w: users_username_key", utils.ErrDuplicateKey))
	_, err = svc.Update(ctx, 3, dtos.PatchUserRequest{Username: utils.Ptr("kuznetsov")})
	appErr := requireAppError(t, err, http.StatusBadRequest)
	details, ok := appErr.Details.([]dtos.ValidationErrorDetail)
	require.True(t, ok)
	require.Len(t, details, 1)
	require.Equal(t, "username", details[0].Field)
}
