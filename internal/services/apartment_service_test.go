package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/poofware/rental-service/internal/dtos"
	"github.com/poofware/rental-service/internal/mocks"
	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/utils"
	"github.com/stretchr/testify/require"
)

func requireAppError(t *testing.T, err error, status int) *utils.AppError {
	t.Helper()
	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, status, appErr.StatusCode)
	return appErr
}

func TestApartmentServiceCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mocks.NewMockApartmentRepository(ctrl)
	svc := NewApartmentService(repo)
	ctx := context.Background()

	req := dtos.CreateApartmentRequest{
		ApartmentID: utils.Ptr(int64(4000)),
		ApartmentFields: dtos.ApartmentFields{
			Number: utils.Ptr(42), Square: utils.Ptr(80), Cost: utils.Ptr(50000),
		},
	}

	t.Run("Stores", func(t *testing.T) {
		repo.EXPECT().GetByID(ctx, int64(4000)).Return(nil, nil)
		repo.EXPECT().Create(ctx, &models.Apartment{ApartmentID: 4000, Number: 42, Square: 80, Cost: 50000}).Return(nil)

		a, err := svc.Create(ctx, req)
		require.NoError(t, err)
		require.Equal(t, 50000, a.Cost)
	})

	t.Run("DuplicateID", func(t *testing.T) {
		repo.EXPECT().GetByID(ctx, int64(4000)).Return(&models.Apartment{ApartmentID: 4000}, nil)

		_, err := svc.Create(ctx, req)
		appErr := requireAppError(t, err, http.StatusBadRequest)
		require.Equal(t, utils.ErrCodeValidation, appErr.Code)
	})

	t.Run("DuplicateRace", func(t *testing.T) {
		repo.EXPECT().GetByID(ctx, int64(4000)).Return(nil, nil)
		repo.EXPECT().Create(ctx, gomock.Any()).Return(utils.ErrDuplicateKey)

		_, err := svc.Create(ctx, req)
		requireAppError(t, err, http.StatusBadRequest)
	})

	t.Run("StoreFailure", func(t *testing.T) {
		repo.EXPECT().GetByID(ctx, int64(4000)).Return(nil, errors.New("connection reset"))

		_, err := svc.Create(ctx, req)
		requireAppError(t, err, http.StatusInternalServerError)
	})
}

func TestApartmentServiceUpdateAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mocks.NewMockApartmentRepository(ctrl)
	svc := NewApartmentService(repo)
	ctx := context.Background()

	repo.EXPECT().GetByID(ctx, int64(4000)).
		Return(&models.Apartment{ApartmentID: 4000, Number: 42, Square: 80, Cost: 50000}, nil)
	repo.EXPECT().Update(ctx, &models.Apartment{ApartmentID: 4000, Number: 42, Square: 80, Cost: 55000}).Return(nil)

	a, err := svc.Update(ctx, 4000, dtos.PatchApartmentRequest{Cost: utils.Ptr(55000)})
	require.NoError(t, err)
	require.Equal(t, 55000, a.Cost)
	require.Equal(t, 42, a.Number)

	repo.EXPECT().GetByID(ctx, int64(4000)).
		Return(&models.Apartment{ApartmentID: 4000, Number: 42, Square: 80, Cost: 50000}, nil)
	repo.EXPECT().Update(ctx, gomock.Any()).Return(fmt.Errorf("%w: integer overflow", utils.ErrValueOutOfRange))
	_, err = svc.Update(ctx, 4000, dtos.PatchApartmentRequest{Square: utils.Ptr(81)})
	requireAppError(t, err, http.StatusBadRequest)

	repo.EXPECT().GetByID(ctx, int64(5)).Return(nil, nil)
	_, err = svc.Update(ctx, 5, dtos.PatchApartmentRequest{})
	requireAppError(t, err, http.StatusNotFound)

	repo.EXPECT().Delete(ctx, int64(4000)).Return(nil)
	require.NoError(t, svc.Delete(ctx, 4000))

	repo.EXPECT().Delete(ctx, int64(4000)).Return(utils.ErrNotFound)
	requireAppError(t, svc.Delete(ctx, 4000), http.StatusNotFound)
}
