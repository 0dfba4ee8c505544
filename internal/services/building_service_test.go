package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/poofware/rental-service/internal/dtos"
	"github.com/poofware/rental-service/internal/mocks"
	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/utils"
	"github.com/stretchr/testify/require"
)

func newBuildingService(t *testing.T) (*BuildingService, *mocks.MockBuildingRepository, *mocks.MockApartmentRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	b := mocks.NewMockBuildingRepository(ctrl)
	a := mocks.NewMockApartmentRepository(ctrl)
	return NewBuildingService(b, a), b, a
}

func TestBuildingServiceGetNestsApartments(t *testing.T) {
	svc, buildings, apartments := newBuildingService(t)
	ctx := context.Background()

	buildings.EXPECT().GetByID(ctx, int64(2000)).Return(&models.Building{
		BuildingID: 2000, City: "Kazan", Street: "Baumana", Number: "5", ApartmentIDs: []int64{2001, 2002},
	}, nil)
	apartments.EXPECT().ListByIDs(ctx, []int64{2001, 2002}).Return([]*models.Apartment{
		{ApartmentID: 2001, Number: 1, Square: 30, Cost: 100},
		{ApartmentID: 2002, Number: 2, Square: 40, Cost: 200},
	}, nil)

	b, err := svc.Get(ctx, 2000)
	require.NoError(t, err)
	require.Len(t, b.Apartments, 2)
	require.Equal(t, int64(2001), b.Apartments[0].ApartmentID)
	require.Equal(t, 40, b.Apartments[1].Square)
}

func TestBuildingServiceList(t *testing.T) {
	svc, buildings, apartments := newBuildingService(t)
	ctx := context.Background()

	buildings.EXPECT().List(ctx).Return([]*models.Building{
		{BuildingID: 1, ApartmentIDs: []int64{10}},
		{BuildingID: 2, ApartmentIDs: []int64{}},
	}, nil)
	apartments.EXPECT().List(ctx).Return([]*models.Apartment{{ApartmentID: 10}, {ApartmentID: 11}}, nil)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Len(t, list[0].Apartments, 1)
	require.NotNil(t, list[1].Apartments)
	require.Empty(t, list[1].Apartments)
}

func TestBuildingServiceCreateRejectsUnknownApartment(t *testing.T) {
	svc, buildings, apartments := newBuildingService(t)
	ctx := context.Background()

	buildings.EXPECT().GetByID(ctx, int64(7)).Return(nil, nil)
	apartments.EXPECT().ListByIDs(ctx, []int64{1, 2}).Return([]*models.Apartment{{ApartmentID: 1}}, nil)

	_, err := svc.Create(ctx, dtos.CreateBuildingRequest{
		BuildingID: utils.Ptr(int64(7)),
		BuildingFields: dtos.BuildingFields{
			City: utils.Ptr("Omsk"), Street: utils.Ptr("Lenina"), Number: utils.Ptr("3"),
			Apartments: []int64{1, 2},
		},
	})
	appErr := requireAppError(t, err, http.StatusBadRequest)
	details := appErr.Details.([]dtos.ValidationErrorDetail)
	require.Len(t, details, 1)
	require.Equal(t, "apartments", details[0].Field)
}

func TestBuildingServiceUpdateKeepsLinksWhenOmitted(t *testing.T) {
	svc, buildings, _ := newBuildingService(t)
	ctx := context.Background()

	buildings.EXPECT().GetByID(ctx, int64(7)).Return(&models.Building{
		BuildingID: 7, City: "Omsk", Street: "Lenina", Number: "3", ApartmentIDs: []int64{1},
	}, nil)
	buildings.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, b *models.Building) error {
		require.Nil(t, b.ApartmentIDs, "omitted apartments must not touch the links")
		require.Equal(t, "Tomsk", b.City)
		return nil
	})

	b, err := svc.Update(ctx, 7, dtos.PatchBuildingRequest{City: utils.Ptr("Tomsk")})
	require.NoError(t, err)
	require.Equal(t, []int64{1}, b.ApartmentIDs)
}

func TestBuildingServiceLinks(t *testing.T) {
	svc, buildings, apartments := newBuildingService(t)
	ctx := context.Background()

	t.Run("RemoveUnlinked", func(t *testing.T) {
		buildings.EXPECT().RemoveApartment(ctx, int64(1), int64(2)).Return(utils.ErrNotFound)
		requireAppError(t, svc.RemoveApartment(ctx, 1, 2), http.StatusNotFound)
	})

	t.Run("AddMissingApartment", func(t *testing.T) {
		buildings.EXPECT().GetByID(ctx, int64(1)).Return(&models.Building{BuildingID: 1}, nil)
		apartments.EXPECT().GetByID(ctx, int64(2)).Return(nil, nil)

		_, err := svc.AddApartment(ctx, 1, 2)
		requireAppError(t, err, http.StatusNotFound)
	})

	t.Run("Add", func(t *testing.T) {
		buildings.EXPECT().GetByID(ctx, int64(1)).Return(&models.Building{BuildingID: 1, ApartmentIDs: []int64{}}, nil)
		apartments.EXPECT().GetByID(ctx, int64(2)).Return(&models.Apartment{ApartmentID: 2}, nil)
		buildings.EXPECT().AddApartment(ctx, int64(1), int64(2)).Return(nil)
		buildings.EXPECT().GetByID(ctx, int64(1)).Return(&models.Building{BuildingID: 1, ApartmentIDs: []int64{2}}, nil)
		apartments.EXPECT().ListByIDs(ctx, []int64{2}).Return([]*models.Apartment{{ApartmentID: 2}}, nil)

		b, err := svc.AddApartment(ctx, 1, 2)
		require.NoError(t, err)
		require.Len(t, b.Apartments, 1)
	})
}
