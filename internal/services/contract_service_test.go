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

type contractMocks struct {
	contracts  *mocks.MockContractRepository
	users      *mocks.MockUserRepository
	apartments *mocks.MockApartmentRepository
	svc        *ContractService
}

func newContractMocks(t *testing.T) *contractMocks {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	m := &contractMocks{
		contracts:  mocks.NewMockContractRepository(ctrl),
		users:      mocks.NewMockUserRepository(ctrl),
		apartments: mocks.NewMockApartmentRepository(ctrl),
	}
	m.svc = NewContractService(m.contracts, m.users, m.apartments)
	return m
}

func (m *contractMocks) referencesExist() {
	m.users.EXPECT().GetByID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id int64) (*models.User, error) {
			return &models.User{ID: id}, nil
		}).Times(2)
	m.apartments.EXPECT().GetByID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id int64) (*models.Apartment, error) {
			return &models.Apartment{ApartmentID: id}, nil
		})
}

func contractRequest(id int64) dtos.CreateContractRequest {
	return dtos.CreateContractRequest{
		ContractID: utils.Ptr(id),
		ContractFields: dtos.ContractFields{
			AgentID: utils.Ptr(int64(1)), ClientID: utils.Ptr(int64(2)), ApartmentID: utils.Ptr(int64(10)),
		},
	}
}

func TestContractServiceCreateDefaultsToPending(t *testing.T) {
	m := newContractMocks(t)
	ctx := context.Background()

	m.contracts.EXPECT().GetByID(ctx, int64(1)).Return(nil, nil)
	m.referencesExist()
	m.contracts.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *models.Contract) error {
		require.Equal(t, models.ContractStatusPending, c.Status)
		return nil
	})

	c, err := m.svc.Create(ctx, contractRequest(1))
	require.NoError(t, err)
	require.Equal(t, "Pending", c.Status.Label())
}

func TestContractServiceCreateDuplicateID(t *testing.T) {
	m := newContractMocks(t)
	ctx := context.Background()

	m.contracts.EXPECT().GetByID(ctx, int64(1)).Return(&models.Contract{ContractID: 1}, nil)

	_, err := m.svc.Create(ctx, contractRequest(1))
	requireAppError(t, err, http.StatusBadRequest)
}

func TestContractServiceCreateMissingReferences(t *testing.T) {
	m := newContractMocks(t)
	ctx := context.Background()

	m.contracts.EXPECT().GetByID(ctx, int64(1)).Return(nil, nil)
	m.users.EXPECT().GetByID(ctx, gomock.Any()).Return(nil, nil).Times(2)
	m.apartments.EXPECT().GetByID(ctx, int64(10)).Return(nil, nil)

	_, err := m.svc.Create(ctx, contractRequest(1))
	appErr := requireAppError(t, err, http.StatusBadRequest)
	details, ok := appErr.Details.([]dtos.ValidationErrorDetail)
	require.True(t, ok)
	require.Len(t, details, 3)
	require.Equal(t, "agent_id", details[0].Field)
	require.Equal(t, "client_id", details[1].Field)
	require.Equal(t, "apartment_id", details[2].Field)
}

func TestContractServiceStatusTransitions(t *testing.T) {
	m := newContractMocks(t)
	ctx := context.Background()
	stored := &models.Contract{ContractID: 1, AgentID: 1, ClientID: 2, ApartmentID: 10, Status: models.ContractStatusPending}

	for _, tc := range []struct {
		code  string
		label string
	}{{"l", "Active"}, {"f", "Completed"}, {"v", "Pending"}} {
		m.contracts.EXPECT().GetByID(ctx, int64(1)).Return(stored, nil)
		m.referencesExist()
		m.contracts.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		c, err := m.svc.Update(ctx, 1, dtos.PatchContractRequest{Status: utils.Ptr(tc.code)})
		require.NoError(t, err)
		require.Equal(t, tc.label, c.Status.Label())
	}
}

func TestContractServiceAcceptsEndBeforeStart(t *testing.T) {
	m := newContractMocks(t)
	ctx := context.Background()

	req := contractRequest(5)
	req.StartDate = utils.Ptr("2024-03-01")
	req.EndDate = utils.Ptr("2024-01-01")

	m.contracts.EXPECT().GetByID(ctx, int64(5)).Return(nil, nil)
	m.referencesExist()
	m.contracts.EXPECT().Create(ctx, gomock.Any()).Return(nil)

	c, err := m.svc.Create(ctx, req)
	require.NoError(t, err)
	require.True(t, c.EndDate.Before(*c.StartDate))
}

func TestContractServiceDeleteMissing(t *testing.T) {
	m := newContractMocks(t)
	m.contracts.EXPECT().Delete(gomock.Any(), int64(9)).Return(utils.ErrNotFound)
	requireAppError(t, m.svc.Delete(context.Background(), 9), http.StatusNotFound)
}
