// Package repotest holds the behaviour every repositories.Store must show,
// shared by the sqlite and Postgres test runs.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/repositories"
	"github.com/poofware/rental-service/internal/utils"
	"github.com/stretchr/testify/require"
)

// NewStoreFunc returns an empty, migrated store private to t.
type NewStoreFunc func(t *testing.T) repositories.Store

// Run executes the full store contract against stores built by newStore.
func Run(t *testing.T, newStore NewStoreFunc) {
	tests := []struct {
		name string
		fn   func(t *testing.T, s repositories.Store)
	}{
		{"ApartmentLifecycle", testApartmentLifecycle},
		{"DuplicateContractIDFails", testDuplicateContractID},
		{"ContractDanglingReferenceFails", testContractDanglingReference},
		{"DeletingApartmentCascadesContractsAndLinks", testApartmentDeleteCascade},
		{"DeletingUserCascadesContracts", testUserDeleteCascade},
		{"RemovingApartmentFromBuildingKeepsApartment", testBuildingRemoveApartment},
		{"DeletingBuildingKeepsApartments", testBuildingDeleteKeepsApartments},
		{"BuildingUpdateReplacesLinks", testBuildingUpdateLinks},
		{"StaffFilterPartitionsUsers", testStaffFilter},
		{"DuplicateUsernameFails", testDuplicateUsername},
		{"MissingRowsAreReported", testMissingRows},
		{"ContractStatusUpdateAndFilters", testContractStatusAndFilters},
		{"EndDateBeforeStartDateAccepted", testEndBeforeStartAccepted},
		{"ForeignKeysAreEnforced", testForeignKeysEnforced},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.fn(t, newStore(t))
		})
	}
}

func seedUser(t *testing.T, s repositories.Store, username string, staff bool) *models.User {
	t.Helper()
	u := &models.User{Username: username, IsStaff: staff, IsActive: true}
	require.NoError(t, s.Users.Create(context.Background(), u))
	require.NotZero(t, u.ID, "user id should be assigned on create")
	return u
}

func seedApartment(t *testing.T, s repositories.Store, id int64) *models.Apartment {
	t.Helper()
	a := &models.Apartment{ApartmentID: id, Number: int(id % 100), Square: 50, Cost: 1000}
	require.NoError(t, s.Apartments.Create(context.Background(), a))
	return a
}

func seedContract(t *testing.T, s repositories.Store, id, agentID, clientID, apartmentID int64) *models.Contract {
	t.Helper()
	c := &models.Contract{ContractID: id, AgentID: agentID, ClientID: clientID, ApartmentID: apartmentID}
	require.NoError(t, s.Contracts.Create(context.Background(), c))
	return c
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func testApartmentLifecycle(t *testing.T, s repositories.Store) {
	ctx := context.Background()
	a := &models.Apartment{ApartmentID: 4000, Number: 42, Square: 80, Cost: 50000, Description: utils.Ptr("two rooms")}
	require.NoError(t, s.Apartments.Create(ctx, a))

	got, err := s.Apartments.GetByID(ctx, 4000)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, *a, *got)

	got.Cost = 55000
	require.NoError(t, s.Apartments.Update(ctx, got))

	got, err = s.Apartments.GetByID(ctx, 4000)
	require.NoError(t, err)
	require.Equal(t, 55000, got.Cost)
	require.Equal(t, 42, got.Number)

	list, err := s.Apartments.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.Apartments.Delete(ctx, 4000))
	got, err = s.Apartments.GetByID(ctx, 4000)
	require.NoError(t, err)
	require.Nil(t, got, "deleted apartment should be gone")
}

func testDuplicateContractID(t *testing.T, s repositories.Store) {
	agent := seedUser(t, s, "agent", true)
	client := seedUser(t, s, "client", false)
	seedApartment(t, s, 10)
	seedContract(t, s, 1, agent.ID, client.ID, 10)

	err := s.Contracts.Create(context.Background(), &models.Contract{
		ContractID: 1, AgentID: agent.ID, ClientID: client.ID, ApartmentID: 10,
	})
	require.ErrorIs(t, err, utils.ErrDuplicateKey)
}

func testContractDanglingReference(t *testing.T, s repositories.Store) {
	agent := seedUser(t, s, "agent", true)
	client := seedUser(t, s, "client", false)

	err := s.Contracts.Create(context.Background(), &models.Contract{
		ContractID: 1, AgentID: agent.ID, ClientID: client.ID, ApartmentID: 999,
	})
	require.ErrorIs(t, err, utils.ErrForeignKeyViolation)
}

func testApartmentDeleteCascade(t *testing.T, s repositories.Store) {
	ctx := context.Background()
	agent := seedUser(t, s, "agent", true)
	client := seedUser(t, s, "client", false)
	seedApartment(t, s, 10)
	seedApartment(t, s, 11)
	seedContract(t, s, 1, agent.ID, client.ID, 10)
	seedContract(t, s, 2, agent.ID, client.ID, 10)
	seedContract(t, s, 3, agent.ID, client.ID, 11)
	require.NoError(t, s.Buildings.Create(ctx, &models.Building{
		BuildingID: 100, City: "Moscow", Street: "Tverskaya", Number: "1", ApartmentIDs: []int64{10, 11},
	}))

	require.NoError(t, s.Apartments.Delete(ctx, 10))

	for _, id := range []int64{1, 2} {
		c, err := s.Contracts.GetByID(ctx, id)
		require.NoError(t, err)
		require.Nil(t, c, "contract %d should cascade with its apartment", id)
	}
	c, err := s.Contracts.GetByID(ctx, 3)
	require.NoError(t, err)
	require.NotNil(t, c, "contract on another apartment must survive")

	b, err := s.Buildings.GetByID(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, b, "building survives apartment delete")
	require.Equal(t, []int64{11}, b.ApartmentIDs)
}

func testUserDeleteCascade(t *testing.T, s repositories.Store) {
	ctx := context.Background()
	agent := seedUser(t, s, "agent", true)
	other := seedUser(t, s, "agent2", true)
	client := seedUser(t, s, "client", false)
	seedApartment(t, s, 10)
	seedContract(t, s, 1, agent.ID, client.ID, 10)
	seedContract(t, s, 2, other.ID, client.ID, 10)
	seedContract(t, s, 3, other.ID, other.ID, 10)

	require.NoError(t, s.Users.Delete(ctx, client.ID))

	remaining, err := s.Contracts.List(ctx, repositories.ContractFilter{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, int64(3), remaining[0].ContractID)

	a, err := s.Apartments.GetByID(ctx, 10)
	require.NoError(t, err)
	require.NotNil(t, a, "apartment is not owned by the user")
}

func testBuildingRemoveApartment(t *testing.T, s repositories.Store) {
	ctx := context.Background()
	seedApartment(t, s, 2001)
	seedApartment(t, s, 2002)
	require.NoError(t, s.Buildings.Create(ctx, &models.Building{
		BuildingID: 2000, City: "Kazan", Street: "Baumana", Number: "5", ApartmentIDs: []int64{2001, 2002},
	}))

	ids, err := s.Buildings.ListApartments(ctx, 2000)
	require.NoError(t, err)
	require.Equal(t, []int64{2001, 2002}, ids)

	require.NoError(t, s.Buildings.RemoveApartment(ctx, 2000, 2001))
	ids, err = s.Buildings.ListApartments(ctx, 2000)
	require.NoError(t, err)
	require.Equal(t, []int64{2002}, ids)

	a, err := s.Apartments.GetByID(ctx, 2001)
	require.NoError(t, err)
	require.NotNil(t, a, "unlinked apartment must still exist")

	require.ErrorIs(t, s.Buildings.RemoveApartment(ctx, 2000, 2001), utils.ErrNotFound)

	require.NoError(t, s.Buildings.AddApartment(ctx, 2000, 2001))
	require.NoError(t, s.Buildings.AddApartment(ctx, 2000, 2001), "linking twice is a no-op")
	ids, err = s.Buildings.ListApartments(ctx, 2000)
	require.NoError(t, err)
	require.Equal(t, []int64{2001, 2002}, ids)

	require.ErrorIs(t, s.Buildings.AddApartment(ctx, 2000, 9999), utils.ErrForeignKeyViolation)
}

func testBuildingDeleteKeepsApartments(t *testing.T, s repositories.Store) {
	ctx := context.Background()
	seedApartment(t, s, 2001)
	seedApartment(t, s, 2002)
	require.NoError(t, s.Buildings.Create(ctx, &models.Building{
		BuildingID: 2000, City: "Kazan", Street: "Baumana", Number: "5", ApartmentIDs: []int64{2001, 2002},
	}))

	require.NoError(t, s.Buildings.Delete(ctx, 2000))

	b, err := s.Buildings.GetByID(ctx, 2000)
	require.NoError(t, err)
	require.Nil(t, b)

	list, err := s.Apartments.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2, "apartments survive building delete")
}

func testBuildingUpdateLinks(t *testing.T, s repositories.Store) {
	ctx := context.Background()
	seedApartment(t, s, 1)
	seedApartment(t, s, 2)
	seedApartment(t, s, 3)
	b := &models.Building{BuildingID: 7, City: "Omsk", Street: "Lenina", Number: "3", ApartmentIDs: []int64{1}}
	require.NoError(t, s.Buildings.Create(ctx, b))

	b.City = "Tomsk"
	b.ApartmentIDs = nil
	require.NoError(t, s.Buildings.Update(ctx, b))
	got, err := s.Buildings.GetByID(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, "Tomsk", got.City)
	require.Equal(t, []int64{1}, got.ApartmentIDs, "nil link set leaves links untouched")

	b.ApartmentIDs = []int64{2, 3}
	require.NoError(t, s.Buildings.Update(ctx, b))
	got, err = s.Buildings.GetByID(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, []int64{2, 3}, got.ApartmentIDs)

	require.NoError(t, s.Buildings.SetApartments(ctx, 7, []int64{}))
	all, err := s.Buildings.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Empty(t, all[0].ApartmentIDs)

	require.ErrorIs(t, s.Buildings.SetApartments(ctx, 8, []int64{1}), utils.ErrNotFound)
}

func testStaffFilter(t *testing.T, s repositories.Store) {
	ctx := context.Background()
	seedUser(t, s, "agent1", true)
	seedUser(t, s, "agent2", true)
	seedUser(t, s, "client1", false)

	agents, err := s.Users.List(ctx, repositories.UserFilter{IsStaff: utils.Ptr(true)})
	require.NoError(t, err)
	require.Len(t, agents, 2)
	for _, u := range agents {
		require.True(t, u.IsStaff)
	}

	clients, err := s.Users.List(ctx, repositories.UserFilter{IsStaff: utils.Ptr(false)})
	require.NoError(t, err)
	require.Len(t, clients, 1)
	require.Equal(t, "client1", clients[0].Username)

	all, err := s.Users.List(ctx, repositories.UserFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func testDuplicateUsername(t *testing.T, s repositories.Store) {
	seedUser(t, s, "alice", false)
	err := s.Users.Create(context.Background(), &models.User{Username: "alice", IsActive: true})
	require.ErrorIs(t, err, utils.ErrDuplicateKey)

	u, err := s.Users.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, u)
	u.Phone = utils.Ptr("79990001122")
	u.BirthDate = date(1990, time.May, 17)
	require.NoError(t, s.Users.Update(context.Background(), u))

	got, err := s.Users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, "79990001122", *got.Phone)
	require.Equal(t, "1990-05-17", got.BirthDate.Format(utils.DateLayout))
}

func testMissingRows(t *testing.T, s repositories.Store) {
	ctx := context.Background()

	u, err := s.Users.GetByID(ctx, 424242)
	require.NoError(t, err)
	require.Nil(t, u)
	b, err := s.Buildings.GetByID(ctx, 424242)
	require.NoError(t, err)
	require.Nil(t, b)
	c, err := s.Contracts.GetByID(ctx, 424242)
	require.NoError(t, err)
	require.Nil(t, c)

	require.ErrorIs(t, s.Apartments.Update(ctx, &models.Apartment{ApartmentID: 424242}), utils.ErrNotFound)
	require.ErrorIs(t, s.Apartments.Delete(ctx, 424242), utils.ErrNotFound)
	require.ErrorIs(t, s.Users.Delete(ctx, 424242), utils.ErrNotFound)
	require.ErrorIs(t, s.Buildings.Delete(ctx, 424242), utils.ErrNotFound)
	require.ErrorIs(t, s.Contracts.Delete(ctx, 424242), utils.ErrNotFound)
	require.ErrorIs(t, s.Contracts.Update(ctx, &models.Contract{ContractID: 424242, Status: models.ContractStatusActive}), utils.ErrNotFound)
}

func testContractStatusAndFilters(t *testing.T, s repositories.Store) {
	ctx := context.Background()
	agent := seedUser(t, s, "agent", true)
	client := seedUser(t, s, "client", false)
	seedApartment(t, s, 10)
	seedApartment(t, s, 11)
	c := seedContract(t, s, 1, agent.ID, client.ID, 10)
	seedContract(t, s, 2, agent.ID, client.ID, 11)
	require.Equal(t, models.ContractStatusPending, c.Status, "status defaults to pending")

	for _, next := range []models.ContractStatus{models.ContractStatusActive, models.ContractStatusCompleted, models.ContractStatusPending} {
		c.Status = next
		require.NoError(t, s.Contracts.Update(ctx, c))
		got, err := s.Contracts.GetByID(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, next, got.Status)
	}

	c.Status = models.ContractStatusActive
	require.NoError(t, s.Contracts.Update(ctx, c))

	active, err := s.Contracts.List(ctx, repositories.ContractFilter{Status: utils.Ptr(models.ContractStatusActive)})
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, int64(1), active[0].ContractID)

	byApartment, err := s.Contracts.List(ctx, repositories.ContractFilter{ApartmentID: utils.Ptr(int64(11))})
	require.NoError(t, err)
	require.Len(t, byApartment, 1)
	require.Equal(t, int64(2), byApartment[0].ContractID)

	byAgent, err := s.Contracts.List(ctx, repositories.ContractFilter{AgentID: &agent.ID, ClientID: &client.ID})
	require.NoError(t, err)
	require.Len(t, byAgent, 2)
}

func testEndBeforeStartAccepted(t *testing.T, s repositories.Store) {
	ctx := context.Background()
	agent := seedUser(t, s, "agent", true)
	client := seedUser(t, s, "client", false)
	seedApartment(t, s, 10)

	c := &models.Contract{
		ContractID: 5, AgentID: agent.ID, ClientID: client.ID, ApartmentID: 10,
		Status: models.ContractStatusActive, StartDate: date(2024, time.March, 1), EndDate: date(2024, time.January, 1),
	}
	require.NoError(t, s.Contracts.Create(ctx, c))

	got, err := s.Contracts.GetByID(ctx, 5)
	require.NoError(t, err)
	require.True(t, got.EndDate.Before(*got.StartDate))
	require.Equal(t, "2024-03-01", got.StartDate.Format(utils.DateLayout))
}

// testForeignKeysEnforced checks that parents insert cleanly and that every
// child table rejects dangling references in both directions.
func testForeignKeysEnforced(t *testing.T, s repositories.Store) {
	ctx := context.Background()
	agent := seedUser(t, s, "agent", true)
	client := seedUser(t, s, "client", false)
	seedApartment(t, s, 4000)
	require.NoError(t, s.Buildings.Create(ctx, &models.Building{
		BuildingID: 400, City: "Perm", Street: "Lenina", Number: "7", ApartmentIDs: []int64{4000},
	}), "building with a link to an existing apartment")
	seedContract(t, s, 40, agent.ID, client.ID, 4000)

	require.ErrorIs(t, s.Buildings.AddApartment(ctx, 400, 4001), utils.ErrForeignKeyViolation,
		"link to a missing apartment")
	require.ErrorIs(t, s.Buildings.AddApartment(ctx, 401, 4000), utils.ErrForeignKeyViolation,
		"link from a missing building")
	require.ErrorIs(t, s.Contracts.Create(ctx, &models.Contract{
		ContractID: 41, AgentID: agent.ID + 100, ClientID: client.ID, ApartmentID: 4000,
	}), utils.ErrForeignKeyViolation, "contract with a missing agent")
	require.ErrorIs(t, s.Contracts.Create(ctx, &models.Contract{
		ContractID: 42, AgentID: agent.ID, ClientID: client.ID + 100, ApartmentID: 4000,
	}), utils.ErrForeignKeyViolation, "contract with a missing client")

	c := seedContract(t, s, 43, agent.ID, client.ID, 4000)
	c.ApartmentID = 4001
	c.Status = models.ContractStatusActive
	require.ErrorIs(t, s.Contracts.Update(ctx, c), utils.ErrForeignKeyViolation,
		"update to a missing apartment")

	seedApartment(t, s, 4001)
	require.NoError(t, s.Buildings.AddApartment(ctx, 400, 4001))
	require.NoError(t, s.Apartments.Delete(ctx, 4001))
	ids, err := s.Buildings.ListApartments(ctx, 400)
	require.NoError(t, err)
	require.Equal(t, []int64{4000}, ids)
}
