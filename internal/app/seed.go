package app

import (
	"context"
	"fmt"
	"time"

	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/repositories"
	"github.com/poofware/rental-service/internal/utils"
)

// Seed fixtures. The sentinel contract marks a database that has already
// been seeded.
const (
	SeedAgentUsername  = "agent.demo"
	SeedClientUsername = "client.demo"
	SeedPassword       = "rental-demo-pass"

	SeedApartmentID    = 1000
	SeedBuildingID     = 1000
	SentinelContractID = 1000
)

// SeedTestData inserts one agent, one client, an apartment inside a
// building, and a pending contract between them. It is idempotent.
func SeedTestData(ctx context.Context, store repositories.Store) error {
	if existing, err := store.Contracts.GetByID(ctx, SentinelContractID); err != nil {
		return fmt.Errorf("failed to check for sentinel contract: %w", err)
	} else if existing != nil {
		utils.Logger.Info("rental-service: Seed data already present; skipping seeding.")
		return nil
	}

	hash, err := utils.HashPassword(SeedPassword)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	agent, err := seedUser(ctx, store.Users, &models.User{
		Username: SeedAgentUsername, PasswordHash: hash,
		FirstName: "Alice", LastName: "Agent", Email: "agent@example.com",
		IsStaff: true, IsActive: true,
	})
	if err != nil {
		return err
	}
	client, err := seedUser(ctx, store.Users, &models.User{
		Username: SeedClientUsername, PasswordHash: hash,
		FirstName: "Carl", LastName: "Client", Email: "client@example.com",
		IsActive: true, Phone: utils.Ptr("5550100"),
	})
	if err != nil {
		return err
	}

	if a, err := store.Apartments.GetByID(ctx, SeedApartmentID); err != nil {
		return fmt.Errorf("seed apartment: %w", err)
	} else if a == nil {
		if err := store.Apartments.Create(ctx, &models.Apartment{
			ApartmentID: SeedApartmentID, Number: 12, Square: 54, Cost: 3500,
			Description: utils.Ptr("Two rooms, south-facing"),
		}); err != nil {
			return fmt.Errorf("seed apartment: %w", err)
		}
	}

	if b, err := store.Buildings.GetByID(ctx, SeedBuildingID); err != nil {
		return fmt.Errorf("seed building: %w", err)
	} else if b == nil {
		if err := store.Buildings.Create(ctx, &models.Building{
			BuildingID: SeedBuildingID, City: "Springfield", Street: "Evergreen Terrace", Number: "742",
			Type: utils.Ptr("apartment block"), ApartmentIDs: []int64{SeedApartmentID},
		}); err != nil {
			return fmt.Errorf("seed building: %w", err)
		}
	}

	start := time.Now().UTC().Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, 30)
	if err := store.Contracts.Create(ctx, &models.Contract{
		ContractID:  SentinelContractID,
		AgentID:     agent.ID,
		ClientID:    client.ID,
		ApartmentID: SeedApartmentID,
		Status:      models.ContractStatusPending,
		StartDate:   &start,
		EndDate:     &end,
	}); err != nil {
		return fmt.Errorf("seed contract: %w", err)
	}

	utils.Logger.Info("rental-service: Seeding completed successfully.")
	return nil
}

func seedUser(ctx context.Context, users repositories.UserRepository, u *models.User) (*models.User, error) {
	existing, err := users.GetByUsername(ctx, u.Username)
	if err != nil {
		return nil, fmt.Errorf("seed user %s: %w", u.Username, err)
	}
	if existing != nil {
		return existing, nil
	}
	if err := users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("seed user %s: %w", u.Username, err)
	}
	return u, nil
}
