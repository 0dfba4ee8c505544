package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/poofware/rental-service/internal/dtos"
	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/repositories"
	"github.com/poofware/rental-service/internal/utils"
)

const entityBuilding = "Building"

type BuildingService struct {
	buildings  repositories.BuildingRepository
	apartments repositories.ApartmentRepository
}

func NewBuildingService(b repositories.BuildingRepository, a repositories.ApartmentRepository) *BuildingService {
	return &BuildingService{buildings: b, apartments: a}
}

// List returns every building with its apartments embedded.
func (s *BuildingService) List(ctx context.Context) ([]dtos.Building, error) {
	buildings, err := s.buildings.List(ctx)
	if err != nil {
		return nil, storeError(entityBuilding, err)
	}
	apartments, err := s.apartments.List(ctx)
	if err != nil {
		return nil, storeError(entityApartment, err)
	}
	byID := make(map[int64]*models.Apartment, len(apartments))
	for _, a := range apartments {
		byID[a.ApartmentID] = a
	}

	out := make([]dtos.Building, 0, len(buildings))
	for _, b := range buildings {
		nested := make([]*models.Apartment, 0, len(b.ApartmentIDs))
		for _, id := range b.ApartmentIDs {
			if a, ok := byID[id]; ok {
				nested = append(nested, a)
			}
		}
		out = append(out, dtos.NewBuildingFromModel(b, nested))
	}
	return out, nil
}

// Get returns one building with its apartments embedded.
func (s *BuildingService) Get(ctx context.Context, id int64) (*dtos.Building, error) {
	b, err := s.getModel(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.nest(ctx, b)
}

func (s *BuildingService) Create(ctx context.Context, req dtos.CreateBuildingRequest) (*models.Building, error) {
	existing, err := s.buildings.GetByID(ctx, *req.BuildingID)
	if err != nil {
		return nil, storeError(entityBuilding, err)
	}
	if existing != nil {
		return nil, invalidField("building_id", "Building with this id already exists")
	}

	b := &models.Building{BuildingID: *req.BuildingID}
	req.AsPatch().Apply(b)
	if b.ApartmentIDs == nil {
		b.ApartmentIDs = []int64{}
	}
	if err := s.checkApartments(ctx, b.ApartmentIDs); err != nil {
		return nil, err
	}
	if err := s.buildings.Create(ctx, b); err != nil {
		return nil, storeError(entityBuilding, err)
	}
	utils.Logger.WithField("building_id", b.BuildingID).Info("Building created")
	return b, nil
}

// Update applies patch. A nil apartment list keeps the current links.
func (s *BuildingService) Update(ctx context.Context, id int64, patch dtos.PatchBuildingRequest) (*models.Building, error) {
	b, err := s.getModel(ctx, id)
	if err != nil {
		return nil, err
	}
	current := b.ApartmentIDs
	patch.Apply(b)
	if b.ApartmentIDs != nil {
		if err := s.checkApartments(ctx, b.ApartmentIDs); err != nil {
			return nil, err
		}
	}
	if err := s.buildings.Update(ctx, b); err != nil {
		return nil, storeError(entityBuilding, err)
	}
	if b.ApartmentIDs == nil {
		b.ApartmentIDs = current
	}
	return b, nil
}

func (s *BuildingService) Delete(ctx context.Context, id int64) error {
	if err := s.buildings.Delete(ctx, id); err != nil {
		return storeError(entityBuilding, err)
	}
	utils.Logger.WithField("building_id", id).Info("Building deleted")
	return nil
}

// AddApartment links an existing apartment to an existing building. Linking
// twice is not an error.
func (s *BuildingService) AddApartment(ctx context.Context, buildingID, apartmentID int64) (*dtos.Building, error) {
	if _, err := s.getModel(ctx, buildingID); err != nil {
		return nil, err
	}
	a, err := s.apartments.GetByID(ctx, apartmentID)
	if err != nil {
		return nil, storeError(entityApartment, err)
	}
	if a == nil {
		return nil, utils.NewNotFoundError("Apartment not found")
	}
	if err := s.buildings.AddApartment(ctx, buildingID, apartmentID); err != nil {
		return nil, storeError(entityBuilding, err)
	}
	return s.Get(ctx, buildingID)
}

// RemoveApartment unlinks an apartment; the apartment itself is kept.
func (s *BuildingService) RemoveApartment(ctx context.Context, buildingID, apartmentID int64) error {
	if err := s.buildings.RemoveApartment(ctx, buildingID, apartmentID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return &utils.AppError{
				StatusCode: http.StatusNotFound,
				Code:       utils.ErrCodeNotFound,
				Message:    "Apartment is not linked to this building",
			}
		}
		return storeError(entityBuilding, err)
	}
	return nil
}

func (s *BuildingService) getModel(ctx context.Context, id int64) (*models.Building, error) {
	b, err := s.buildings.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(entityBuilding, err)
	}
	if b == nil {
		return nil, utils.NewNotFoundError("Building not found")
	}
	return b, nil
}

func (s *BuildingService) nest(ctx context.Context, b *models.Building) (*dtos.Building, error) {
	apartments, err := s.apartments.ListByIDs(ctx, b.ApartmentIDs)
	if err != nil {
		return nil, storeError(entityApartment, err)
	}
	out := dtos.NewBuildingFromModel(b, apartments)
	return &out, nil
}

// checkApartments rejects ids that do not name an existing apartment.
func (s *BuildingService) checkApartments(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.apartments.ListByIDs(ctx, ids)
	if err != nil {
		return storeError(entityApartment, err)
	}
	known := make(map[int64]bool, len(found))
	for _, a := range found {
		known[a.ApartmentID] = true
	}
	var details []dtos.ValidationErrorDetail
	for _, id := range ids {
		if !known[id] {
			details = append(details, missingReference("apartments", id))
		}
	}
	if len(details) == 0 {
		return nil
	}
	return &utils.AppError{
		StatusCode: http.StatusBadRequest,
		Code:       utils.ErrCodeValidation,
		Message:    "Unknown apartment",
		Details:    details,
	}
}
