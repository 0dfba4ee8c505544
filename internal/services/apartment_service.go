package services

import (
	"context"

	"github.com/poofware/rental-service/internal/dtos"
	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/repositories"
	"github.com/poofware/rental-service/internal/utils"
)

const entityApartment = "Apartment"

type ApartmentService struct {
	repo repositories.ApartmentRepository
}

func NewApartmentService(repo repositories.ApartmentRepository) *ApartmentService {
	return &ApartmentService{repo: repo}
}

func (s *ApartmentService) List(ctx context.Context) ([]*models.Apartment, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError(entityApartment, err)
	}
	return list, nil
}

func (s *ApartmentService) Get(ctx context.Context, id int64) (*models.Apartment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(entityApartment, err)
	}
	if a == nil {
		return nil, utils.NewNotFoundError("Apartment not found")
	}
	return a, nil
}

func (s *ApartmentService) Create(ctx context.Context, req dtos.CreateApartmentRequest) (*models.Apartment, error) {
	existing, err := s.repo.GetByID(ctx, *req.ApartmentID)
	if err != nil {
		return nil, storeError(entityApartment, err)
	}
	if existing != nil {
		return nil, invalidField("apartment_id", "Apartment with this id already exists")
	}

	a := &models.Apartment{ApartmentID: *req.ApartmentID}
	req.AsPatch().Apply(a)
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, storeError(entityApartment, err)
	}
	utils.Logger.WithField("apartment_id", a.ApartmentID).Info("Apartment created")
	return a, nil
}

func (s *ApartmentService) Update(ctx context.Context, id int64, patch dtos.PatchApartmentRequest) (*models.Apartment, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(a)
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, storeError(entityApartment, err)
	}
	return a, nil
}

// Delete removes the apartment together with its contracts and building links.
func (s *ApartmentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(entityApartment, err)
	}
	utils.Logger.WithField("apartment_id", id).Info("Apartment deleted")
	return nil
}
