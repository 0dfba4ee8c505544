package services

import (
	"context"
	"net/http"

	"github.com/poofware/rental-service/internal/dtos"
	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/repositories"
	"github.com/poofware/rental-service/internal/utils"
	"github.com/sirupsen/logrus"
)

const entityContract = "Contract"

type ContractService struct {
	contracts  repositories.ContractRepository
	users      repositories.UserRepository
	apartments repositories.ApartmentRepository
}

func NewContractService(
	c repositories.ContractRepository,
	u repositories.UserRepository,
	a repositories.ApartmentRepository,
) *ContractService {
	return &ContractService{contracts: c, users: u, apartments: a}
}

func (s *ContractService) List(ctx context.Context, filter repositories.ContractFilter) ([]*models.Contract, error) {
	list, err := s.contracts.List(ctx, filter)
	if err != nil {
		return nil, storeError(entityContract, err)
	}
	return list, nil
}

func (s *ContractService) Get(ctx context.Context, id int64) (*models.Contract, error) {
	c, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(entityContract, err)
	}
	if c == nil {
		return nil, utils.NewNotFoundError("Contract not found")
	}
	return c, nil
}

// Create stores a new contract. The status defaults to pending. The roles
// of the referenced users are not checked, and neither is the date range.
func (s *ContractService) Create(ctx context.Context, req dtos.CreateContractRequest) (*models.Contract, error) {
	existing, err := s.contracts.GetByID(ctx, *req.ContractID)
	if err != nil {
		return nil, storeError(entityContract, err)
	}
	if existing != nil {
		return nil, invalidField("contract_id", "Contract with this id already exists")
	}

	c := &models.Contract{ContractID: *req.ContractID, Status: models.ContractStatusPending}
	if err := req.AsPatch().Apply(c); err != nil {
		return nil, utils.NewValidationError("Invalid contract", err)
	}
	if err := s.checkReferences(ctx, c); err != nil {
		return nil, err
	}
	if err := s.contracts.Create(ctx, c); err != nil {
		return nil, storeError(entityContract, err)
	}
	utils.Logger.WithFields(logrus.Fields{
		"contract_id":  c.ContractID,
		"apartment_id": c.ApartmentID,
		"status":       c.Status,
	}).Info("Contract created")
	return c, nil
}

// Update applies patch. Any status may follow any other.
func (s *ContractService) Update(ctx context.Context, id int64, patch dtos.PatchContractRequest) (*models.Contract, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	prev := c.Status
	if err := patch.Apply(c); err != nil {
		return nil, utils.NewValidationError("Invalid contract", err)
	}
	if err := s.checkReferences(ctx, c); err != nil {
		return nil, err
	}
	if err := s.contracts.Update(ctx, c); err != nil {
		return nil, storeError(entityContract, err)
	}
	if prev != c.Status {
		utils.Logger.WithFields(logrus.Fields{
			"contract_id": c.ContractID,
			"from":        prev.Label(),
			"to":          c.Status.Label(),
		}).Info("Contract status changed")
	}
	return c, nil
}

func (s *ContractService) Delete(ctx context.Context, id int64) error {
	if err := s.contracts.Delete(ctx, id); err != nil {
		return storeError(entityContract, err)
	}
	return nil
}

func (s *ContractService) checkReferences(ctx context.Context, c *models.Contract) error {
	var details []dtos.ValidationErrorDetail

	for _, ref := range []struct {
		field string
		id    int64
	}{{"agent_id", c.AgentID}, {"client_id", c.ClientID}} {
		u, err := s.users.GetByID(ctx, ref.id)
		if err != nil {
			return storeError(entityUser, err)
		}
		if u == nil {
			details = append(details, missingReference(ref.field, ref.id))
		}
	}

	a, err := s.apartments.GetByID(ctx, c.ApartmentID)
	if err != nil {
		return storeError(entityApartment, err)
	}
	if a == nil {
		details = append(details, missingReference("apartment_id", c.ApartmentID))
	}

	if len(details) == 0 {
		return nil
	}
	return &utils.AppError{
		StatusCode: http.StatusBadRequest,
		Code:       utils.ErrCodeValidation,
		Message:    "Contract references a record that does not exist",
		Details:    details,
	}
}
