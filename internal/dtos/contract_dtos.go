package dtos

import (
	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/utils"
)

// ContractFields is the writable part of a contract. Status takes the
// short code; an omitted status keeps the current one (pending on create).
type ContractFields struct {
	AgentID     *int64  `json:"agent_id" validate:"required"`
	ClientID    *int64  `json:"client_id" validate:"required"`
	ApartmentID *int64  `json:"apartment_id" validate:"required"`
	Status      *string `json:"status" validate:"omitempty,oneof=v l f"`
	StartDate   *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type CreateContractRequest struct {
	ContractID *int64 `json:"contract_id" validate:"required"`
	ContractFields
}

type PatchContractRequest struct {
	AgentID     *int64  `json:"agent_id"`
	ClientID    *int64  `json:"client_id"`
	ApartmentID *int64  `json:"apartment_id"`
	Status      *string `json:"status" validate:"omitempty,oneof=v l f"`
	StartDate   *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

func (f ContractFields) AsPatch() PatchContractRequest {
	return PatchContractRequest(f)
}

// Apply copies every non-nil field onto c. Inputs are expected to have
// passed validation, so date and status parsing cannot fail here.
func (p PatchContractRequest) Apply(c *models.Contract) error {
	if p.AgentID != nil {
		c.AgentID = *p.AgentID
	}
	if p.ClientID != nil {
		c.ClientID = *p.ClientID
	}
	if p.ApartmentID != nil {
		c.ApartmentID = *p.ApartmentID
	}
	if p.Status != nil {
		s, err := models.ParseContractStatus(*p.Status)
		if err != nil {
			return err
		}
		c.Status = s
	}
	if p.StartDate != nil {
		d, err := utils.ParseDate(p.StartDate)
		if err != nil {
			return err
		}
		c.StartDate = d
	}
	if p.EndDate != nil {
		d, err := utils.ParseDate(p.EndDate)
		if err != nil {
			return err
		}
		c.EndDate = d
	}
	return nil
}

// Contract is the read representation: Status carries the display label
// and StatusCode the stored short code.
type Contract struct {
	ContractID  int64   `json:"contract_id"`
	AgentID     int64   `json:"agent_id"`
	ClientID    int64   `json:"client_id"`
	ApartmentID int64   `json:"apartment_id"`
	Status      string  `json:"status"`
	StatusCode  string  `json:"status_code"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

func NewContractFromModel(c *models.Contract) Contract {
	return Contract{
		ContractID:  c.ContractID,
		AgentID:     c.AgentID,
		ClientID:    c.ClientID,
		ApartmentID: c.ApartmentID,
		Status:      c.Status.Label(),
		StatusCode:  string(c.Status),
		StartDate:   utils.FormatDate(c.StartDate),
		EndDate:     utils.FormatDate(c.EndDate),
	}
}

// ContractWrite is echoed back from create and update with the short code.
type ContractWrite struct {
	ContractID  int64   `json:"contract_id"`
	AgentID     int64   `json:"agent_id"`
	ClientID    int64   `json:"client_id"`
	ApartmentID int64   `json:"apartment_id"`
	Status      string  `json:"status"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

func NewContractWriteFromModel(c *models.Contract) ContractWrite {
	return ContractWrite{
		ContractID:  c.ContractID,
		AgentID:     c.AgentID,
		ClientID:    c.ClientID,
		ApartmentID: c.ApartmentID,
		Status:      string(c.Status),
		StartDate:   utils.FormatDate(c.StartDate),
		EndDate:     utils.FormatDate(c.EndDate),
	}
}
