package dtos

import "github.com/poofware/rental-service/internal/models"

// BuildingFields is the writable part of a building. Apartments holds the
// ids of linked apartments; nil keeps the current links.
type BuildingFields struct {
	City        *string `json:"city" validate:"required,min=1,max=100"`
	Street      *string `json:"street" validate:"required,min=1,max=100"`
	Number      *string `json:"number" validate:"required,min=1,max=100"`
	Type        *string `json:"type" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	Photo       *string `json:"photo" validate:"omitempty,max=100"`
	Apartments  []int64 `json:"apartments"`
}

type CreateBuildingRequest struct {
	BuildingID *int64 `json:"building_id" validate:"required"`
	BuildingFields
}

type PatchBuildingRequest struct {
	City        *string `json:"city" validate:"omitempty,min=1,max=100"`
	Street      *string `json:"street" validate:"omitempty,min=1,max=100"`
	Number      *string `json:"number" validate:"omitempty,min=1,max=100"`
	Type        *string `json:"type" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	Photo       *string `json:"photo" validate:"omitempty,max=100"`
	Apartments  []int64 `json:"apartments"`
}

func (f BuildingFields) AsPatch() PatchBuildingRequest {
	return PatchBuildingRequest(f)
}

// Apply copies every non-nil field onto b, including the link set.
func (p PatchBuildingRequest) Apply(b *models.Building) {
	if p.City != nil {
		b.City = *p.City
	}
	if p.Street != nil {
		b.Street = *p.Street
	}
	if p.Number != nil {
		b.Number = *p.Number
	}
	if p.Type != nil {
		b.Type = p.Type
	}
	if p.Description != nil {
		b.Description = p.Description
	}
	if p.Photo != nil {
		b.Photo = p.Photo
	}
	b.ApartmentIDs = p.Apartments
}

// Building is the read representation, embedding each linked apartment.
type Building struct {
	BuildingID  int64       `json:"building_id"`
	City        string      `json:"city"`
	Street      string      `json:"street"`
	Number      string      `json:"number"`
	Type        *string     `json:"type"`
	Description *string     `json:"description"`
	Photo       *string     `json:"photo"`
	Apartments  []Apartment `json:"apartments"`
}

func NewBuildingFromModel(b *models.Building, apartments []*models.Apartment) Building {
	return Building{
		BuildingID:  b.BuildingID,
		City:        b.City,
		Street:      b.Street,
		Number:      b.Number,
		Type:        b.Type,
		Description: b.Description,
		Photo:       b.Photo,
		Apartments:  NewApartmentsFromModels(apartments),
	}
}

// BuildingWrite is echoed back from create and update, with apartment ids.
type BuildingWrite struct {
	BuildingID  int64   `json:"building_id"`
	City        string  `json:"city"`
	Street      string  `json:"street"`
	Number      string  `json:"number"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
	Photo       *string `json:"photo"`
	Apartments  []int64 `json:"apartments"`
}

func NewBuildingWriteFromModel(b *models.Building) BuildingWrite {
	ids := b.ApartmentIDs
	if ids == nil {
		ids = []int64{}
	}
	return BuildingWrite{
		BuildingID:  b.BuildingID,
		City:        b.City,
		Street:      b.Street,
		Number:      b.Number,
		Type:        b.Type,
		Description: b.Description,
		Photo:       b.Photo,
		Apartments:  ids,
	}
}
