package dtos

import "github.com/poofware/rental-service/internal/models"

// ApartmentFields is the writable part of an apartment. It is the body of
// a full (PUT) update. Integer columns are INTEGER in the schema, so
// number, square and cost must fit in 32 bits.
type ApartmentFields struct {
	Number      *int    `json:"number" validate:"required,min=-2147483648,max=2147483647"`
	Square      *int    `json:"square" validate:"required,min=-2147483648,max=2147483647"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	Photo       *string `json:"photo" validate:"omitempty,max=100"`
	Cost        *int    `json:"cost" validate:"required,min=-2147483648,max=2147483647"`
}

type CreateApartmentRequest struct {
	ApartmentID *int64 `json:"apartment_id" validate:"required"`
	ApartmentFields
}

// PatchApartmentRequest is a partial update; nil fields are left alone.
type PatchApartmentRequest struct {
	Number      *int    `json:"number" validate:"omitempty,min=-2147483648,max=2147483647"`
	Square      *int    `json:"square" validate:"omitempty,min=-2147483648,max=2147483647"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	Photo       *string `json:"photo" validate:"omitempty,max=100"`
	Cost        *int    `json:"cost" validate:"omitempty,min=-2147483648,max=2147483647"`
}

func (f ApartmentFields) AsPatch() PatchApartmentRequest {
	return PatchApartmentRequest(f)
}

// Apply copies every non-nil field onto a.
func (p PatchApartmentRequest) Apply(a *models.Apartment) {
	if p.Number != nil {
		a.Number = *p.Number
	}
	if p.Square != nil {
		a.Square = *p.Square
	}
	if p.Description != nil {
		a.Description = p.Description
	}
	if p.Photo != nil {
		a.Photo = p.Photo
	}
	if p.Cost != nil {
		a.Cost = *p.Cost
	}
}

type Apartment struct {
	ApartmentID int64   `json:"apartment_id"`
	Number      int     `json:"number" validate:"omitempty,min=-2147483648,max=2147483647"`
	Square      int     `json:"square" validate:"omitempty,min=-2147483648,max=2147483647"`
	Description *string `json:"description"`
	Photo       *string `json:"photo"`
	Cost        int     `json:"cost" validate:"omitempty,min=-2147483648,max=2147483647"`
}

func NewApartmentFromModel(a *models.Apartment) Apartment {
	return Apartment{
		ApartmentID: a.ApartmentID,
		Number:      a.Number,
		Square:      a.Square,
		Description: a.Description,
		Photo:       a.Photo,
		Cost:        a.Cost,
	}
}

func NewApartmentsFromModels(list []*models.Apartment) []Apartment {
	out := make([]Apartment, 0, len(list))
	for _, a := range list {
		out = append(out, NewApartmentFromModel(a))
	}
	return out
}
