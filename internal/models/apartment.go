package models

// Apartment is a rentable unit. Its ID is chosen by the caller.
type Apartment struct {
	ApartmentID int64   `json:"apartment_id"`
	Number      int     `json:"number"`
	Square      int     `json:"square"`
	Description *string `json:"description,omitempty"`
	Photo       *string `json:"photo,omitempty"`
	Cost        int     `json:"cost"`
}
