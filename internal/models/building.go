package models

// Building groups apartments. ApartmentIDs mirrors the building_apartments
// link rows and is loaded by the repository on read.
type Building struct {
	BuildingID   int64   `json:"building_id"`
	City         string  `json:"city"`
	Street       string  `json:"street"`
	Number       string  `json:"number"`
	Type         *string `json:"type,omitempty"`
	Description  *string `json:"description,omitempty"`
	Photo        *string `json:"photo,omitempty"`
	ApartmentIDs []int64 `json:"apartment_ids"`
}

// HasApartment reports whether id is linked to the building.
func (b *Building) HasApartment(id int64) bool {
	for _, a := range b.ApartmentIDs {
		if a == id {
			return true
		}
	}
	return false
}
