package gormrepo

import (
	"time"

	"github.com/poofware/rental-service/internal/models"
)

type userRow struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Username     string     `gorm:"column:username;size:150;not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;not null;default:''"`
	Email        string     `gorm:"column:email;size:254;not null;default:''"`
	FirstName    string     `gorm:"column:first_name;size:150;not null;default:''"`
	LastName     string     `gorm:"column:last_name;size:150;not null;default:''"`
	IsStaff      bool       `gorm:"column:is_staff;not null;index"`
	IsActive     bool       `gorm:"column:is_active;not null"`
	Passport     *string    `gorm:"column:passport;size:100"`
	Phone        *string    `gorm:"column:phone;size:11"`
	BirthDate    *time.Time `gorm:"column:birth_date"`
	Photo        *string    `gorm:"column:photo;size:100"`
	DateJoined   time.Time  `gorm:"column:date_joined;not null"`

	AgentContracts  []contractRow `gorm:"foreignKey:AgentID;references:ID;constraint:OnDelete:CASCADE"`
	ClientContracts []contractRow `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE"`
}

func (userRow) TableName() string { return "users" }

func userRowFrom(u *models.User) *userRow {
	return &userRow{
		ID: u.ID, Username: u.Username, PasswordHash: u.PasswordHash, Email: u.Email,
		FirstName: u.FirstName, LastName: u.LastName, IsStaff: u.IsStaff, IsActive: u.IsActive,
		Passport: u.Passport, Phone: u.Phone, BirthDate: u.BirthDate, Photo: u.Photo,
		DateJoined: u.DateJoined,
	}
}

func (r *userRow) model() *models.User {
	return &models.User{
		ID: r.ID, Username: r.Username, PasswordHash: r.PasswordHash, Email: r.Email,
		FirstName: r.FirstName, LastName: r.LastName, IsStaff: r.IsStaff, IsActive: r.IsActive,
		Passport: r.Passport, Phone: r.Phone, BirthDate: utcDate(r.BirthDate), Photo: r.Photo,
		DateJoined: r.DateJoined.UTC(),
	}
}

type apartmentRow struct {
	ApartmentID int64   `gorm:"column:apartment_id;primaryKey;autoIncrement:false"`
	Number      int     `gorm:"column:number;not null"`
	Square      int     `gorm:"column:square;not null"`
	Description *string `gorm:"column:description;size:255"`
	Photo       *string `gorm:"column:photo;size:100"`
	Cost        int     `gorm:"column:cost;not null"`

	Contracts []contractRow          `gorm:"foreignKey:ApartmentID;references:ApartmentID;constraint:OnDelete:CASCADE"`
	Links     []buildingApartmentRow `gorm:"foreignKey:ApartmentID;references:ApartmentID;constraint:OnDelete:CASCADE"`
}

func (apartmentRow) TableName() string { return "apartments" }

func apartmentRowFrom(a *models.Apartment) *apartmentRow {
	return &apartmentRow{
		ApartmentID: a.ApartmentID, Number: a.Number, Square: a.Square,
		Description: a.Description, Photo: a.Photo, Cost: a.Cost,
	}
}

func (r *apartmentRow) model() *models.Apartment {
	return &models.Apartment{
		ApartmentID: r.ApartmentID, Number: r.Number, Square: r.Square,
		Description: r.Description, Photo: r.Photo, Cost: r.Cost,
	}
}

type buildingRow struct {
	BuildingID  int64   `gorm:"column:building_id;primaryKey;autoIncrement:false"`
	City        string  `gorm:"column:city;size:100;not null"`
	Street      string  `gorm:"column:street;size:100;not null"`
	Number      string  `gorm:"column:number;size:100;not null"`
	Type        *string `gorm:"column:type;size:100"`
	Description *string `gorm:"column:description;size:255"`
	Photo       *string `gorm:"column:photo;size:100"`

	Links []buildingApartmentRow `gorm:"foreignKey:BuildingID;references:BuildingID;constraint:OnDelete:CASCADE"`
}

func (buildingRow) TableName() string { return "buildings" }

func buildingRowFrom(b *models.Building) *buildingRow {
	return &buildingRow{
		BuildingID: b.BuildingID, City: b.City, Street: b.Street, Number: b.Number,
		Type: b.Type, Description: b.Description, Photo: b.Photo,
	}
}

func (r *buildingRow) model() *models.Building {
	return &models.Building{
		BuildingID: r.BuildingID, City: r.City, Street: r.Street, Number: r.Number,
		Type: r.Type, Description: r.Description, Photo: r.Photo,
		ApartmentIDs: []int64{},
	}
}

// Foreign keys of the link and contract tables are declared on the parent
// rows; a child-side field named after the parent would be read as has-one.
type buildingApartmentRow struct {
	BuildingID  int64 `gorm:"column:building_id;primaryKey;autoIncrement:false"`
	ApartmentID int64 `gorm:"column:apartment_id;primaryKey;autoIncrement:false;index"`
}

func (buildingApartmentRow) TableName() string { return "building_apartments" }

type contractRow struct {
	ContractID  int64      `gorm:"column:contract_id;primaryKey;autoIncrement:false"`
	AgentID     int64      `gorm:"column:agent_id;not null;index"`
	ClientID    int64      `gorm:"column:client_id;not null;index"`
	ApartmentID int64      `gorm:"column:apartment_id;not null;index"`
	Status      string     `gorm:"column:status;size:1;not null;default:v;check:chk_contracts_status,status IN ('v','l','f')"`
	StartDate   *time.Time `gorm:"column:start_date"`
	EndDate     *time.Time `gorm:"column:end_date"`
}

func (contractRow) TableName() string { return "contracts" }

func contractRowFrom(c *models.Contract) *contractRow {
	return &contractRow{
		ContractID: c.ContractID, AgentID: c.AgentID, ClientID: c.ClientID,
		ApartmentID: c.ApartmentID, Status: string(c.Status),
		StartDate: c.StartDate, EndDate: c.EndDate,
	}
}

func (r *contractRow) model() *models.Contract {
	return &models.Contract{
		ContractID: r.ContractID, AgentID: r.AgentID, ClientID: r.ClientID,
		ApartmentID: r.ApartmentID, Status: models.ContractStatus(r.Status),
		StartDate: utcDate(r.StartDate), EndDate: utcDate(r.EndDate),
	}
}

func utcDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
