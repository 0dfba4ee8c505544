package dtos

import (
	"time"

	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/utils"
)

// UserFields is the writable profile of a user, without the password.
type UserFields struct {
	Username  *string `json:"username" validate:"required,min=1,max=150"`
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	IsStaff   *bool   `json:"is_staff"`
	IsActive  *bool   `json:"is_active"`
	Passport  *string `json:"passport" validate:"omitempty,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=11"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Photo     *string `json:"photo" validate:"omitempty,max=100"`
}

type CreateUserRequest struct {
	UserFields
	Password *string `json:"password" validate:"required,min=1,max=72"`
}

// ReplaceUserRequest is the PUT body. The password may be omitted to keep
// the current one.
type ReplaceUserRequest struct {
	UserFields
	Password *string `json:"password" validate:"omitempty,min=1,max=72"`
}

type PatchUserRequest struct {
	Username  *string `json:"username" validate:"omitempty,min=1,max=150"`
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string `json:"last_name" validate:"omitempty,max=150"`
	IsStaff   *bool   `json:"is_staff"`
	IsActive  *bool   `json:"is_active"`
	Passport  *string `json:"passport" validate:"omitempty,max=100"`
	Phone     *string `json:"phone" validate:"omitempty,max=11"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Photo     *string `json:"photo" validate:"omitempty,max=100"`
	Password  *string `json:"password" validate:"omitempty,min=1,max=72"`
}

func (r ReplaceUserRequest) AsPatch() PatchUserRequest {
	f := r.UserFields
	return PatchUserRequest{
		Username: f.Username, Email: f.Email, FirstName: f.FirstName, LastName: f.LastName,
		IsStaff: f.IsStaff, IsActive: f.IsActive, Passport: f.Passport, Phone: f.Phone,
		BirthDate: f.BirthDate, Photo: f.Photo, Password: r.Password,
	}
}

// Apply copies every non-nil profile field onto u. The password is left to
// the caller, which must hash it.
func (p PatchUserRequest) Apply(u *models.User) error {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.IsStaff != nil {
		u.IsStaff = *p.IsStaff
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if p.Passport != nil {
		u.Passport = p.Passport
	}
	if p.Phone != nil {
		u.Phone = p.Phone
	}
	if p.BirthDate != nil {
		d, err := utils.ParseDate(p.BirthDate)
		if err != nil {
			return err
		}
		u.BirthDate = d
	}
	if p.Photo != nil {
		u.Photo = p.Photo
	}
	return nil
}

type User struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	IsStaff    bool      `json:"is_staff"`
	IsActive   bool      `json:"is_active"`
	Passport   *string   `json:"passport"`
	Phone      *string   `json:"phone"`
	BirthDate  *string   `json:"birth_date"`
	Photo      *string   `json:"photo"`
	DateJoined time.Time `json:"date_joined"`
}

func NewUserFromModel(u *models.User) User {
	return User{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		IsStaff:    u.IsStaff,
		IsActive:   u.IsActive,
		Passport:   u.Passport,
		Phone:      u.Phone,
		BirthDate:  utils.FormatDate(u.BirthDate),
		Photo:      u.Photo,
		DateJoined: u.DateJoined,
	}
}

func NewUsersFromModels(list []*models.User) []User {
	out := make([]User, 0, len(list))
	for _, u := range list {
		out = append(out, NewUserFromModel(u))
	}
	return out
}
