package gormrepo

import (
	"context"
	"time"

	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/repositories"
	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	if u.DateJoined.IsZero() {
		u.DateJoined = time.Now().UTC()
	}
	row := userRowFrom(u)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return translateError(err)
	}
	u.ID = row.ID
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *userRepo) first(ctx context.Context, query string, arg any) (*models.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return row.model(), nil
}

func (r *userRepo) List(ctx context.Context, filter repositories.UserFilter) ([]*models.User, error) {
	q := r.db.WithContext(ctx).Order("id")
	if filter.IsStaff != nil {
		q = q.Where("is_staff = ?", *filter.IsStaff)
	}
	var rows []userRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*models.User, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].model())
	}
	return out, nil
}

func (r *userRepo) Update(ctx context.Context, u *models.User) error {
	return expectAffected(r.db.WithContext(ctx).Model(&userRow{}).Where("id = ?", u.ID).Updates(map[string]any{
		"username":      u.Username,
		"password_hash": u.PasswordHash,
		"email":         u.Email,
		"first_name":    u.FirstName,
		"last_name":     u.LastName,
		"is_staff":      u.IsStaff,
		"is_active":     u.IsActive,
		"passport":      u.Passport,
		"phone":         u.Phone,
		"birth_date":    u.BirthDate,
		"photo":         u.Photo,
	}))
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("agent_id = ? OR client_id = ?", id, id).Delete(&contractRow{}).Error; err != nil {
			return err
		}
		return expectAffected(tx.Where("id = ?", id).Delete(&userRow{}))
	})
}
