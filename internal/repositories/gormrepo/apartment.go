package gormrepo

import (
	"context"

	"github.com/poofware/rental-service/internal/models"
	"gorm.io/gorm"
)

type apartmentRepo struct {
	db *gorm.DB
}

func (r *apartmentRepo) Create(ctx context.Context, a *models.Apartment) error {
	return translateError(r.db.WithContext(ctx).Create(apartmentRowFrom(a)).Error)
}

func (r *apartmentRepo) GetByID(ctx context.Context, id int64) (*models.Apartment, error) {
	var row apartmentRow
	if err := r.db.WithContext(ctx).Where("apartment_id = ?", id).First(&row).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return row.model(), nil
}

func (r *apartmentRepo) List(ctx context.Context) ([]*models.Apartment, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *apartmentRepo) ListByIDs(ctx context.Context, ids []int64) ([]*models.Apartment, error) {
	if len(ids) == 0 {
		return []*models.Apartment{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("apartment_id IN ?", ids))
}

func (r *apartmentRepo) find(q *gorm.DB) ([]*models.Apartment, error) {
	var rows []apartmentRow
	if err := q.Order("apartment_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*models.Apartment, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].model())
	}
	return out, nil
}

func (r *apartmentRepo) Update(ctx context.Context, a *models.Apartment) error {
	return expectAffected(r.db.WithContext(ctx).Model(&apartmentRow{}).
		Where("apartment_id = ?", a.ApartmentID).
		Updates(map[string]any{
			"number":      a.Number,
			"square":      a.Square,
			"description": a.Description,
			"photo":       a.Photo,
			"cost":        a.Cost,
		}))
}

func (r *apartmentRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("apartment_id = ?", id).Delete(&contractRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("apartment_id = ?", id).Delete(&buildingApartmentRow{}).Error; err != nil {
			return err
		}
		return expectAffected(tx.Where("apartment_id = ?", id).Delete(&apartmentRow{}))
	})
}
