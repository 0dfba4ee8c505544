package gormrepo

import (
	"context"

	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type buildingRepo struct {
	db *gorm.DB
}

func (r *buildingRepo) Create(ctx context.Context, b *models.Building) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(buildingRowFrom(b)).Error; err != nil {
			return translateError(err)
		}
		return insertLinks(tx, b.BuildingID, b.ApartmentIDs)
	})
}

func (r *buildingRepo) GetByID(ctx context.Context, id int64) (*models.Building, error) {
	db := r.db.WithContext(ctx)
	var row buildingRow
	if err := db.Where("building_id = ?", id).First(&row).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	b := row.model()
	ids, err := listLinks(db, id)
	if err != nil {
		return nil, err
	}
	b.ApartmentIDs = ids
	return b, nil
}

func (r *buildingRepo) List(ctx context.Context) ([]*models.Building, error) {
	db := r.db.WithContext(ctx)
	var rows []buildingRow
	if err := db.Order("building_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	var links []buildingApartmentRow
	if err := db.Order("building_id, apartment_id").Find(&links).Error; err != nil {
		return nil, err
	}

	out := make([]*models.Building, 0, len(rows))
	byID := make(map[int64]*models.Building, len(rows))
	for i := range rows {
		b := rows[i].model()
		out = append(out, b)
		byID[b.BuildingID] = b
	}
	for _, l := range links {
		if b, ok := byID[l.BuildingID]; ok {
			b.ApartmentIDs = append(b.ApartmentIDs, l.ApartmentID)
		}
	}
	return out, nil
}

func (r *buildingRepo) Update(ctx context.Context, b *models.Building) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := expectAffected(tx.Model(&buildingRow{}).
			Where("building_id = ?", b.BuildingID).
			Updates(map[string]any{
				"city":        b.City,
				"street":      b.Street,
				"number":      b.Number,
				"type":        b.Type,
				"description": b.Description,
				"photo":       b.Photo,
			}))
		if err != nil || b.ApartmentIDs == nil {
			return err
		}
		return replaceLinks(tx, b.BuildingID, b.ApartmentIDs)
	})
}

func (r *buildingRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("building_id = ?", id).Delete(&buildingApartmentRow{}).Error; err != nil {
			return err
		}
		return expectAffected(tx.Where("building_id = ?", id).Delete(&buildingRow{}))
	})
}

func (r *buildingRepo) SetApartments(ctx context.Context, buildingID int64, apartmentIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceLinks(tx, buildingID, apartmentIDs)
	})
}

func (r *buildingRepo) AddApartment(ctx context.Context, buildingID, apartmentID int64) error {
	return insertLinks(r.db.WithContext(ctx), buildingID, []int64{apartmentID})
}

func (r *buildingRepo) RemoveApartment(ctx context.Context, buildingID, apartmentID int64) error {
	return expectAffected(r.db.WithContext(ctx).
		Where("building_id = ? AND apartment_id = ?", buildingID, apartmentID).
		Delete(&buildingApartmentRow{}))
}

func (r *buildingRepo) ListApartments(ctx context.Context, buildingID int64) ([]int64, error) {
	return listLinks(r.db.WithContext(ctx), buildingID)
}

func listLinks(db *gorm.DB, buildingID int64) ([]int64, error) {
	ids := []int64{}
	err := db.Model(&buildingApartmentRow{}).
		Where("building_id = ?", buildingID).
		Order("apartment_id").
		Pluck("apartment_id", &ids).Error
	return ids, err
}

func replaceLinks(tx *gorm.DB, buildingID int64, apartmentIDs []int64) error {
	var count int64
	if err := tx.Model(&buildingRow{}).Where("building_id = ?", buildingID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return utils.ErrNotFound
	}
	if err := tx.Where("building_id = ?", buildingID).Delete(&buildingApartmentRow{}).Error; err != nil {
		return err
	}
	return insertLinks(tx, buildingID, apartmentIDs)
}

func insertLinks(tx *gorm.DB, buildingID int64, apartmentIDs []int64) error {
	for _, aID := range apartmentIDs {
		err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&buildingApartmentRow{BuildingID: buildingID, ApartmentID: aID}).Error
		if err != nil {
			return translateError(err)
		}
	}
	return nil
}
