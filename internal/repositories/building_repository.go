package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/poofware/rental-service/internal/models"
	"github.com/poofware/rental-service/internal/utils"
)

type BuildingRepository interface {
	Create(ctx context.Context, b *models.Building) error
	GetByID(ctx context.Context, id int64) (*models.Building, error)
	List(ctx context.Context) ([]*models.Building, error)
	// Update replaces the building columns. A non-nil ApartmentIDs also
	// replaces the link set; nil leaves the links untouched.
	Update(ctx context.Context, b *models.Building) error
	Delete(ctx context.Context, id int64) error

	SetApartments(ctx context.Context, buildingID int64, apartmentIDs []int64) error
	AddApartment(ctx context.Context, buildingID, apartmentID int64) error
	RemoveApartment(ctx context.Context, buildingID, apartmentID int64) error
	ListApartments(ctx context.Context, buildingID int64) ([]int64, error)
}

type buildingRepo struct {
	db DB
}

func NewBuildingRepository(db DB) BuildingRepository {
	return &buildingRepo{db: db}
}

func (r *buildingRepo) Create(ctx context.Context, b *models.Building) error {
	return withTx(ctx, r.db, func(tx DB) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO buildings (building_id, city, street, number, type, description, photo)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, b.BuildingID, b.City, b.Street, b.Number, b.Type, b.Description, b.Photo)
		if err != nil {
			return translateError(err)
		}
		return insertLinks(ctx, tx, b.BuildingID, b.ApartmentIDs)
	})
}

func (r *buildingRepo) GetByID(ctx context.Context, id int64) (*models.Building, error) {
	row := r.db.QueryRow(ctx, baseSelectBuilding()+" WHERE building_id=$1", id)
	b, err := r.scanBuilding(row)
	if err != nil || b == nil {
		return b, err
	}
	b.ApartmentIDs, err = r.ListApartments(ctx, id)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *buildingRepo) List(ctx context.Context) ([]*models.Building, error) {
	rows, err := r.db.Query(ctx, baseSelectBuilding()+" ORDER BY building_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Building{}
	byID := map[int64]*models.Building{}
	for rows.Next() {
		b, err := r.scanBuilding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
		byID[b.BuildingID] = b
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	links, err := r.db.Query(ctx, `
		SELECT building_id, apartment_id FROM building_apartments
		ORDER BY building_id, apartment_id`)
	if err != nil {
		return nil, err
	}
	defer links.Close()
	for links.Next() {
		var bID, aID int64
		if err := links.Scan(&bID, &aID); err != nil {
			return nil, err
		}
		if b, ok := byID[bID]; ok {
			b.ApartmentIDs = append(b.ApartmentIDs, aID)
		}
	}
	return out, links.Err()
}

func (r *buildingRepo) Update(ctx context.Context, b *models.Building) error {
	return withTx(ctx, r.db, func(tx DB) error {
		err := expectAffected(tx.Exec(ctx, `
			UPDATE buildings SET city=$1, street=$2, number=$3, type=$4, description=$5, photo=$6
			WHERE building_id=$7
		`, b.City, b.Street, b.Number, b.Type, b.Description, b.Photo, b.BuildingID))
		if err != nil || b.ApartmentIDs == nil {
			return err
		}
		return replaceLinks(ctx, tx, b.BuildingID, b.ApartmentIDs)
	})
}

// Delete removes the building and its links. Apartments survive.
func (r *buildingRepo) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx DB) error {
		if _, err := tx.Exec(ctx, `DELETE FROM building_apartments WHERE building_id=$1`, id); err != nil {
			return fmt.Errorf("unlink building %d: %w", id, err)
		}
		return expectAffected(tx.Exec(ctx, `DELETE FROM buildings WHERE building_id=$1`, id))
	})
}

func (r *buildingRepo) SetApartments(ctx context.Context, buildingID int64, apartmentIDs []int64) error {
	return withTx(ctx, r.db, func(tx DB) error {
		return replaceLinks(ctx, tx, buildingID, apartmentIDs)
	})
}

func (r *buildingRepo) AddApartment(ctx context.Context, buildingID, apartmentID int64) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO building_apartments (building_id, apartment_id) VALUES ($1,$2)
		ON CONFLICT DO NOTHING
	`, buildingID, apartmentID)
	return translateError(err)
}

func (r *buildingRepo) RemoveApartment(ctx context.Context, buildingID, apartmentID int64) error {
	return expectAffected(r.db.Exec(ctx,
		`DELETE FROM building_apartments WHERE building_id=$1 AND apartment_id=$2`,
		buildingID, apartmentID))
}

func (r *buildingRepo) ListApartments(ctx context.Context, buildingID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT apartment_id FROM building_apartments WHERE building_id=$1 ORDER BY apartment_id`,
		buildingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func replaceLinks(ctx context.Context, tx DB, buildingID int64, apartmentIDs []int64) error {
	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM buildings WHERE building_id=$1)`, buildingID,
	).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return utils.ErrNotFound
	}
	if _, err := tx.Exec(ctx, `DELETE FROM building_apartments WHERE building_id=$1`, buildingID); err != nil {
		return err
	}
	return insertLinks(ctx, tx, buildingID, apartmentIDs)
}

func insertLinks(ctx context.Context, tx DB, buildingID int64, apartmentIDs []int64) error {
	for _, aID := range apartmentIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO building_apartments (building_id, apartment_id) VALUES ($1,$2)
			ON CONFLICT DO NOTHING
		`, buildingID, aID)
		if err != nil {
			return translateError(err)
		}
	}
	return nil
}

func baseSelectBuilding() string {
	return `
		SELECT building_id, city, street, number, type, description, photo
		FROM buildings`
}

func (r *buildingRepo) scanBuilding(row pgx.Row) (*models.Building, error) {
	var b models.Building
	if err := row.Scan(&b.BuildingID, &b.City, &b.Street, &b.Number, &b.Type, &b.Description, &b.Photo); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	b.ApartmentIDs = []int64{}
	return &b, nil
}
