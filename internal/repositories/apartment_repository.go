package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/poofware/rental-service/internal/models"
)

type ApartmentRepository interface {
	Create(ctx context.Context, a *models.Apartment) error
	GetByID(ctx context.Context, id int64) (*models.Apartment, error)
	List(ctx context.Context) ([]*models.Apartment, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*models.Apartment, error)
	Update(ctx context.Context, a *models.Apartment) error
	Delete(ctx context.Context, id int64) error
}

type apartmentRepo struct {
	db DB
}

func NewApartmentRepository(db DB) ApartmentRepository {
	return &apartmentRepo{db: db}
}

func (r *apartmentRepo) Create(ctx context.Context, a *models.Apartment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO apartments (apartment_id, number, square, description, photo, cost)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, a.ApartmentID, a.Number, a.Square, a.Description, a.Photo, a.Cost)
	return translateError(err)
}

func (r *apartmentRepo) GetByID(ctx context.Context, id int64) (*models.Apartment, error) {
	row := r.db.QueryRow(ctx, baseSelectApartment()+" WHERE apartment_id=$1", id)
	return r.scanApartment(row)
}

func (r *apartmentRepo) List(ctx context.Context) ([]*models.Apartment, error) {
	rows, err := r.db.Query(ctx, baseSelectApartment()+" ORDER BY apartment_id")
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *apartmentRepo) ListByIDs(ctx context.Context, ids []int64) ([]*models.Apartment, error) {
	if len(ids) == 0 {
		return []*models.Apartment{}, nil
	}
	rows, err := r.db.Query(ctx, baseSelectApartment()+" WHERE apartment_id = ANY($1) ORDER BY apartment_id", ids)
	if err != nil {
		return nil, err
	}
	return r.collect(rows)
}

func (r *apartmentRepo) Update(ctx context.Context, a *models.Apartment) error {
	return expectAffected(r.db.Exec(ctx, `
		UPDATE apartments SET number=$1, square=$2, description=$3, photo=$4, cost=$5
		WHERE apartment_id=$6
	`, a.Number, a.Square, a.Description, a.Photo, a.Cost, a.ApartmentID))
}

// Delete removes the apartment, its contracts and its building links.
// Buildings themselves are left in place.
func (r *apartmentRepo) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx DB) error {
		if _, err := tx.Exec(ctx, `DELETE FROM contracts WHERE apartment_id=$1`, id); err != nil {
			return fmt.Errorf("delete contracts of apartment %d: %w", id, err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM building_apartments WHERE apartment_id=$1`, id); err != nil {
			return fmt.Errorf("unlink apartment %d: %w", id, err)
		}
		return expectAffected(tx.Exec(ctx, `DELETE FROM apartments WHERE apartment_id=$1`, id))
	})
}

func (r *apartmentRepo) collect(rows pgx.Rows) ([]*models.Apartment, error) {
	defer rows.Close()
	out := []*models.Apartment{}
	for rows.Next() {
		a, err := r.scanApartment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func baseSelectApartment() string {
	return `
		SELECT apartment_id, number, square, description, photo, cost
		FROM apartments`
}

func (r *apartmentRepo) scanApartment(row pgx.Row) (*models.Apartment, error) {
	var a models.Apartment
	if err := row.Scan(&a.ApartmentID, &a.Number, &a.Square, &a.Description, &a.Photo, &a.Cost); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
