package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	"github.com/poofware/rental-service/internal/models"
)

// UserFilter narrows List. A nil IsStaff returns every user.
type UserFilter struct {
	IsStaff *bool
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, filter UserFilter) ([]*models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id int64) error
}

type userRepo struct {
	db DB
}

func NewUserRepository(db DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	if u.DateJoined.IsZero() {
		u.DateJoined = time.Now().UTC()
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (
			username, password_hash, email, first_name, last_name,
			is_staff, is_active, passport, phone, birth_date, photo, date_joined
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id
	`,
		u.Username, u.PasswordHash, u.Email, u.FirstName, u.LastName,
		u.IsStaff, u.IsActive, u.Passport, u.Phone, u.BirthDate, u.Photo, u.DateJoined,
	)
	return translateError(row.Scan(&u.ID))
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRow(ctx, baseSelectUser()+" WHERE id=$1", id)
	return r.scanUser(row)
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.db.QueryRow(ctx, baseSelectUser()+" WHERE username=$1", username)
	return r.scanUser(row)
}

func (r *userRepo) List(ctx context.Context, filter UserFilter) ([]*models.User, error) {
	query := baseSelectUser()
	var args []any
	if filter.IsStaff != nil {
		query += " WHERE is_staff=$1"
		args = append(args, *filter.IsStaff)
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.User{}
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *userRepo) Update(ctx context.Context, u *models.User) error {
	return expectAffected(r.db.Exec(ctx, `
		UPDATE users SET
			username=$1, password_hash=$2, email=$3, first_name=$4, last_name=$5,
			is_staff=$6, is_active=$7, passport=$8, phone=$9, birth_date=$10, photo=$11
		WHERE id=$12
	`,
		u.Username, u.PasswordHash, u.Email, u.FirstName, u.LastName,
		u.IsStaff, u.IsActive, u.Passport, u.Phone, u.BirthDate, u.Photo, u.ID,
	))
}

// Delete removes the user together with every contract naming them as
// agent or client.
func (r *userRepo) Delete(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx DB) error {
		if _, err := tx.Exec(ctx, `DELETE FROM contracts WHERE agent_id=$1 OR client_id=$1`, id); err != nil {
			return fmt.Errorf("delete contracts of user %d: %w", id, err)
		}
		return expectAffected(tx.Exec(ctx, `DELETE FROM users WHERE id=$1`, id))
	})
}

func baseSelectUser() string {
	return `
		SELECT id, username, password_hash, email, first_name, last_name,
		       is_staff, is_active, passport, phone, birth_date, photo, date_joined
		FROM users`
}

func (r *userRepo) scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	var birthDate pgtype.Date
	if err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.FirstName, &u.LastName,
		&u.IsStaff, &u.IsActive, &u.Passport, &u.Phone, &birthDate, &u.Photo, &u.DateJoined,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	u.BirthDate = dateOrNil(birthDate)
	return &u, nil
}

func dateOrNil(d pgtype.Date) *time.Time {
	if d.Status != pgtype.Present {
		return nil
	}
	t := d.Time
	return &t
}
