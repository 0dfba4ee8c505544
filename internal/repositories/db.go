package repositories

import (
	"context"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/poofware/rental-service/internal/utils"
)

// DB is the subset of pgxpool.Pool and pgx.Tx the repositories use, so the
// same code runs against the pool or inside a transaction.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

//go:generate mockgen -destination=../mocks/mock_repositories.go -package=mocks github.com/poofware/rental-service/internal/repositories UserRepository,ApartmentRepository,BuildingRepository,ContractRepository

// Store bundles one repository per entity. Both storage engines return it.
type Store struct {
	Users      UserRepository
	Apartments ApartmentRepository
	Buildings  BuildingRepository
	Contracts  ContractRepository
}

// NewPostgresStore wires the pgx-backed repositories onto db.
func NewPostgresStore(db DB) Store {
	return Store{
		Users:      NewUserRepository(db),
		Apartments: NewApartmentRepository(db),
		Buildings:  NewBuildingRepository(db),
		Contracts:  NewContractRepository(db),
	}
}

// withTx runs fn in a transaction, rolling back on any error.
func withTx(ctx context.Context, db DB, fn func(tx DB) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func expectAffected(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrNotFound
	}
	return nil
}
