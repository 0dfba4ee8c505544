package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/poofware/rental-service/internal/utils"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNumericOutOfRange   = "22003"
)

// translateError maps Postgres constraint failures onto the store sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", utils.ErrDuplicateKey, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", utils.ErrForeignKeyViolation, pgErr.ConstraintName)
		case pgNumericOutOfRange:
			return fmt.Errorf("%w: %s", utils.ErrValueOutOfRange, pgErr.Message)
		}
	}
	return err
}
