package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/poofware/rental-service/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestTranslateError(t *testing.T) {
	require.NoError(t, translateError(nil))

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "contracts_pkey"}
	require.ErrorIs(t, translateError(fmt.Errorf("insert: %w", dup)), utils.ErrDuplicateKey)

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "contracts_agent_id_fkey"}
	require.ErrorIs(t, translateError(fk), utils.ErrForeignKeyViolation)

	rng := &pgconn.PgError{Code: "22003", Message: "value \"3000000000\" is out of range for type integer"}
	require.ErrorIs(t, translateError(rng), utils.ErrValueOutOfRange)

	check := &pgconn.PgError{Code: "23514"}
	require.Equal(t, error(check), translateError(check))

	plain := errors.New("conn closed")
	require.Equal(t, plain, translateError(plain))
}
