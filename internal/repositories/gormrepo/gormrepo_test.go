package gormrepo

import (
	"errors"
	"testing"

	"github.com/poofware/rental-service/internal/repositories"
	"github.com/poofware/rental-service/internal/repositories/repotest"
	"github.com/poofware/rental-service/internal/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openMigrated(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newSQLiteStore(t *testing.T) repositories.Store {
	return NewStore(openMigrated(t))
}

type foreignKey struct {
	Table    string `gorm:"column:table"`
	From     string `gorm:"column:from"`
	To       string `gorm:"column:to"`
	OnDelete string `gorm:"column:on_delete"`
}

func TestSchemaForeignKeys(t *testing.T) {
	db := openMigrated(t)

	var enabled int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	require.Equal(t, 1, enabled, "foreign key enforcement must be on")

	want := map[string][]foreignKey{
		"users":      {},
		"apartments": {},
		"buildings":  {},
		"building_apartments": {
			{Table: "apartments", From: "apartment_id", To: "apartment_id", OnDelete: "CASCADE"},
			{Table: "buildings", From: "building_id", To: "building_id", OnDelete: "CASCADE"},
		},
		"contracts": {
			{Table: "apartments", From: "apartment_id", To: "apartment_id", OnDelete: "CASCADE"},
			{Table: "users", From: "agent_id", To: "id", OnDelete: "CASCADE"},
			{Table: "users", From: "client_id", To: "id", OnDelete: "CASCADE"},
		},
	}
	for table, fks := range want {
		var got []foreignKey
		require.NoError(t, db.Raw("PRAGMA foreign_key_list(" + table + ")").Scan(&got).Error)
		require.ElementsMatch(t, fks, got, "foreign keys of %s", table)
	}
}

func TestSQLiteStore(t *testing.T) {
	repotest.Run(t, newSQLiteStore)
}

func TestTranslateError(t *testing.T) {
	require.NoError(t, translateError(nil))
	require.ErrorIs(t, translateError(gorm.ErrDuplicatedKey), utils.ErrDuplicateKey)
	require.ErrorIs(t, translateError(gorm.ErrForeignKeyViolated), utils.ErrForeignKeyViolation)
	require.ErrorIs(t, translateError(errors.New("UNIQUE constraint failed: users.username")), utils.ErrDuplicateKey)
	require.ErrorIs(t, translateError(errors.New("FOREIGN KEY constraint failed")), utils.ErrForeignKeyViolation)

	other := errors.New("disk I/O error")
	require.Equal(t, other, translateError(other))
}
