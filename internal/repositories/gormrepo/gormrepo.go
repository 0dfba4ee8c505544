// Package gormrepo implements the repositories on top of GORM. It backs the
// sqlite development store and the fast repository tests.
package gormrepo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/poofware/rental-service/internal/repositories"
	"github.com/poofware/rental-service/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenSQLite opens a sqlite database with foreign keys enforced. An empty
// path opens a private in-memory database.
func OpenSQLite(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == "" || dsn == ":memory:" {
		dsn = "file::memory:"
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	dsn += sep + "_foreign_keys=on"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer; a single connection also keeps an
	// in-memory database alive and shared.
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// AutoMigrate creates or updates every table the store uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userRow{},
		&apartmentRow{},
		&buildingRow{},
		&buildingApartmentRow{},
		&contractRow{},
	)
}

// NewStore wires the GORM-backed repositories onto db.
func NewStore(db *gorm.DB) repositories.Store {
	return repositories.Store{
		Users:      &userRepo{db: db},
		Apartments: &apartmentRepo{db: db},
		Buildings:  &buildingRepo{db: db},
		Contracts:  &contractRepo{db: db},
	}
}

// translateError maps constraint failures onto the store sentinels. The
// string checks cover driver versions that do not translate every code.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", utils.ErrDuplicateKey, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", utils.ErrForeignKeyViolation, err)
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", utils.ErrDuplicateKey, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %v", utils.ErrForeignKeyViolation, err)
	}
	return err
}

// expectAffected turns a zero-row write into utils.ErrNotFound.
func expectAffected(res *gorm.DB) error {
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func notFoundAsNil(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
