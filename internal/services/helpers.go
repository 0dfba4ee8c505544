package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/poofware/rental-service/internal/dtos"
	"github.com/poofware/rental-service/internal/utils"
)

// storeError maps a repository error onto the HTTP-facing AppError.
func storeError(entity string, err error) error {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		return utils.NewNotFoundError(entity + " not found")
	case errors.Is(err, utils.ErrDuplicateKey):
		return utils.NewValidationError(entity+" with this id already exists", err)
	case errors.Is(err, utils.ErrForeignKeyViolation):
		return utils.NewValidationError(entity+" references a record that does not exist", err)
	case errors.Is(err, utils.ErrValueOutOfRange):
		return utils.NewValidationError(entity+" has a value out of range", err)
	}
	utils.Logger.WithError(err).Errorf("%s store operation failed", entity)
	return utils.NewInternalError("Database error", err)
}

func invalidField(field, message string) *utils.AppError {
	return &utils.AppError{
		StatusCode: http.StatusBadRequest,
		Code:       utils.ErrCodeValidation,
		Message:    message,
		Details:    []dtos.ValidationErrorDetail{{Field: field, Message: message, Code: "validation_invalid"}},
	}
}

func missingReference(field string, id int64) dtos.ValidationErrorDetail {
	return dtos.ValidationErrorDetail{
		Field:   field,
		Message: fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id),
		Code:    "does_not_exist",
	}
}
