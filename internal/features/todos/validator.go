package todos

import (
	"strconv"
	"time"

	"github.com/xyz-asif/duetodo/internal/pkg/validator"
	apperrors "github.com/xyz-asif/duetodo/pkg/errors"
)

// ValidateDescription rejects empty or whitespace-only descriptions.
func ValidateDescription(description string) error {
	if validator.IsBlank(description) {
		return apperrors.InvalidArgument("description should not be empty")
	}
	return nil
}

// ValidateCreateTodo checks the request and returns the parsed due instant.
func ValidateCreateTodo(req *CreateTodoRequest) (time.Time, error) {
	if err := ValidateDescription(req.Description); err != nil {
		return time.Time{}, err
	}

	due, err := validator.ParseDateTime(req.DueDatetime)
	if err != nil {
		return time.Time{}, apperrors.InvalidArgument("Invalid dueDatetime")
	}
	return due, nil
}

// ValidateUpdateDescription checks a description change request.
func ValidateUpdateDescription(req *UpdateDescriptionRequest) error {
	return ValidateDescription(req.Description)
}

// ValidateListQuery parses ?all=, defaulting to false when absent.
func ValidateListQuery(query *ListQuery) (bool, error) {
	if query.All == "" {
		return false, nil
	}
	all, err := strconv.ParseBool(query.All)
	if err != nil {
		return false, apperrors.InvalidArgument("Validation failed (boolean string is expected)")
	}
	return all, nil
}
