package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/coursemaster/client-service/internal/errors"
	"github.com/coursemaster/client-service/internal/models"
)

// Validator wraps struct-tag validation for request payloads assembled
// client-side. Everything it rejects is caught before a request is sent.
type Validator struct {
	structValidator *validator.Validate
}

// New creates a new validator instance with all custom validators registered
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{structValidator: structValidator}
}

// Validate validates struct tags and converts failures into the shared
// ValidationErrors type so callers get user-friendly field messages.
func (v *Validator) Validate(s interface{}) error {
	err := v.structValidator.Struct(s)
	if err == nil {
		return nil
	}
	if ve := apperrors.ToValidationErrors(err); len(ve) > 0 {
		return ve
	}
	return err
}

func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("sort_option", validateSortOption)
	validate.RegisterValidation("enrollment_status", validateEnrollmentStatus)
	validate.RegisterValidation("user_role", validateUserRole)

	// Report json field names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateSortOption(fl validator.FieldLevel) bool {
	validSorts := []models.SortOption{
		models.SortNewest,
		models.SortPriceAsc,
		models.SortPriceDesc,
	}

	value := fl.Field().String()
	for _, validSort := range validSorts {
		if string(validSort) == value {
			return true
		}
	}
	return false
}

func validateEnrollmentStatus(fl validator.FieldLevel) bool {
	validStatuses := []models.EnrollmentStatus{
		models.EnrollmentActive,
		models.EnrollmentCompleted,
		models.EnrollmentDropped,
	}

	value := fl.Field().String()
	for _, validStatus := range validStatuses {
		if string(validStatus) == value {
			return true
		}
	}
	return false
}

func validateUserRole(fl validator.FieldLevel) bool {
	validRoles := []models.UserRole{
		models.RoleStudent,
		models.RoleInstructor,
		models.RoleAdmin,
	}

	value := fl.Field().String()
	for _, validRole := range validRoles {
		if string(validRole) == value {
			return true
		}
	}
	return false
}
