package utils

import (
	"errors"
	"fmt"
	"strings"

	"swiftaid/models"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ValidationService struct {
	validator *validator.Validate
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

func NewValidationService() *ValidationService {
	v := validator.New()

	// Register custom validators
	v.RegisterValidation("object_id", validateObjectID)
	v.RegisterValidation("assignment_status", validateAssignmentStatus)

	return &ValidationService{
		validator: v,
	}
}

func (vs *ValidationService) ValidateStruct(s interface{}) []ValidationError {
	var validationErrors []ValidationError

	err := vs.validator.Struct(s)
	if err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return []ValidationError{{Message: err.Error()}}
		}
		for _, fe := range fieldErrors {
			validationErrors = append(validationErrors, ValidationError{
				Field:   fe.Field(),
				Tag:     fe.Tag(),
				Value:   fmt.Sprintf("%v", fe.Value()),
				Message: vs.getErrorMessage(fe),
			})
		}
	}

	return validationErrors
}

// Validate returns a bad-request ServiceError listing every violation, or nil.
func (vs *ValidationService) Validate(s interface{}) error {
	validationErrors := vs.ValidateStruct(s)
	if len(validationErrors) == 0 {
		return nil
	}
	messages := make([]string, 0, len(validationErrors))
	for _, ve := range validationErrors {
		messages = append(messages, ve.Message)
	}
	return NewBadRequestError(strings.Join(messages, "; "))
}

func (vs *ValidationService) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
	case "object_id":
		return fmt.Sprintf("%s must be a valid object id", fe.Field())
	case "assignment_status":
		return "Invalid assignment status"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// Custom validation functions
func validateObjectID(fl validator.FieldLevel) bool {
	return primitive.IsValidObjectID(fl.Field().String())
}

func validateAssignmentStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case models.AssignmentStatusNotified,
		models.AssignmentStatusAccepted,
		models.AssignmentStatusDeclined,
		models.AssignmentStatusPending:
		return true
	}
	return false
}
