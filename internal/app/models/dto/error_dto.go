package dto

import (
	"errors"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the stable error shape the boundary layer returns
// for every failed request: a message plus, where the failure concerns
// a single field, that field's name. Detail is only populated for
// internal errors in development mode.
type ErrorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Detail  string `json:"error,omitempty"`
}

// NewErrorResponse creates an error response without a field tag.
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{Message: message}
}

// NewFieldErrorResponse creates a field-tagged error response.
func NewFieldErrorResponse(message, field string) *ErrorResponse {
	return &ErrorResponse{Message: message, Field: field}
}

// HandleBindingError converts a request-binding failure into a
// field-tagged error response where the validator reports one.
func HandleBindingError(err error) *ErrorResponse {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := jsonFieldName(verrs[0].Field())
		switch verrs[0].Tag() {
		case "required":
			return NewFieldErrorResponse(field+" is required", field)
		default:
			return NewFieldErrorResponse(field+" is invalid", field)
		}
	}
	return NewErrorResponse("Invalid request format")
}

// jsonFieldName lowers the first rune of a struct field name to match
// the JSON/form tag convention used by the request DTOs.
func jsonFieldName(name string) string {
	if name == "" {
		return name
	}
	runes := []rune(name)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
