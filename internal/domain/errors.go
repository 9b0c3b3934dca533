package domain

import "errors"

// ErrNotFound is returned by repositories when a delete or update matched nothing.
var ErrNotFound = errors.New("not found")

// ErrRealmAlreadyExists is returned by the realm API client when the realm
// name is already taken.
var ErrRealmAlreadyExists = errors.New("realm already exists")

// ValidationError is returned when user input fails validation.
// Fields maps form field names to messages.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// UserError is a business rule rejection returned inside a successful
// Admin GraphQL response.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// FieldErrors maps form fields to user facing messages.
type FieldErrors map[string]string

// FieldErrorsFromUserErrors keys each message by the second element of its
// field path, or "general" when the path is shorter. Later errors for the
// same key win.
func FieldErrorsFromUserErrors(userErrors []UserError) FieldErrors {
	out := make(FieldErrors, len(userErrors))
	for _, ue := range userErrors {
		key := "general"
		if len(ue.Field) > 1 && ue.Field[1] != "" {
			key = ue.Field[1]
		}
		out[key] = ue.Message
	}
	return out
}

// ActionResult is the structured outcome of the onboarding and reseller actions.
// Failures never escape the handler as errors.
type ActionResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Error   interface{} `json:"error,omitempty"`
}
