package partner

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// RealmAlreadyExistsCode is the structured code the realm API uses when the
// realm name is taken
const RealmAlreadyExistsCode = "REALM_ALREADY_EXISTS"

const realmAlreadyExistsText = "The realm already exists"

// APIError is a non-2xx response from a partner API
type APIError struct {
	Service    string
	Operation  string
	StatusCode int
	Code       string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Body
	}
	return fmt.Sprintf("%s %s failed with status %d: %s", e.Service, e.Operation, e.StatusCode, msg)
}

// errorEnvelope covers the error shapes seen from both partner APIs:
// {"code": "...", "message": "..."}, {"error": {"code": "...", "message": "..."}}
// and {"error": "..."}.
type errorEnvelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
}

func newAPIError(service, operation string, status int, body []byte) *APIError {
	apiErr := &APIError{
		Service:    service,
		Operation:  operation,
		StatusCode: status,
		Body:       strings.TrimSpace(string(body)),
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return apiErr
	}
	apiErr.Code = env.Code
	apiErr.Message = env.Message

	if len(env.Error) > 0 {
		var nested struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		var text string
		switch {
		case json.Unmarshal(env.Error, &nested) == nil:
			if apiErr.Code == "" {
				apiErr.Code = nested.Code
			}
			if apiErr.Message == "" {
				apiErr.Message = nested.Message
			}
		case json.Unmarshal(env.Error, &text) == nil:
			if apiErr.Message == "" {
				apiErr.Message = text
			}
		}
	}
	return apiErr
}

// IsRealmAlreadyExists reports whether err is the realm API rejecting a realm
// name that is already taken. The structured code is checked first; the raw
// message text is the fallback for responses without one.
func IsRealmAlreadyExists(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code != "" {
		return strings.EqualFold(apiErr.Code, RealmAlreadyExistsCode)
	}
	if apiErr.StatusCode == http.StatusConflict && apiErr.Body == "" {
		return true
	}
	return strings.Contains(apiErr.Message, realmAlreadyExistsText) ||
		strings.Contains(apiErr.Body, realmAlreadyExistsText)
}
