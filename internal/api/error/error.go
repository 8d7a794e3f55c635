// Package error contains the API error body and its codes.
package error

import (
	"net/http"

	mJson "github.com/matt-dz/cookbox/internal/json"
)

// Error is the body of every non-2xx JSON response.
type Error struct {
	Message string    `json:"error"`
	Code    ErrorCode `json:"code"`
	ErrorID string    `json:"error_id"`
	Status  int       `json:"-"`
}

func (e *Error) Error() string {
	return e.Message
}

// EncodeError writes message with the status code of code.
func EncodeError(w http.ResponseWriter, code ErrorCode, message, errorID string) error {
	status := code.StatusCode()
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return mJson.WriteJSON(w, status, &Error{
		Message: message,
		Code:    code,
		ErrorID: errorID,
		Status:  status,
	})
}

// EncodeInternalError writes a 500 response. The message of err, when
// given, is returned to the client.
func EncodeInternalError(w http.ResponseWriter, errorID string, err error) error {
	message := "internal server error"
	if err != nil {
		message = err.Error()
	}
	return EncodeError(w, InternalServerError, message, errorID)
}
