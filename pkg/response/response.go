package response

import (
	"shopadmin/internal/apperr"
)

// Envelope is the uniform API response shape. Every response carries at least
// the success flag; the remaining fields are populated per outcome.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// OK wraps data in a success envelope.
func OK(data interface{}) Envelope {
	return Envelope{Success: true, Data: data}
}

// OKMessage wraps data in a success envelope with a message.
func OKMessage(message string, data interface{}) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Fail returns a failure envelope carrying only a message.
func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

// FromAppError shapes a classified error into the failure envelope.
// Validation-class errors carry the per-field map; internal errors expose the
// underlying message in the error field.
func FromAppError(e *apperr.Error) Envelope {
	env := Envelope{Success: false, Message: e.Message, Errors: e.Fields}
	if e.Kind == apperr.KindInternal && e.Err != nil {
		env.Error = e.Err.Error()
	}
	return env
}
