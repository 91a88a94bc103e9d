// Package response contains helper types for the JSON error and
// message bodies the API returns. Success payloads are endpoint
// specific; errors always share the {"message": ...} shape.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Message is the generic {"message": ...} body used for errors and
// simple confirmations.
type Message struct {
	Message string `json:"message"`
}

// Error builds a Message for an error body.
func Error(msg string) Message {
	return Message{Message: msg}
}

// OK builds a Message for a confirmation body.
func OK(msg string) Message {
	return Message{Message: msg}
}

// ValidationError flattens validator violations into a single
// human-readable message.
func ValidationError(errs validator.ValidationErrors) Message {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email address", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too short", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is too long", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return Message{Message: strings.Join(errsMsgs, ", ")}
}
