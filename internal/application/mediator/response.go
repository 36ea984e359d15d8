package mediator

import "github.com/oksasatya/go-finances/pkg/validation"

// Kind classifies a failed response so transports can pick a status code.
type Kind string

const (
	KindNone          Kind = ""
	KindValidation    Kind = "validation"
	KindDuplicate     Kind = "duplicate"
	KindUnauthorized  Kind = "unauthorized"
	KindNotFound      Kind = "not_found"
	KindStorage       Kind = "storage"
	KindCanceled      Kind = "canceled"
	KindConfiguration Kind = "configuration"
)

// Violation is one failed validation rule.
type Violation = validation.ValidationsError

// Response is the uniform envelope returned by every handler.
type Response[T any] struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Payload    T           `json:"payload,omitempty"`
	Kind       Kind        `json:"-"`
	Violations []Violation `json:"violations,omitempty"`
}

func OK[T any](message string, payload T) Response[T] {
	return Response[T]{Success: true, Message: message, Payload: payload}
}

func Fail[T any](kind Kind, message string) Response[T] {
	return Response[T]{Success: false, Kind: kind, Message: message}
}

func invalid[T any](violations []Violation) Response[T] {
	return Response[T]{
		Success:    false,
		Kind:       KindValidation,
		Message:    summarize(violations),
		Violations: violations,
	}
}

func summarize(violations []Violation) string {
	msg := "invalid request"
	for i, v := range violations {
		if i == 0 {
			msg += ": "
		} else {
			msg += "; "
		}
		msg += v.Field + " " + v.Message
	}
	return msg
}
