package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies a failure for the HTTP boundary. Every workflow converts
// store errors into one of these at its own edge; nothing propagates further.
type Kind int

const (
	// Unauthenticated: no valid session where one is required.
	Unauthenticated Kind = iota + 1
	// Validation: a rejected write (constraint violation, bad state).
	Validation
	// NotFound: the row does not exist or is not owned by the caller. The two
	// cases are deliberately indistinguishable.
	NotFound
	// Transient: any other backend failure. No automatic retry anywhere.
	Transient
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the classification from an error chain. Unclassified errors
// count as Transient.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Transient
}

// Message returns the user-facing message for an error chain. Internal detail
// from wrapped errors is never exposed.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "something went wrong"
}

func Status(err error) int {
	switch KindOf(err) {
	case Unauthenticated:
		return http.StatusUnauthorized
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// FromStore maps a pgx error into the taxonomy. Zero rows become NotFound and
// unique violations become Validation; everything else is Transient.
func FromStore(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return Wrap(NotFound, notFoundMsg, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return Wrap(Validation, "already exists", err)
	}
	return Wrap(Transient, "something went wrong", err)
}
