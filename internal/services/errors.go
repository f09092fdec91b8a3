package services

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

type ErrorKind string

const (
	KindAuthentication ErrorKind = "authentication_failure"
	KindNotFound       ErrorKind = "not_found"
	KindValidation     ErrorKind = "validation_failure"
	KindConstraint     ErrorKind = "constraint_violation"
)

type ServiceError struct {
	Status  int
	Kind    ErrorKind
	Message string
}

func (e ServiceError) Error() string {
	return e.Message
}

func ErrNotFound(msg string) error {
	return ServiceError{Status: http.StatusNotFound, Kind: KindNotFound, Message: msg}
}

func ErrBadRequest(msg string) error {
	return ServiceError{Status: http.StatusBadRequest, Kind: KindValidation, Message: msg}
}

func ErrConflict(msg string) error {
	return ServiceError{Status: http.StatusConflict, Kind: KindConstraint, Message: msg}
}

func ErrUnauthorized(msg string) error {
	return ServiceError{Status: http.StatusUnauthorized, Kind: KindAuthentication, Message: msg}
}

// ErrAuthentication is returned for any failed login, whatever the cause.
var ErrAuthentication = ErrUnauthorized("Invalid username or password")

func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// AsServiceError reports whether err carries a ServiceError.
func AsServiceError(err error) (ServiceError, bool) {
	var serr ServiceError
	if errors.As(err, &serr) {
		return serr, true
	}
	return ServiceError{}, false
}

// MapStoreError turns driver errors into the service taxonomy. Errors it does
// not recognise are returned wrapped with msg.
func MapStoreError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := AsServiceError(err); ok {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound("Record not found")
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503":
			return ErrConflict(foreignKeyMessage(pgErr))
		case "23505":
			return ErrConflict("A record with the same value already exists")
		case "23502":
			return ErrConflict(fmt.Sprintf("Field %s must not be empty", pgErr.ColumnName))
		case "23514":
			return ErrConflict("Value violates a table constraint")
		case "22P02", "22007", "22008", "22003", "22001":
			return ErrBadRequest("Invalid field value: " + pgErr.Message)
		}
	}
	return WrapError(err, msg)
}

func foreignKeyMessage(pgErr *pgconn.PgError) string {
	if pgErr.Detail != "" {
		return "Foreign key violation: " + pgErr.Detail
	}
	return "Foreign key violation: " + pgErr.ConstraintName
}
