package recordmap

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tinywasm/fmt"
)

// ErrMalformedInput is returned when schema input cannot be parsed into a field list.
var ErrMalformedInput = errors.New("malformed schema input")

// ErrSchemaValidation is returned when a field list violates the identity,
// required-field, or options rules.
var ErrSchemaValidation = errors.New("schema validation error")

// ErrTypeGenerated is returned when CreateType() is called on a store that
// already holds a descriptor. Rebuilding requires a new store instance.
var ErrTypeGenerated = errors.New("type already generated")

// ErrNotConfigured is returned when generation or fetching is attempted
// before the required descriptor, table name, or callback is set.
var ErrNotConfigured = errors.New("not configured")

// ErrRecordNotFound is returned when an identity lookup misses on
// update, delete, or GetRowByID().
var ErrRecordNotFound = errors.New("record not found")

// ErrTypeMismatch is returned when a record does not match the store's
// generated runtime type.
var ErrTypeMismatch = errors.New("type mismatch")

// ErrCoercion is returned when a value cannot be converted to the declared
// field type.
var ErrCoercion = errors.New("type coercion error")

func errMalformedInput(detail string) error {
	return fmt.Err(ErrMalformedInput, detail)
}

func errSchemaValidation(problems []string) error {
	return fmt.Err(ErrSchemaValidation, strings.Join(problems, "; "))
}

func errNotConfigured(what string) error {
	return fmt.Err(ErrNotConfigured, what)
}

func errRecordNotFound(id int64) error {
	return fmt.Err(ErrRecordNotFound, "no row with Id "+strconv.FormatInt(id, 10))
}

func errTypeMismatch(detail string) error {
	return fmt.Err(ErrTypeMismatch, detail)
}

func errCoercion(field, from, to string) error {
	return fmt.Err(ErrCoercion, "field "+field+": cannot convert "+from+" to "+to)
}
