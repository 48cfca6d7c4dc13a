// Package calcerr holds the error kinds shared by the calculators.
//
// Every error returned by a calculator is derived from one of the kinds below,
// so callers can classify it with merry.Is and map it to an HTTP status with
// merry.HTTPCode.
package calcerr

import (
	"fmt"
	"net/http"

	"github.com/ansel1/merry"
)

var (
	// Validation marks an input that violates a precondition.
	Validation = merry.New("validation error").WithHTTPCode(http.StatusBadRequest)

	// Lookup marks a value missing from a fixed domain table. It is also a
	// Validation error.
	Lookup = Validation.WithMessage("lookup error")

	// Computation marks a derived quantity that is invalid even though every
	// input was individually valid.
	Computation = merry.New("computation error").WithHTTPCode(http.StatusUnprocessableEntity)
)

type fieldKey struct{}

// Invalid returns a Validation error for field.
func Invalid(field, format string, args ...interface{}) error {
	return withField(Validation, field, format, args...)
}

// NotFound returns a Lookup error for field.
func NotFound(field, format string, args ...interface{}) error {
	return withField(Lookup, field, format, args...)
}

// Failed returns a Computation error for the derived quantity named field.
func Failed(field, format string, args ...interface{}) error {
	return withField(Computation, field, format, args...)
}

func withField(kind merry.Error, field, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return kind.Here().
		WithMessage(msg).
		WithUserMessage(msg).
		WithValue(fieldKey{}, field)
}

// Field reports the input field or derived quantity an error is about.
func Field(err error) string {
	s, _ := merry.Value(err, fieldKey{}).(string)
	return s
}

// IsValidation reports whether err is a Validation (or Lookup) error.
func IsValidation(err error) bool {
	return merry.Is(err, Validation)
}

// IsLookup reports whether err is a Lookup error.
func IsLookup(err error) bool {
	return merry.Is(err, Lookup)
}

// IsComputation reports whether err is a Computation error.
func IsComputation(err error) bool {
	return merry.Is(err, Computation)
}
