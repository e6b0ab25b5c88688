package validate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid es la causa común de todos los errores de validación.
// Los dominios lo re-exportan como ErrInvalidInput.
var ErrInvalid = errors.New("invalid input")

// Error describe un campo rechazado antes de tocar el store.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *Error) Unwrap() error { return ErrInvalid }

func New(field, reason string) error {
	return &Error{Field: field, Reason: reason}
}

func Newf(field, format string, args ...any) error {
	return &Error{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Required falla si value queda vacío tras TrimSpace.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return New(field, "is required")
	}
	return nil
}

// FieldOf devuelve el campo del primer *Error en la cadena, o "".
func FieldOf(err error) string {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Field
	}
	return ""
}
