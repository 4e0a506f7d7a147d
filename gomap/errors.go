package gomap

import "fmt"

// ConversionError reports a value that could not be mapped in either
// direction.
type ConversionError struct {
	FieldPath string // breadcrumb path into the value (e.g., "person.address[0].street")
	Message   string
	Err       error
}

func (e *ConversionError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("conversion error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("conversion error: %s", e.Message)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// convErr builds a ConversionError with a formatted message.
func convErr(fieldPath, format string, args ...any) *ConversionError {
	return &ConversionError{FieldPath: fieldPath, Message: fmt.Sprintf(format, args...)}
}
