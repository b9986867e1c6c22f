package dbtype

import (
	"errors"
	"fmt"
)

// Standard sentinel errors returned by generated code.
var (
	// ErrUnknownVariantLabel is returned when stored data does not match any
	// declared variant of an enum.
	ErrUnknownVariantLabel = errors.New("dbtype: unknown variant label")

	// ErrInvalidVariant is returned when encoding a value that is not one of the
	// declared variants, e.g. Status(42).
	ErrInvalidVariant = errors.New("dbtype: invalid variant")

	// ErrScan is returned when a driver value cannot be decoded at all.
	ErrScan = errors.New("dbtype: scan failed")

	// ErrOutOfRange is returned when encoding an unsigned identifier that
	// does not fit in a signed bigint column.
	ErrOutOfRange = errors.New("dbtype: value out of range")
)

// UnknownVariantLabelError is returned when decoding data that matches no
// declared variant. Decoding never falls back to a default variant.
type UnknownVariantLabelError struct {
	Type  string // Go type name of the enum
	Label string // offending label, or the text of an offending discriminant
}

// Error returns the error string.
func (e *UnknownVariantLabelError) Error() string {
	return fmt.Sprintf("dbtype: unrecognized %s variant %q", e.Type, e.Label)
}

// Is reports whether the target error matches UnknownVariantLabelError.
// This allows errors.Is(err, ErrUnknownVariantLabel) to return true.
func (e *UnknownVariantLabelError) Is(err error) bool {
	return err == ErrUnknownVariantLabel
}

// NewUnknownVariantLabelError returns a new UnknownVariantLabelError.
func NewUnknownVariantLabelError(typ, label string) *UnknownVariantLabelError {
	return &UnknownVariantLabelError{Type: typ, Label: label}
}

// IsUnknownVariantLabel returns true if the error is an UnknownVariantLabelError.
func IsUnknownVariantLabel(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownVariantLabelError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownVariantLabel)
}

// InvalidVariantError is returned when encoding a value outside the declared
// variant set.
type InvalidVariantError struct {
	Type  string
	Value any
}

// Error returns the error string.
func (e *InvalidVariantError) Error() string {
	return fmt.Sprintf("dbtype: %s(%v) is not a declared variant", e.Type, e.Value)
}

// Is reports whether the target error matches InvalidVariantError.
func (e *InvalidVariantError) Is(err error) bool {
	return err == ErrInvalidVariant
}

// NewInvalidVariantError returns a new InvalidVariantError.
func NewInvalidVariantError(typ string, value any) *InvalidVariantError {
	return &InvalidVariantError{Type: typ, Value: value}
}

// IsInvalidVariant returns true if the error is an InvalidVariantError.
func IsInvalidVariant(err error) bool {
	if err == nil {
		return false
	}
	var e *InvalidVariantError
	return errors.As(err, &e)
}

// ScanError is returned when a driver value has a Go type that cannot hold the
// stored representation. A nil Src means the column was NULL.
type ScanError struct {
	Type string
	Src  any
}

// Error returns the error string.
func (e *ScanError) Error() string {
	if e.Src == nil {
		return fmt.Sprintf("dbtype: cannot scan NULL into %s", e.Type)
	}
	return fmt.Sprintf("dbtype: cannot scan %T into %s", e.Src, e.Type)
}

// Is reports whether the target error matches ScanError.
func (e *ScanError) Is(err error) bool {
	return err == ErrScan
}

// NewScanError returns a new ScanError.
func NewScanError(typ string, src any) *ScanError {
	return &ScanError{Type: typ, Src: src}
}

// IsScanError returns true if the error is a ScanError.
func IsScanError(err error) bool {
	if err == nil {
		return false
	}
	var e *ScanError
	return errors.As(err, &e)
}

// OutOfRangeError is returned by Value when a 64-bit unsigned identifier
// exceeds math.MaxInt64, the largest value a postgres bigint holds.
type OutOfRangeError struct {
	Type  string
	Value uint64
}

// Error returns the error string.
func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("dbtype: %s value %d does not fit in a bigint", e.Type, e.Value)
}

// Is reports whether the target error matches OutOfRangeError.
func (e *OutOfRangeError) Is(err error) bool {
	return err == ErrOutOfRange
}

// NewOutOfRangeError returns a new OutOfRangeError.
func NewOutOfRangeError(typ string, value uint64) *OutOfRangeError {
	return &OutOfRangeError{Type: typ, Value: value}
}
