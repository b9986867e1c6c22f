package gen

import (
	"errors"
	"fmt"
	"go/token"
	"sort"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidDeclaration matches every Diagnostic.
	ErrInvalidDeclaration = errors.New("dbtype: invalid declaration")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("dbtype: missing configuration")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("dbtype: code generation failed")

	// ErrUnsupportedShape: the annotated type cannot carry the mapping.
	ErrUnsupportedShape = errors.New("dbtype: unsupported shape")
	// ErrUnknownDirective: a directive key or kind is not recognized.
	ErrUnknownDirective = errors.New("dbtype: unknown directive")
	// ErrDuplicateWireLabel: two variants share a label on one backend.
	ErrDuplicateWireLabel = errors.New("dbtype: duplicate wire label")
	// ErrBackendNotEnabled: a declaration targets a backend the build excludes.
	ErrBackendNotEnabled = errors.New("dbtype: backend not enabled")
	// ErrMissingInnerMapping: an identifier wraps a type with no backend mapping.
	ErrMissingInnerMapping = errors.New("dbtype: missing inner mapping")
	// ErrDuplicateDirective: a directive key is given twice.
	ErrDuplicateDirective = errors.New("dbtype: duplicate directive")
	// ErrInvalidDirectiveValue: a directive value is malformed or out of range.
	ErrInvalidDirectiveValue = errors.New("dbtype: invalid directive value")
	// ErrCapabilityNotEnabled: a declaration opts into a disabled feature.
	ErrCapabilityNotEnabled = errors.New("dbtype: capability not enabled")
	// ErrMissingCompanionDirective: a directive requires another one.
	ErrMissingCompanionDirective = errors.New("dbtype: missing companion directive")
	// ErrDuplicateVariantValue: two constants of an enum share a value.
	ErrDuplicateVariantValue = errors.New("dbtype: duplicate variant value")
	// ErrMethodConflict: a generated method is already declared by hand.
	ErrMethodConflict = errors.New("dbtype: method conflict")
)

// DiagnosticKind identifies the rule a declaration violates.
type DiagnosticKind int

// Diagnostic kinds.
const (
	_ DiagnosticKind = iota
	UnsupportedShape
	UnknownDirective
	DuplicateWireLabel
	BackendNotEnabled
	MissingInnerMapping
	DuplicateDirective
	InvalidDirectiveValue
	CapabilityNotEnabled
	MissingCompanionDirective
	DuplicateVariantValue
	MethodConflict
)

var kinds = [...]struct {
	name string
	err  error
}{
	UnsupportedShape:          {"unsupported shape", ErrUnsupportedShape},
	UnknownDirective:          {"unknown directive", ErrUnknownDirective},
	DuplicateWireLabel:        {"duplicate wire label", ErrDuplicateWireLabel},
	BackendNotEnabled:         {"backend not enabled", ErrBackendNotEnabled},
	MissingInnerMapping:       {"missing inner mapping", ErrMissingInnerMapping},
	DuplicateDirective:        {"duplicate directive", ErrDuplicateDirective},
	InvalidDirectiveValue:     {"invalid directive value", ErrInvalidDirectiveValue},
	CapabilityNotEnabled:      {"capability not enabled", ErrCapabilityNotEnabled},
	MissingCompanionDirective: {"missing companion directive", ErrMissingCompanionDirective},
	DuplicateVariantValue:     {"duplicate variant value", ErrDuplicateVariantValue},
	MethodConflict:            {"method conflict", ErrMethodConflict},
}

// String returns the rule name, e.g. "duplicate wire label".
func (k DiagnosticKind) String() string {
	if k <= 0 || int(k) >= len(kinds) {
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
	return kinds[k].name
}

// Sentinel returns the sentinel error matched by diagnostics of kind k.
func (k DiagnosticKind) Sentinel() error {
	if k <= 0 || int(k) >= len(kinds) {
		return ErrInvalidDeclaration
	}
	return kinds[k].err
}

// Diagnostic is a build-time error attributed to a source position and the
// offending declaration.
type Diagnostic struct {
	Kind    DiagnosticKind
	Pos     token.Position
	Type    string // declaration name
	Case    string // enum case or struct field (if applicable)
	Backend string // backend the rule was checked for (if applicable)
	Message string
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	var b strings.Builder
	if d.Pos.IsValid() {
		b.WriteString(d.Pos.String())
		b.WriteString(": ")
	}
	b.WriteString("dbtype: ")
	b.WriteString(d.Kind.String())
	if d.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(d.Type)
	}
	if d.Case != "" {
		b.WriteString(" case ")
		b.WriteString(d.Case)
	}
	if d.Backend != "" {
		fmt.Fprintf(&b, " (%s)", d.Backend)
	}
	if d.Message != "" {
		b.WriteString(": ")
		b.WriteString(d.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error of the
// diagnostic's kind or ErrInvalidDeclaration.
func (d *Diagnostic) Is(target error) bool {
	return target == ErrInvalidDeclaration || target == d.Kind.Sentinel()
}

// Diagnostics is a non-empty list of diagnostics reported by one run.
type Diagnostics []*Diagnostic

// Error implements the error interface, one diagnostic per line.
func (ds Diagnostics) Error() string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.Error()
	}
	return strings.Join(lines, "\n")
}

// Unwrap returns the diagnostics as errors, so that errors.Is and errors.As
// match any of them.
func (ds Diagnostics) Unwrap() []error {
	errs := make([]error, len(ds))
	for i, d := range ds {
		errs[i] = d
	}
	return errs
}

// Of returns the diagnostics of kind k.
func (ds Diagnostics) Of(k DiagnosticKind) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Kind == k {
			out = append(out, d)
		}
	}
	return out
}

// sort orders diagnostics by position, then by kind.
func (ds Diagnostics) sort() {
	sort.SliceStable(ds, func(i, j int) bool {
		a, b := ds[i].Pos, ds[j].Pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Offset != b.Offset {
			return a.Offset < b.Offset
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return ds[i].Kind < ds[j].Kind
	})
}

// err returns nil for an empty list, the sorted list otherwise.
func (ds Diagnostics) err() error {
	if len(ds) == 0 {
		return nil
	}
	ds.sort()
	return ds
}

// AsDiagnostics returns the diagnostics carried by err.
func AsDiagnostics(err error) (Diagnostics, bool) {
	var ds Diagnostics
	if errors.As(err, &ds) {
		return ds, true
	}
	var d *Diagnostic
	if errors.As(err, &d) {
		return Diagnostics{d}, true
	}
	return nil, false
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("dbtype: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("dbtype: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Phase   string // "render", "write", "check", etc.
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("dbtype: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsDiagnostic reports whether the error carries a Diagnostic.
func IsDiagnostic(err error) bool {
	var d *Diagnostic
	return errors.As(err, &d)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
