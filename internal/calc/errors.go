// Package calc composes the solar day solver, the method registry, and the
// high-latitude fallback rules into the six daily prayer instants, plus the
// Sunnah times derived from them. All returned instants are UTC at
// whole-minute precision.
package calc

import "fmt"

// ErrorKind classifies calculation failures.
type ErrorKind int

const (
	// InvalidInput: a parameter failed validation before any solar math ran.
	InvalidInput ErrorKind = iota
	// PolarUnresolved: the solver produced no result and no fallback was
	// available (high latitude rule None, or the sun never rises/sets).
	PolarUnresolved
	// Validation: the computed times failed a sanity check that is fatal at
	// the observer's latitude band.
	Validation
)

func (k ErrorKind) String() string {
	switch k {
	case PolarUnresolved:
		return "polar unresolved"
	case Validation:
		return "validation"
	}
	return "invalid input"
}

// CalculationError is the typed failure returned by Times and Sunnah.
type CalculationError struct {
	Kind   ErrorKind
	Field  string
	Reason string
}

func (e *CalculationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func invalidInput(field, format string, args ...interface{}) *CalculationError {
	return &CalculationError{Kind: InvalidInput, Field: field, Reason: fmt.Sprintf(format, args...)}
}

func polarUnresolved(field, format string, args ...interface{}) *CalculationError {
	return &CalculationError{Kind: PolarUnresolved, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// WarningCode labels a non-fatal condition attached to a result.
type WarningCode string

const (
	// WarnFallback: a polar or out-of-window Fajr/Isha was replaced by a
	// high-latitude fallback value.
	WarnFallback WarningCode = "fallback_applied"
	// WarnOrdering: the computed times are not in canonical order.
	WarnOrdering WarningCode = "ordering"
	// WarnGap: a twilight gap exceeded its sanity threshold at a high or
	// extreme latitude.
	WarnGap WarningCode = "gap"
	// WarnDayLength: the day length is outside the plausible band.
	WarnDayLength WarningCode = "day_length"
)

// Warning is a non-fatal diagnostic. Warnings never alter the returned
// times.
type Warning struct {
	Code    WarningCode
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

func warnf(code WarningCode, format string, args ...interface{}) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}
