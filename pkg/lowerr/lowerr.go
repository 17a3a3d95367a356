// Package lowerr collects typed, span-carrying errors raised by the
// lowering pass. It plays the role of the teacher's pkg/errors, but
// its Error type carries a koatlast.Span instead of a go/token.Pos:
// the lowering pass never has a go/token.FileSet, only the raw Koatl
// source string and its own linecol cache.
package lowerr

import (
	"fmt"
	"strings"

	"github.com/koatl-lang/koatl/pkg/koatlast"
)

// Kind names one of the error categories spec'd for the lowering
// pass. Names are abstract, not tied to any particular message text.
type Kind int

const (
	InvalidModifier Kind = iota
	MultipleSpreads
	InvalidAssignTarget
	MissingFinalExpr
	MissingDefault
	PlaceholderOutsideContext
	InvalidPostfix
	InvalidReexport
	InternalError
)

func (k Kind) String() string {
	switch k {
	case InvalidModifier:
		return "InvalidModifier"
	case MultipleSpreads:
		return "MultipleSpreads"
	case InvalidAssignTarget:
		return "InvalidAssignTarget"
	case MissingFinalExpr:
		return "MissingFinalExpr"
	case MissingDefault:
		return "MissingDefault"
	case PlaceholderOutsideContext:
		return "PlaceholderOutsideContext"
	case InvalidPostfix:
		return "InvalidPostfix"
	case InvalidReexport:
		return "InvalidReexport"
	case InternalError:
		return "InternalError"
	default:
		return "UnknownError"
	}
}

// Error is one diagnostic raised while lowering a single node.
type Error struct {
	Kind    Kind
	Message string
	Span    koatlast.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (at byte %d)", e.Kind, e.Message, e.Span.Start)
}

// New builds a single-element Errors value, the shape every lowering
// helper that fails returns (mirroring the original's
// TfErrBuilder::build_errs).
func New(kind Kind, span koatlast.Span, format string, args ...any) *Errors {
	return &Errors{{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span}}
}

// Errors is an ordered, non-empty collection of Error. Sibling
// statements accumulate into one Errors; a nested expression failure
// aborts its subtree immediately rather than accumulating further.
type Errors []Error

func (e *Errors) Error() string {
	if e == nil || len(*e) == 0 {
		return "no errors"
	}
	parts := make([]string, len(*e))
	for i, err := range *e {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "\n")
}

// Extend appends other's errors in order, the Go analogue of the
// original's TfErrs::extend.
func (e *Errors) Extend(other *Errors) {
	if other == nil {
		return
	}
	*e = append(*e, (*other)...)
}

// AsErrors unwraps a plain error into an *Errors if it is one,
// reporting ok=false otherwise (for callers that need to distinguish
// an internal Go error from an accumulated diagnostic list).
func AsErrors(err error) (*Errors, bool) {
	es, ok := err.(*Errors)
	return es, ok
}
