package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrSymbolNotFound marks lookups of names with no top-level
	// declaration in the unit.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrAnonymousFunction marks targets with no independent top-level
	// identity (func literals, method values). Automatic resolution
	// legitimately fails for these; callers supply imports and functions
	// explicitly instead.
	ErrAnonymousFunction = errors.New("anonymous or closure-local function")

	// ErrNotAFunction marks target values that are not Go functions.
	ErrNotAFunction = errors.New("target is not a function")
)

// ResolveError wraps a resolution failure with its sentinel kind, so
// callers can branch on the category while keeping the detail.
type ResolveError struct {
	Kind error
	Msg  string
}

func (e *ResolveError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *ResolveError) Unwrap() error { return e.Kind }

func notFoundf(format string, args ...any) error {
	return &ResolveError{Kind: ErrSymbolNotFound, Msg: fmt.Sprintf(format, args...)}
}

func anonymousf(format string, args ...any) error {
	return &ResolveError{Kind: ErrAnonymousFunction, Msg: fmt.Sprintf(format, args...)}
}
