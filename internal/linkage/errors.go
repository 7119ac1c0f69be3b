package linkage

import (
	"errors"
	"fmt"
)

// ErrorKind classifies linkage failures. Callers branch on the kind and
// produce their own messages.
type ErrorKind int

const (
	KindSchema ErrorKind = iota + 1
	KindEmptyReference
	KindInvalidThreshold
	KindInvalidStrategy
)

func (k ErrorKind) String() string {
	switch k {
	case KindSchema:
		return "schema"
	case KindEmptyReference:
		return "empty_reference"
	case KindInvalidThreshold:
		return "invalid_threshold"
	case KindInvalidStrategy:
		return "invalid_strategy"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Side names which dataset an error refers to.
type Side string

const (
	SideSource    Side = "source"
	SideReference Side = "reference"
)

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrSchema           = &Error{Kind: KindSchema}
	ErrEmptyReference   = &Error{Kind: KindEmptyReference}
	ErrInvalidThreshold = &Error{Kind: KindInvalidThreshold}
	ErrInvalidStrategy  = &Error{Kind: KindInvalidStrategy}
)

// Error is the single error type returned by this package.
type Error struct {
	Kind      ErrorKind
	Side      Side     // set for KindSchema and KindEmptyReference
	Field     string   // missing field for KindSchema
	Threshold int      // rejected value for KindInvalidThreshold
	Strategy  Strategy // rejected value for KindInvalidStrategy
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case KindSchema:
		return fmt.Sprintf("linkage: %s: %s field %q", e.Kind, e.Side, e.Field)
	case KindEmptyReference:
		return fmt.Sprintf("linkage: %s: %s", e.Kind, e.Side)
	case KindInvalidThreshold:
		return fmt.Sprintf("linkage: %s: %d", e.Kind, e.Threshold)
	case KindInvalidStrategy:
		return fmt.Sprintf("linkage: %s: %s", e.Kind, e.Strategy)
	}
	return "linkage: " + e.Kind.String()
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t != nil && e.Kind == t.Kind
}

// KindOf reports the kind of a linkage error anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
