package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidConfig  = errors.New("invalid config")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnknownClient  = errors.New("unknown client")
	ErrRenderFailed   = errors.New("render failed")
	ErrMissingArgs    = errors.New("missing required arguments")
	ErrTooManyArgs    = errors.New("too many arguments")
	ErrBadPlaceholder = errors.New("bad placeholder")
	ErrPublishFailed  = errors.New("publish failed")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindUsage      ErrorKind = "usage"
	KindConfig     ErrorKind = "config"
	KindValidation ErrorKind = "validation"
	KindRender     ErrorKind = "render"
	KindNotFound   ErrorKind = "not_found"
	KindPublish    ErrorKind = "publish"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// KindOf returns the kind of the outermost OpError in err's chain, or "".
func KindOf(err error) ErrorKind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return ""
}

func invalid(op, format string, args ...any) error {
	return &OpError{
		Op:   op,
		Kind: KindValidation,
		Err:  fmt.Errorf(format+": %w", append(args, ErrInvalidInput)...),
	}
}
