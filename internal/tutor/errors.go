package tutor

import (
	"errors"
	"fmt"

	"github.com/abhisek/deutschpro/internal/llm"
)

// Kind classifies gateway failures by the action the caller should take.
type Kind int

const (
	// KindTransient covers network and service errors. The user retries.
	KindTransient Kind = iota
	// KindCredentialMissing means no usable API key is selected.
	KindCredentialMissing
	// KindCredentialRejected means the backend refused the selected key.
	KindCredentialRejected
	// KindInvalidResponseShape means a structured reply did not match the
	// lesson shape.
	KindInvalidResponseShape
)

func (k Kind) String() string {
	switch k {
	case KindCredentialMissing:
		return "credential missing"
	case KindCredentialRejected:
		return "credential rejected"
	case KindInvalidResponseShape:
		return "invalid response shape"
	default:
		return "transient"
	}
}

// Error is returned by every Gateway call.
type Error struct {
	Kind Kind
	Op   string
	// Path is the JSON pointer of the field that broke the lesson shape,
	// when the backend's reply failed schema validation.
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or KindTransient if err is not a
// gateway error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindTransient
}

// NeedsCredential reports whether err should send the user to the
// credential selection flow.
func NeedsCredential(err error) bool {
	k := KindOf(err)
	return err != nil && (k == KindCredentialMissing || k == KindCredentialRejected)
}

// classify maps provider errors onto the gateway taxonomy. Shape errors
// only apply to structured requests; a bad free-text reply is transient.
func classify(op string, structured bool, err error) *Error {
	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}

	var rejected *llm.ErrCredentialRejected
	var invalid *llm.ErrInvalidResponse
	var truncated *llm.ErrMaxTokensExceeded
	switch {
	case errors.As(err, &rejected):
		return &Error{Kind: KindCredentialRejected, Op: op, Err: err}
	case structured && errors.As(err, &invalid):
		return &Error{Kind: KindInvalidResponseShape, Op: op, Path: invalid.Path, Err: err}
	case structured && errors.As(err, &truncated):
		return &Error{Kind: KindInvalidResponseShape, Op: op, Err: err}
	default:
		return &Error{Kind: KindTransient, Op: op, Err: err}
	}
}
