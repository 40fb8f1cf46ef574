// Package result carries grammar outcomes: a produced value or a fallback
// value plus a diagnostic. Alternation between productions inspects these
// values instead of relying on panics.
package result

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// Mismatch means the expected leading token was not at the cursor.
	Mismatch Kind = iota
	// Unknown means the syntax was fine but a referenced name is not registered.
	Unknown
	// Structural means a mandatory slot produced no usable selector.
	Structural
)

type Error struct {
	Kind Kind
	Pos  int
	Msg  string
}

type Result[T any] struct {
	value T
	err   error
}

func OK[T any](v T) Result[T] { return Result[T]{value: v} }

func Fail[T any](fallback T, err error) Result[T] {
	if err == nil {
		panic("result: Fail called with nil error")
	}
	return Result[T]{value: fallback, err: err}
}

func Failf[T any](fallback T, k Kind, pos int, format string, args ...any) Result[T] {
	return Fail(fallback, &Error{Kind: k, Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// Cast carries the error of r over to a result of another type.
func Cast[T, V any](r Result[V], fallback T) Result[T] {
	return Fail(fallback, r.err)
}

func (r Result[T]) OK() bool           { return r.err == nil }
func (r Result[T]) Get() T             { return r.value }
func (r Result[T]) Err() error         { return r.err }
func (r Result[T]) Unwrap() (T, error) { return r.value, r.err }
func (r Result[T]) Kind() Kind         { return KindOf(r.err) }
func (r Result[T]) Mismatched() bool   { return r.err != nil && KindOf(r.err) == Mismatch }
func (r Result[T]) String() string {
	if r.err != nil {
		return fmt.Sprintf("error(%v)", r.err)
	}
	return fmt.Sprintf("ok(%v)", r.value)
}

// FirstSuccess returns the first alternative that succeeds. An alternative
// that fails with anything but a Mismatch has committed to its leading token,
// so its error is returned without trying the rest.
func FirstSuccess[T any](name string, pos int, alts ...func() Result[T]) Result[T] {
	var zero T
	for _, alt := range alts {
		r := alt()
		if r.OK() || !r.Mismatched() {
			return r
		}
	}
	return Failf(zero, Mismatch, pos, "not a %s", name)
}

// KindOf reports the kind of a grammar error. Foreign errors count as Structural.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Structural
}

func (k Kind) String() string {
	switch k {
	case Mismatch:
		return "mismatch"
	case Unknown:
		return "unknown"
	case Structural:
		return "structural"
	default:
		panic(fmt.Errorf("bad kind: %d", k))
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %d: %s", e.Kind, e.Pos, e.Msg)
}
