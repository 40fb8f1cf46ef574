package result

import (
	"errors"
	"fmt"
	"testing"
)

func TestFirstSuccess(t *testing.T) {
	calls := 0
	mismatch := func() Result[string] { calls++; return Failf("", Mismatch, 0, "no") }
	ok := func() Result[string] { calls++; return OK("a") }
	unknown := func() Result[string] { calls++; return Failf("", Unknown, 3, "foo") }

	if r := FirstSuccess("x", 0, mismatch, ok, unknown); !r.OK() || r.Get() != "a" || calls != 2 {
		t.Errorf("got %s after %d calls", r, calls)
	}
	calls = 0
	if r := FirstSuccess("x", 0, mismatch, unknown, ok); r.Kind() != Unknown || calls != 2 {
		t.Errorf("expected unknown to cut the alternation, got %s after %d calls", r, calls)
	}
	if r := FirstSuccess("x", 7, mismatch, mismatch); !r.Mismatched() || r.Err().Error() != "mismatch at 7: not a x" {
		t.Errorf("got %s", r)
	}
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &Error{Kind: Unknown, Msg: "x"})
	if KindOf(err) != Unknown {
		t.Errorf("expected unknown, got %s", KindOf(err))
	}
	if KindOf(errors.New("foreign")) != Structural {
		t.Error("expected foreign errors to be structural")
	}
	r := Cast[int](Failf("fallback", Mismatch, 1, "x"), -1)
	if r.Get() != -1 || !r.Mismatched() {
		t.Errorf("got %s", r)
	}
}
