package token

import (
	"testing"

	"github.com/niklasfasching/themecss/result"
)

func mustTokenize(t *testing.T, s string) []Token {
	t.Helper()
	ts, err := Tokenize(s)
	if err != nil {
		t.Fatalf("tokenize %q: %s", s, err)
	}
	return ts
}

func TestAttemptRewindsOnError(t *testing.T) {
	q := NewQueue(mustTokenize(t, "a b c"))
	q.Poll()
	before := q.Pos()
	r := Attempt(q, func(v *Queue) result.Result[string] {
		v.Poll()
		v.Poll()
		v.ConsumeWhitespace()
		return result.Failf("", result.Mismatch, v.Offset(), "nope")
	})
	if r.OK() {
		t.Fatal("expected error result")
	} else if q.Pos() != before {
		t.Errorf("cursor leaked: before %d after %d", before, q.Pos())
	} else if r.Err().Error() != "mismatch at 4: nope" {
		t.Errorf("error changed: %s", r.Err())
	}
}

func TestAttemptCommitsOnSuccess(t *testing.T) {
	q := NewQueue(mustTokenize(t, "a b"))
	r := Attempt(q, func(v *Queue) result.Result[string] {
		return result.OK(v.Poll().Value)
	})
	if !r.OK() || r.Get() != "a" {
		t.Fatalf("unexpected result %s", r)
	} else if q.Pos() != 1 {
		t.Errorf("expected cursor 1, got %d", q.Pos())
	}
}

func TestNestedAttempt(t *testing.T) {
	q := NewQueue(mustTokenize(t, "a b c"))
	r := Attempt(q, func(outer *Queue) result.Result[int] {
		outer.Poll()
		inner := Attempt(outer, func(v *Queue) result.Result[int] {
			v.Poll()
			return result.Failf(0, result.Mismatch, 0, "inner")
		})
		if inner.OK() {
			t.Error("inner should fail")
		}
		return result.OK(outer.Pos())
	})
	if r.Get() != 1 || q.Pos() != 1 {
		t.Errorf("expected inner failure to leave outer at 1, got %d/%d", r.Get(), q.Pos())
	}
}

func TestQueue(t *testing.T) {
	q := NewQueue(mustTokenize(t, "  a"))
	q.ConsumeWhitespace()
	if tok, ok := q.TryPeek(); !ok || tok.Kind != Ident {
		t.Fatalf("expected ident, got %v", tok)
	}
	if tok, ok := q.TryPoll(); !ok || tok.Value != "a" {
		t.Fatalf("expected a, got %v", tok)
	}
	if tok := q.Poll(); tok.Kind != EOF {
		t.Fatalf("expected EOF, got %v", tok)
	}
	if q.CanPoll() {
		t.Fatal("expected drained queue")
	}
	if _, ok := q.TryPoll(); ok {
		t.Fatal("TryPoll on drained queue")
	}
	defer func() {
		if recover() == nil {
			t.Error("expected Peek on drained queue to panic")
		}
	}()
	q.Peek()
}
