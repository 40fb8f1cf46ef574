package token

import (
	"github.com/niklasfasching/themecss/result"
)

// Queue is a forward-only cursor over a token slice. The cursor only moves
// back when an Attempt fails.
type Queue struct {
	tokens []Token
	index  int
}

func NewQueue(ts []Token) *Queue { return &Queue{tokens: ts} }

func (q *Queue) CanPoll() bool { return q.index < len(q.tokens) }

// Pos is the cursor index into the underlying slice.
func (q *Queue) Pos() int { return q.index }

// Offset is the source offset of the next token, or of the end of input.
func (q *Queue) Offset() int {
	if q.CanPoll() {
		return q.tokens[q.index].Pos
	} else if len(q.tokens) > 0 {
		t := q.tokens[len(q.tokens)-1]
		return t.Pos + len(t.Raw)
	}
	return 0
}

func (q *Queue) Peek() Token {
	if !q.CanPoll() {
		panic("token: Peek on empty queue")
	}
	return q.tokens[q.index]
}

func (q *Queue) Poll() Token {
	t := q.Peek()
	q.index++
	return t
}

func (q *Queue) TryPeek() (Token, bool) {
	if !q.CanPoll() {
		return Token{}, false
	}
	return q.tokens[q.index], true
}

func (q *Queue) TryPoll() (Token, bool) {
	t, ok := q.TryPeek()
	if ok {
		q.index++
	}
	return t, ok
}

func (q *Queue) ConsumeWhitespace() {
	for q.CanPoll() && q.tokens[q.index].Kind == Whitespace {
		q.index++
	}
}

// Rest returns the unconsumed tokens without consuming them.
func (q *Queue) Rest() []Token { return q.tokens[q.index:] }

func (q *Queue) String() string { return Text(q.Rest()) }

// Attempt runs body against a view of q. The view's position is committed
// to q only when body succeeds; on failure q is left where it was and the
// error is returned untouched.
func Attempt[T any](q *Queue, body func(*Queue) result.Result[T]) result.Result[T] {
	view := &Queue{tokens: q.tokens, index: q.index}
	r := body(view)
	if r.OK() {
		q.index = view.index
	}
	return r
}
