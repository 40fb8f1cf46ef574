package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"go.uber.org/multierr"

	"github.com/niklasfasching/themecss/css"
)

func TestGet(t *testing.T) {
	c := New(css.NewParser(css.DefaultRegistry().Seal(), nil, css.FlagStrictList), nil)
	wg, lists := sync.WaitGroup{}, make([]*css.List, 50)
	for i := range lists {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			lists[i] = c.MustGet("button:hover, .primary")
		}()
	}
	wg.Wait()
	for _, l := range lists {
		if l != lists[0] {
			t.Fatal("expected every caller to get the same compiled list")
		}
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", c.Len())
	}
	if _, err := c.Get(":bogus"); err == nil {
		t.Error("expected error")
	} else if c.Len() != 1 {
		t.Error("errors must not be cached")
	}
	c.Forget("button:hover, .primary")
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d", c.Len())
	}
}

func TestWarm(t *testing.T) {
	c := New(css.DefaultParser(), nil)
	texts := []string{":bogus", "[nope]"}
	for i := 0; i < 20; i++ {
		texts = append(texts, fmt.Sprintf("label:nth-child(%d)", i))
	}
	err := c.Warm(context.Background(), texts, 4)
	if errs := multierr.Errors(err); len(errs) != 2 {
		t.Errorf("expected 2 errors, got %v", err)
	}
	if c.Len() != 20 {
		t.Errorf("expected 20 entries, got %d", c.Len())
	}

	c = New(css.DefaultParser(), nil)
	if err := c.Warm(context.Background(), []string{"a", "b", "c"}, 0); err != nil || c.Len() != 3 {
		t.Errorf("expected unlimited warm to compile 3 entries, got %d: %v", c.Len(), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := New(css.DefaultParser(), nil).Warm(ctx, []string{"a"}, 1); err == nil {
		t.Error("expected cancellation error")
	}
}
