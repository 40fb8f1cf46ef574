// Package cache compiles each distinct selector text once.
package cache

import (
	"context"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/niklasfasching/themecss/css"
)

// Cache is safe for concurrent use. Parse errors are not cached.
type Cache struct {
	parser *css.Parser
	log    *zap.Logger
	lists  sync.Map
	group  singleflight.Group
}

func New(p *css.Parser, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{parser: p, log: log.Named("selector-cache")}
}

func (c *Cache) Get(text string) (*css.List, error) {
	if v, ok := c.lists.Load(text); ok {
		return v.(*css.List), nil
	}
	v, err, shared := c.group.Do(text, func() (any, error) {
		if v, ok := c.lists.Load(text); ok {
			return v, nil
		}
		l, err := c.parser.Parse(text)
		if err != nil {
			return nil, err
		}
		c.lists.Store(text, l)
		c.log.Debug("compiled", zap.String("selector", text), zap.Stringer("specificity", l.Specificity()))
		return l, nil
	})
	if err != nil {
		c.log.Debug("failed", zap.String("selector", text), zap.Bool("shared", shared), zap.Error(err))
		return nil, err
	}
	return v.(*css.List), nil
}

func (c *Cache) MustGet(text string) *css.List {
	l, err := c.Get(text)
	if err != nil {
		panic(err)
	}
	return l
}

// Warm compiles texts with at most limit parsers running at a time; a limit
// below 1 means no limit. All texts are attempted and the returned error
// combines every failure.
func (c *Cache) Warm(ctx context.Context, texts []string, limit int) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit < 1 {
		limit = -1
	}
	g.SetLimit(limit)
	mu, errs := sync.Mutex{}, error(nil)
	for _, text := range texts {
		text := text
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := c.Get(text); err != nil {
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	return multierr.Append(errs, g.Wait())
}

func (c *Cache) Len() int {
	n := 0
	c.lists.Range(func(any, any) bool { n++; return true })
	return n
}

func (c *Cache) Forget(text string) { c.lists.Delete(text) }

func (c *Cache) Parser() *css.Parser { return c.parser }
