package css

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/niklasfasching/themecss/result"
	"github.com/niklasfasching/themecss/token"
)

type Attr struct {
	Name          string
	CaseSensitive bool
}

// Pseudo describes a pseudo-class or pseudo-element. When Getter is set it
// decides the match, otherwise the context is asked.
type Pseudo struct {
	Name       string
	UserAction bool
	Element    bool
	Getter     func(Context) bool
}

type PseudoOpts struct {
	UserAction bool
	Getter     func(Context) bool
}

// FuncArgs is the prepared argument of a functional pseudo-class.
type FuncArgs interface {
	Match(Context) bool
	Specificity() Specificity
}

// PrepareFunc parses the tokens between the parentheses of a functional
// pseudo-class. args holds no EOF token.
type PrepareFunc func(g *Grammar, args *token.Queue, flags Flags) result.Result[FuncArgs]

type Func struct {
	Name    string
	Prepare PrepareFunc
}

type Kind string

const (
	Attrs    Kind = "attr"
	Pseudos  Kind = "pseudo-class"
	Elements Kind = "pseudo-element"
	Funcs    Kind = "function"
	Types    Kind = "type"
)

var ErrSealed = errors.New("registry is sealed")

// Registry holds the names selectors may reference. Lookups are safe for
// concurrent use; registration should finish before the registry is shared
// and Seal makes that explicit.
type Registry struct {
	mu       sync.RWMutex
	attrs    map[string]*Attr
	pseudos  map[string]*Pseudo
	elements map[string]*Pseudo
	funcs    map[string]*Func
	types    map[string]bool
	sealed   bool
}

func NewRegistry() *Registry {
	return &Registry{
		attrs:    map[string]*Attr{},
		pseudos:  map[string]*Pseudo{},
		elements: map[string]*Pseudo{},
		funcs:    map[string]*Func{},
		types:    map[string]bool{},
	}
}

func (r *Registry) RegisterAttr(name string, caseSensitive bool) (*Attr, error) {
	a := &Attr{Name: name, CaseSensitive: caseSensitive}
	if err := register(r, r.attrs, Attrs, name, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *Registry) RegisterPseudo(name string, opts PseudoOpts) (*Pseudo, error) {
	p := &Pseudo{Name: name, UserAction: opts.UserAction, Getter: opts.Getter}
	if err := register(r, r.pseudos, Pseudos, name, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Registry) RegisterElement(name string) (*Pseudo, error) {
	p := &Pseudo{Name: name, Element: true}
	if err := register(r, r.elements, Elements, name, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Registry) RegisterFunc(name string, prepare PrepareFunc) (*Func, error) {
	f := &Func{Name: name, Prepare: prepare}
	if err := register(r, r.funcs, Funcs, name, f); err != nil {
		return nil, err
	}
	return f, nil
}

// RegisterType restricts type selectors to registered names. A registry
// without registered types accepts any type name.
func (r *Registry) RegisterType(name string) error {
	return register(r, r.types, Types, name, true)
}

func register[V any](r *Registry, m map[string]V, k Kind, name string, v V) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return fmt.Errorf("register %s %q: %w", k, name, ErrSealed)
	} else if name == "" {
		return fmt.Errorf("register %s: empty name", k)
	} else if _, ok := m[name]; ok {
		return fmt.Errorf("register %s %q: already registered", k, name)
	}
	m[name] = v
	return nil
}

func (r *Registry) Attr(name string) (*Attr, bool)      { return lookup(r, r.attrs, name) }
func (r *Registry) Pseudo(name string) (*Pseudo, bool)  { return lookup(r, r.pseudos, name) }
func (r *Registry) Element(name string) (*Pseudo, bool) { return lookup(r, r.elements, name) }
func (r *Registry) Func(name string) (*Func, bool)      { return lookup(r, r.funcs, name) }

func (r *Registry) Type(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types) == 0 || r.types[name]
}

func lookup[V any](r *Registry, m map[string]V, name string) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := m[name]
	return v, ok
}

// Names lists the registered names of a kind in sorted order.
func (r *Registry) Names(k Kind) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	switch k {
	case Attrs:
		names = maps.Keys(r.attrs)
	case Pseudos:
		names = maps.Keys(r.pseudos)
	case Elements:
		names = maps.Keys(r.elements)
	case Funcs:
		names = maps.Keys(r.funcs)
	case Types:
		names = maps.Keys(r.types)
	default:
		panic("bad registry kind: " + string(k))
	}
	slices.Sort(names)
	return names
}

func (r *Registry) Seal() *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
	return r
}

func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Clone returns an unsealed copy sharing the registered descriptors.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &Registry{
		attrs:    maps.Clone(r.attrs),
		pseudos:  maps.Clone(r.pseudos),
		elements: maps.Clone(r.elements),
		funcs:    maps.Clone(r.funcs),
		types:    maps.Clone(r.types),
	}
}
