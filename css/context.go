package css

// Context is the host object a selector is matched against.
type Context interface {
	Type() string
	ID() (string, bool)
	Namespace() (string, bool)
	Attr(*Attr) (string, bool)
	Pseudo(*Pseudo) bool
}

// Tree is implemented by contexts that know their position in a hierarchy.
// Combinators and structural pseudo-classes never match contexts without it.
// Absent relatives must be returned as an untyped nil.
type Tree interface {
	Parent() Context
	PrevSibling() Context
	NextSibling() Context
	FirstChild() Context
}

// Element is a plain Context for hosts without their own node type.
type Element struct {
	typ, id, ns  string
	hasID, hasNS bool
	attrs        map[string]string
	states       map[string]bool
	parent, prev *Element
	next, first  *Element
	last         *Element
}

func NewElement(typ string) *Element {
	return &Element{typ: typ, attrs: map[string]string{}, states: map[string]bool{}}
}

func (e *Element) SetID(id string) *Element            { e.id, e.hasID = id, true; return e }
func (e *Element) SetNamespace(ns string) *Element     { e.ns, e.hasNS = ns, true; return e }
func (e *Element) SetAttr(k, v string) *Element        { e.attrs[k] = v; return e }
func (e *Element) SetState(k string, on bool) *Element { e.states[k] = on; return e }

// Append adds children in order and returns e.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		c.parent, c.prev = e, e.last
		if e.last != nil {
			e.last.next = c
		} else {
			e.first = c
		}
		e.last = c
	}
	return e
}

func (e *Element) Type() string              { return e.typ }
func (e *Element) ID() (string, bool)        { return e.id, e.hasID }
func (e *Element) Namespace() (string, bool) { return e.ns, e.hasNS }
func (e *Element) Pseudo(p *Pseudo) bool     { return e.states[p.Name] }

func (e *Element) Attr(a *Attr) (string, bool) {
	if a.Name == "id" && e.hasID {
		return e.id, true
	}
	v, ok := e.attrs[a.Name]
	return v, ok
}

func (e *Element) Parent() Context      { return orNil(e.parent) }
func (e *Element) PrevSibling() Context { return orNil(e.prev) }
func (e *Element) NextSibling() Context { return orNil(e.next) }
func (e *Element) FirstChild() Context  { return orNil(e.first) }

func orNil(e *Element) Context {
	if e == nil {
		return nil
	}
	return e
}

func parentOf(c Context) Context {
	if t, ok := c.(Tree); ok {
		return t.Parent()
	}
	return nil
}

func prevSiblingOf(c Context) Context {
	if t, ok := c.(Tree); ok {
		return t.PrevSibling()
	}
	return nil
}

func nextSiblingOf(c Context) Context {
	if t, ok := c.(Tree); ok {
		return t.NextSibling()
	}
	return nil
}
