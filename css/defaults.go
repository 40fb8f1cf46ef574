package css

// Attributes of the default registry mapped to whether their values compare
// case sensitively.
var DefaultAttrs = map[string]bool{
	"class":   true,
	"id":      true,
	"type":    true,
	"name":    true,
	"lang":    false,
	"dir":     false,
	"role":    true,
	"title":   true,
	"tooltip": true,
	"text":    true,
	"value":   true,
}

var UserActions = []string{"hover", "active", "focus", "focus-visible", "focus-within"}

var States = []string{
	"disabled", "checked", "selected", "expanded", "collapsed",
	"read-only", "required", "invalid",
}

// Inverses are states defined as the absence of another state.
var Inverses = map[string]string{
	"enabled":    "disabled",
	"read-write": "read-only",
	"optional":   "required",
	"valid":      "invalid",
}

var PseudoClasses = map[string]func(Context) bool{
	"root":          isRoot,
	"empty":         isEmpty,
	"first-child":   nthCompiled(false, false),
	"last-child":    nthCompiled(true, false),
	"first-of-type": nthCompiled(false, true),
	"last-of-type":  nthCompiled(true, true),
	"only-child":    onlyChild(false),
	"only-of-type":  onlyChild(true),
}

var PseudoElements = []string{"before", "after", "placeholder", "selection", "marker"}

var PseudoFunctions = map[string]PrepareFunc{
	"not":              prepareList(true, true, false),
	"is":               prepareList(false, false, false),
	"where":            prepareList(false, false, true),
	"nth-child":        prepareNth(false, false),
	"nth-last-child":   prepareNth(true, false),
	"nth-of-type":      prepareNth(false, true),
	"nth-last-of-type": prepareNth(true, true),
	"lang":             prepareLang,
}

// DefaultRegistry returns a new unsealed registry with the widget oriented
// default names.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for name, caseSensitive := range DefaultAttrs {
		must(r.RegisterAttr(name, caseSensitive))
	}
	for _, name := range UserActions {
		must(r.RegisterPseudo(name, PseudoOpts{UserAction: true}))
	}
	for _, name := range States {
		must(r.RegisterPseudo(name, PseudoOpts{}))
	}
	for name, inverse := range Inverses {
		p, _ := r.Pseudo(inverse)
		must(r.RegisterPseudo(name, PseudoOpts{Getter: func(ctx Context) bool { return !ctx.Pseudo(p) }}))
	}
	for name, getter := range PseudoClasses {
		must(r.RegisterPseudo(name, PseudoOpts{Getter: getter}))
	}
	for _, name := range PseudoElements {
		must(r.RegisterElement(name))
	}
	for name, prepare := range PseudoFunctions {
		must(r.RegisterFunc(name, prepare))
	}
	return r
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func isRoot(ctx Context) bool {
	t, ok := ctx.(Tree)
	return ok && t.Parent() == nil
}

// isEmpty asks the context when it can tell (e.g. text content), otherwise
// an element without children is empty.
func isEmpty(ctx Context) bool {
	if e, ok := ctx.(interface{ Empty() bool }); ok {
		return e.Empty()
	}
	t, ok := ctx.(Tree)
	return ok && t.FirstChild() == nil
}

func nthCompiled(last, ofType bool) func(Context) bool {
	return (&nthArgs{a: 0, b: 1, last: last, ofType: ofType}).Match
}

func onlyChild(ofType bool) func(Context) bool {
	first, last := nthCompiled(false, ofType), nthCompiled(true, ofType)
	return func(ctx Context) bool { return first(ctx) && last(ctx) }
}
