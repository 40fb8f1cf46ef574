package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"

	"github.com/niklasfasching/themecss/css"
)

var themeYAML = `
strict: false
flags: [--no-combinators]
logging:
  level: debug
registry:
  attrs: {variant: true}
  states: [busy]
  user_actions: [dragging]
  elements: [thumb]
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte(themeYAML), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("THEMECSS_LOGGING_LEVEL", "none")
	t.Setenv("THEMECSS_REGISTRY_TYPES", `["button","label"]`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Strict || c.Logging.Level != "none" || len(c.Flags) != 1 {
		t.Errorf("unexpected config: %#v", c)
	}
	if strings.Join(c.Registry.Types, ",") != "button,label" || !c.Registry.Attrs["variant"] {
		t.Errorf("unexpected registry config: %#v", c.Registry)
	}
}

func TestDecodeUnknownField(t *testing.T) {
	if err := Default().Decode([]byte("strikt: true\n")); err == nil {
		t.Error("expected unknown field error")
	}
}

func TestLoadEnvBadValue(t *testing.T) {
	t.Setenv("THEMECSS_STRICT", "maybe")
	if _, err := Load(""); err == nil {
		t.Error("expected unmarshal error")
	}
}

func TestNewParser(t *testing.T) {
	c := Default()
	if err := c.Decode([]byte(themeYAML)); err != nil {
		t.Fatal(err)
	}
	p, err := c.NewParser(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Registry().Sealed() {
		t.Error("expected sealed registry")
	}
	l, err := p.Parse(".a, div > p, [variant=x]")
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Selectors) != 2 || len(l.Warnings) != 1 {
		t.Errorf("expected the complex selector to be skipped, got %s %v", l, l.Warnings)
	}
	if _, err := p.Parse(":busy::thumb"); err != nil {
		t.Errorf("expected registered names to parse, got %v", err)
	}
	el := css.NewElement("button").SetAttr("variant", "X").SetState("dragging", true)
	if l, _ := p.Parse(`[variant=X]:dragging`); !l.Match(el) {
		t.Error("expected case sensitive attr and user action to match")
	}
}

func TestNewRegistryErrors(t *testing.T) {
	c := RegistryConfig{States: []string{"hover", "busy"}, Elements: []string{"before"}}
	_, err := c.NewRegistry()
	if errs := multierr.Errors(err); len(errs) != 2 {
		t.Errorf("expected 2 errors, got %v", err)
	}
}

func TestBuild(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "log"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := (&LoggingConfig{Level: "loud"}).Build(f); err == nil {
		t.Error("expected bad level error")
	}
	log, err := (&LoggingConfig{Level: "debug"}).Build(f)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("hello")
	log.Sync()
	if bs, _ := os.ReadFile(f.Name()); !strings.Contains(string(bs), "DEBUG\thello") {
		t.Errorf("got %q", bs)
	}
}
