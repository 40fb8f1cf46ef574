package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func run(args ...string) (string, error) {
	out, app := &bytes.Buffer{}, newApp()
	app.Writer = out
	ctx := context.WithValue(context.Background(), envKey{}, &env{})
	err := app.Run(ctx, append([]string{"themecss"}, args...))
	return out.String(), err
}

func TestParse(t *testing.T) {
	out, err := run("parse", "div > .a, #b", "button:hover")
	if err != nil {
		t.Fatal(err)
	}
	if expected := "(0,1,1)\tdiv > .a\n(1,0,0)\t#b\n(0,1,1)\tbutton:hover\n"; out != expected {
		t.Errorf("got %q, expected %q", out, expected)
	}
	if _, err := run("parse", ":bogus", "div, [", "p"); len(multierr.Errors(err)) != 2 {
		t.Errorf("expected 2 errors, got %v", err)
	}
	out, err = run("parse", "--lenient", "p, :bogus")
	if err != nil || !strings.HasPrefix(out, "(0,0,1)\tp\n# skipped \":bogus\"") {
		t.Errorf("got %q %v", out, err)
	}
}

func TestMatch(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.html"), filepath.Join(dir, "b.html")
	os.WriteFile(a, []byte(`<ul><li>1</li><li id="x">2</li></ul>`), 0644)
	os.WriteFile(b, []byte(`<p>none</p>`), 0644)
	out, err := run("match", "li:last-child, #x", a, b)
	if err != nil {
		t.Fatal(err)
	}
	if expected := a + "\t(1,0,0)\t<li id=\"x\">2</li>\n"; out != expected {
		t.Errorf("got %q, expected %q", out, expected)
	}
	if _, err := run("match", "li", a, filepath.Join(dir, "missing.html")); err == nil {
		t.Error("expected missing file error")
	}
	_, err = run("match", "li", filepath.Join(dir, "x.html"), filepath.Join(dir, "y.html"))
	if errs := multierr.Errors(err); len(errs) != 2 {
		t.Errorf("expected both missing files to be reported, got %v", err)
	}
}

func TestRegistry(t *testing.T) {
	out, err := run("registry", "--kind", "pseudo-element")
	if err != nil {
		t.Fatal(err)
	}
	if expected := "pseudo-element: after before marker placeholder selection\n"; out != expected {
		t.Errorf("got %q, expected %q", out, expected)
	}
	if _, err := run("registry", "--kind", "color"); err == nil {
		t.Error("expected unknown kind error")
	}
}

func TestDumpConfig(t *testing.T) {
	out, err := run("dumpconfig")
	if err != nil || !strings.Contains(out, "strict: true") {
		t.Errorf("got %q %v", out, err)
	}
}
