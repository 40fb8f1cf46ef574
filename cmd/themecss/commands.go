package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	yaml "gopkg.in/yaml.v3"

	"github.com/niklasfasching/themecss/css"
	"github.com/niklasfasching/themecss/soup"
)

var kinds = []css.Kind{css.Attrs, css.Pseudos, css.Elements, css.Funcs, css.Types}

func runParse(ctx context.Context, cmd *cli.Command) error {
	e, w := envFrom(ctx), cmd.Root().Writer
	if cmd.Args().Len() == 0 {
		return errors.New("no selector has been specified")
	}
	p := e.parser
	if cmd.Bool("lenient") && e.cfg.Strict {
		p = css.NewParser(p.Registry(), e.log, e.cfg.Flags...)
	}
	var err error
	for _, text := range cmd.Args().Slice() {
		l, er := p.Parse(text, cmd.StringSlice("flag")...)
		if er != nil {
			err = multierr.Append(err, er)
			continue
		}
		for _, s := range l.Selectors {
			fmt.Fprintf(w, "%s\t%s\n", s.Specificity(), s)
		}
		for _, warning := range l.Warnings {
			fmt.Fprintf(w, "# %s\n", warning)
		}
	}
	return err
}

func runMatch(ctx context.Context, cmd *cli.Command) error {
	e, w := envFrom(ctx), cmd.Root().Writer
	if cmd.Args().Len() < 2 {
		return errors.New("expected a selector and at least one html file")
	}
	l, err := e.cache.Get(cmd.Args().First())
	if err != nil {
		return err
	}
	files := cmd.Args().Slice()[1:]
	outs, mu := make([][]string, len(files)), sync.Mutex{}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, int(cmd.Int("jobs"))))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lines, er := matchFile(l, file)
			mu.Lock()
			outs[i], err = lines, multierr.Append(err, er)
			mu.Unlock()
			return nil
		})
	}
	err = multierr.Append(err, g.Wait())
	for i, lines := range outs {
		e.log.Debug("Matched", zap.String("file", files[i]), zap.Int("elements", len(lines)))
		for _, line := range lines {
			fmt.Fprintln(w, line)
		}
	}
	return err
}

func matchFile(l *css.List, file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := soup.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("unable to parse '%s': %w", file, err)
	}
	lines := []string{}
	for _, n := range doc.AllSel(l) {
		_, specificity := l.MatchSpecificity(n.Context())
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s", file, specificity, n.OuterHTML()))
	}
	return lines, nil
}

func runRegistry(ctx context.Context, cmd *cli.Command) error {
	e, w := envFrom(ctx), cmd.Root().Writer
	ks := kinds
	if k := cmd.String("kind"); k != "" {
		i := slices.Index(kinds, css.Kind(k))
		if i == -1 {
			return fmt.Errorf("unknown kind %q", k)
		}
		ks = kinds[i : i+1]
	}
	for _, k := range ks {
		names := e.parser.Registry().Names(k)
		sort.Sort(natural.StringSlice(names))
		fmt.Fprintf(w, "%s: %s\n", k, strings.Join(names, " "))
	}
	return nil
}

func runDumpConfig(ctx context.Context, cmd *cli.Command) error {
	e := envFrom(ctx)
	data, err := yaml.Marshal(e.cfg)
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}
	if fname := cmd.Args().Get(0); fname != "" {
		return os.WriteFile(fname, data, 0644)
	}
	_, err = cmd.Root().Writer.Write(data)
	return err
}
