package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/niklasfasching/themecss/cache"
	"github.com/niklasfasching/themecss/config"
	"github.com/niklasfasching/themecss/css"
)

type env struct {
	cfg    *config.Config
	log    *zap.Logger
	parser *css.Parser
	cache  *cache.Cache
}

type envKey struct{}

// envFrom returns the env stored by main. before fills it in.
func envFrom(ctx context.Context) *env {
	return ctx.Value(envKey{}).(*env)
}

func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	e := envFrom(ctx)
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		cfg.Logging.Level = "debug"
	}
	if e.log, err = cfg.Logging.Build(os.Stderr); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	if e.parser, err = cfg.NewParser(e.log); err != nil {
		return ctx, fmt.Errorf("unable to prepare registry: %w", err)
	}
	e.cfg, e.cache = cfg, cache.New(e.parser, e.log)
	e.log.Debug("Program started", zap.Strings("args", os.Args), zap.String("config", cmd.String("config")))
	return ctx, nil
}

func after(ctx context.Context, cmd *cli.Command) error {
	e := envFrom(ctx)
	if e.log == nil || e.cache == nil {
		return nil
	}
	e.log.Debug("Program ended", zap.Int("cached", e.cache.Len()))
	_ = e.log.Sync()
	return nil
}

// exitErrHandler replaces the default handler, which exits on any error
// implementing cli.MultiError before After and main get to run.
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	if e := envFrom(ctx); e.log != nil {
		e.log.Debug("Program ended with error", zap.Error(err))
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:            "themecss",
		Usage:           "parses theme selectors and matches them against html documents",
		HideHelpCommand: true,
		Before:          before,
		After:           after,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log at debug level"},
		},
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "Parses selector lists and prints their normalized form and specificity",
				ArgsUsage: "SELECTOR...",
				Action:    runParse,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "lenient", Aliases: []string{"l"}, Usage: "skip bad selectors instead of failing the list"},
					&cli.StringSliceFlag{Name: "flag", Usage: "additional grammar `FLAG`"},
				},
			},
			{
				Name:      "match",
				Usage:     "Prints the elements of html documents matching a selector list",
				ArgsUsage: "SELECTOR FILE...",
				Action:    runMatch,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "jobs", Aliases: []string{"j"}, Value: 4, Usage: "documents processed concurrently"},
				},
			},
			{
				Name:   "registry",
				Usage:  "Lists the registered names",
				Action: runRegistry,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Usage: "only list names of `KIND` (attr, pseudo-class, pseudo-element, function, type)"},
				},
			},
			{
				Name:      "dumpconfig",
				Usage:     "Dumps the actual configuration (YAML)",
				ArgsUsage: "[DESTINATION]",
				Action:    runDumpConfig,
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.WithValue(context.Background(), envKey{}, &env{}), os.Interrupt, syscall.SIGTERM)
	err := newApp().Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
		os.Exit(1)
	}
}
