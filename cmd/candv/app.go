package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/candv/config"
	"github.com/c360studio/candv/constants"
	"github.com/c360studio/candv/export"
	"github.com/c360studio/candv/registry"
	"github.com/c360studio/candv/vocabulary"
)

// Report summarizes one compilation pass.
type Report struct {
	Files      int
	Containers int
	Groups     int
	Constants  int
}

// App wires configuration, the vocabulary loader and the exporter.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	out     io.Writer
	loader  *vocabulary.Loader
	encoder *export.Encoder
	metrics *registry.Registry
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, logger *slog.Logger, out io.Writer) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	format, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	encoder, err := export.NewEncoder(format, cfg.Output.IndentWidth())
	if err != nil {
		return nil, err
	}
	metrics := registry.Global()
	return &App{
		cfg:     cfg,
		logger:  logger,
		out:     out,
		loader:  vocabulary.NewLoader(logger, metrics),
		encoder: encoder,
		metrics: metrics,
	}, nil
}

func (a *App) patterns(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(a.cfg.Vocabulary.Patterns) == 0 {
		return nil, fmt.Errorf("no vocabulary patterns given and none configured")
	}
	return a.cfg.Vocabulary.Patterns, nil
}

func (a *App) load(args []string) ([]*vocabulary.File, error) {
	patterns, err := a.patterns(args)
	if err != nil {
		return nil, err
	}
	return a.loader.LoadGlob(patterns...)
}

// Dump writes the primitive of every compiled container.
func (a *App) Dump(ctx context.Context, args []string) error {
	files, err := a.load(args)
	if err != nil {
		return err
	}

	var primitives []constants.Primitive
	for _, f := range files {
		for _, c := range f.Containers {
			primitives = append(primitives, c.ToPrimitive(ctx))
		}
	}
	return a.encoder.Encode(a.out, primitives...)
}

// Check compiles every matched file and prints a summary line per file.
func (a *App) Check(args []string) (*Report, error) {
	files, err := a.load(args)
	if err != nil {
		return nil, err
	}

	report := &Report{Files: len(files)}
	for _, f := range files {
		for _, c := range f.Containers {
			report.Containers++
			countMembers(c, report)
			fmt.Fprintf(a.out, "ok  %s  %s (%d)\n", f.Path, c.FullName(), c.Len())
		}
	}

	a.logger.Info("Vocabulary check passed",
		slog.Int("files", report.Files),
		slog.Int("containers", report.Containers),
		slog.Int("groups", report.Groups),
		slog.Int("constants", report.Constants))
	return report, nil
}

func countMembers(c *constants.Container, report *Report) {
	for name := range c.IterNames() {
		if g, ok := c.Group(name); ok {
			report.Groups++
			countMembers(g, report)
			continue
		}
		report.Constants++
	}
}

// WriteMetrics prints the definition counters, one sample per line, in the
// prometheus text style.
func (a *App) WriteMetrics(w io.Writer) error {
	reg := prometheus.NewRegistry()
	if err := a.metrics.Register(reg); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			if _, err := fmt.Fprintf(w, "%s %g\n", name, m.GetCounter().GetValue()); err != nil {
				return err
			}
		}
	}
	return nil
}
