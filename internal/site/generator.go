// Package site turns a lesson configuration and a content tree into a static
// site: a staged build that renders markdown pages, writes the generated site
// configuration, and copies static assets.
package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/lessonforge/internal/config"
	"git.home.luguber.info/inful/lessonforge/internal/directives"
	"git.home.luguber.info/inful/lessonforge/internal/logfields"
	"git.home.luguber.info/inful/lessonforge/internal/metrics"
	"git.home.luguber.info/inful/lessonforge/internal/site/theme"

	// Built-in themes self-register on import.
	_ "git.home.luguber.info/inful/lessonforge/internal/site/theme/plain"
	_ "git.home.luguber.info/inful/lessonforge/internal/site/theme/rtd"
)

// Build is the per-run state threaded through the stages.
type Build struct {
	ID         string
	Config     *config.Config
	ContentDir string
	OutputDir  string
	Head       *HeadAssets
	Files      []ContentFile
	Theme      theme.Theme

	directives *directives.Registry
	hooks      []Hook
	report     *Report
}

// Generator builds a site from one configuration.
type Generator struct {
	cfg        *config.Config
	contentDir string
	outputDir  string
	recorder   metrics.Recorder
	hooks      []Hook
	registry   *directives.Registry
}

// Option customizes a Generator.
type Option func(*Generator)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(g *Generator) { g.recorder = r }
}

// WithDirectives replaces the callout registry.
func WithDirectives(r *directives.Registry) Option {
	return func(g *Generator) { g.registry = r }
}

// New creates a Generator. The course setup hook is always installed;
// additional hooks append via OnBuildStart.
func New(cfg *config.Config, contentDir, outputDir string, opts ...Option) *Generator {
	g := &Generator{
		cfg:        cfg,
		contentDir: contentDir,
		outputDir:  outputDir,
		recorder:   metrics.NoopRecorder{},
		hooks:      []Hook{CourseSetup},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.registry == nil {
		g.registry = directives.Builtins()
		if cfg.HasExtension(config.ExtTodo) {
			// Ignore collision with a caller-registered descriptor.
			_ = g.registry.Register(directives.Descriptor{Name: "todo", ExtraClasses: []string{"todo", directives.ClassToggleShown}})
		}
	}
	return g
}

// OnBuildStart registers an additional build-start hook.
func (g *Generator) OnBuildStart(h Hook) {
	if h != nil {
		g.hooks = append(g.hooks, h)
	}
}

// stages returns the canonical stage sequence.
func (b *Build) stages() []StageDef {
	return []StageDef{
		{StagePrepareOutput, (*Build).prepareOutput},
		{StageRunHooks, (*Build).runHooks},
		{StageDiscoverContent, (*Build).discoverContent},
		{StageRenderPages, (*Build).renderPages},
		{StageWriteSiteConfig, (*Build).writeSiteConfig},
		{StageCopyStatic, (*Build).copyStatic},
		{StagePostProcess, (*Build).postProcess},
	}
}

// Run executes one build. The returned report is non-nil even on failure.
func (g *Generator) Run(ctx context.Context) (*Report, error) {
	b := &Build{
		ID:         uuid.NewString(),
		Config:     g.cfg,
		ContentDir: g.contentDir,
		OutputDir:  g.outputDir,
		Head:       &HeadAssets{},
		Theme:      resolveTheme(g.cfg),
		directives: g.registry,
		hooks:      g.hooks,
		report: &Report{
			Start:  time.Now(),
			Stages: map[StageName]StageOutcome{},
		},
	}
	b.report.BuildID = b.ID

	slog.Info("Build started",
		logfields.BuildID(b.ID),
		logfields.Theme(string(b.Theme.Name())),
		logfields.Path(g.outputDir))

	var runErr error
	for _, def := range b.stages() {
		if err := ctx.Err(); err != nil {
			b.record(def.Name, StageResultCanceled, 0, err, g.recorder)
			runErr = fmt.Errorf("build canceled before %s: %w", def.Name, err)
			break
		}
		start := time.Now()
		err := def.Fn(b)
		d := time.Since(start)
		g.recorder.ObserveStageDuration(string(def.Name), d)
		if err != nil {
			var warn stageWarning
			if errors.As(err, &warn) {
				b.record(def.Name, StageResultWarning, d, err, g.recorder)
				continue
			}
			b.record(def.Name, StageResultFatal, d, err, g.recorder)
			runErr = fmt.Errorf("stage %s failed: %w", def.Name, err)
			break
		}
		b.record(def.Name, StageResultSuccess, d, nil, g.recorder)
	}

	b.report.End = time.Now()
	switch {
	case runErr == nil:
		b.report.Outcome = OutcomeSuccess
	case ctx.Err() != nil:
		b.report.Outcome = OutcomeCanceled
	default:
		b.report.Outcome = OutcomeFailed
	}
	g.recorder.ObserveBuildDuration(b.report.Duration())
	g.recorder.IncBuildOutcome(b.report.Outcome)
	g.recorder.ObservePagesRendered(b.report.PagesRendered)

	slog.Info("Build finished",
		logfields.BuildID(b.ID),
		slog.String("outcome", b.report.Outcome),
		slog.Int("pages", b.report.PagesRendered),
		logfields.DurationMS(float64(b.report.Duration().Milliseconds())))

	return b.report, runErr
}

func (b *Build) record(name StageName, res StageResult, d time.Duration, err error, rec metrics.Recorder) {
	out := StageOutcome{Result: res, Duration: d}
	if err != nil {
		out.Err = err.Error()
	}
	switch res {
	case StageResultFatal:
		slog.Error("Stage failed", logfields.BuildID(b.ID), logfields.Stage(string(name)), logfields.Error(err))
	case StageResultWarning, StageResultCanceled:
		slog.Warn("Stage did not fully succeed", logfields.BuildID(b.ID), logfields.Stage(string(name)), logfields.Error(err))
	default:
		slog.Debug("Stage finished", logfields.BuildID(b.ID), logfields.Stage(string(name)), logfields.DurationMS(float64(d.Milliseconds())))
	}
	b.report.Stages[name] = out
	rec.IncStageResult(string(name), metrics.ResultLabel(res))
}

// resolveTheme maps the configured theme to a registered implementation,
// falling back to the plain theme for unknown names.
func resolveTheme(cfg *config.Config) theme.Theme {
	if t := theme.Lookup(cfg.Site.ThemeType()); t != nil {
		return t
	}
	return theme.Lookup(config.ThemePlain)
}

// runHooks invokes all registered build-start hooks in order.
func (b *Build) runHooks() error {
	for _, h := range b.hooks {
		if err := h(b); err != nil {
			return fmt.Errorf("build hook failed: %w", err)
		}
	}
	return nil
}
