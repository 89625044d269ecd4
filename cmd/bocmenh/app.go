package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lethanhdatit/v0-bocmenh-sub002/internal/history"
	"github.com/lethanhdatit/v0-bocmenh-sub002/internal/logging"
	"github.com/lethanhdatit/v0-bocmenh-sub002/internal/memo"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/analysis"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/config"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/locale"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/rules"
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/surface"
)

// globalOpts holds the persistent flags shared by every command.
type globalOpts struct {
	configPath string
	rulesPath  string
	output     string
	logLevel   string
	logFormat  string
	lang       string
	record     bool
}

// app is the per-invocation wiring: config, engine, renderer and the
// optional history recorder.
type app struct {
	cfg      *config.Config
	store    *rules.Store
	engine   *analysis.Engine
	memo     *memo.Engine
	renderer surface.Renderer
	recorder *history.Recorder
	out      io.Writer
	log      *slog.Logger
	closers  []func() error
}

func loadConfig(g *globalOpts) (*config.Config, error) {
	path := g.configPath
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(wd)
		}
	}

	cfg := config.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	cfg.Rules.Path = firstNonEmpty(g.rulesPath, cfg.Rules.Path)
	cfg.Logging.Level = firstNonEmpty(g.logLevel, cfg.Logging.Level)
	cfg.Logging.Format = firstNonEmpty(g.logFormat, cfg.Logging.Format)
	cfg.Locale.Language = firstNonEmpty(g.lang, cfg.Locale.Language)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadRules(cfg *config.Config) (*rules.Store, error) {
	if cfg.Rules.Path == "" {
		return rules.MustDefault(), nil
	}
	rs, err := rules.Load(cfg.Rules.Path)
	if err != nil {
		return nil, err
	}
	return rules.NewStore(rs)
}

func newApp(ctx context.Context, cmd *cobra.Command, g *globalOpts) (*app, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	logging.Init(level, cfg.Logging.Format, cmd.ErrOrStderr())

	store, err := loadRules(cfg)
	if err != nil {
		return nil, err
	}

	cat, err := locale.New(store.Current().Rules, cfg.Locale.Language)
	if err != nil {
		return nil, err
	}
	renderer, err := surface.New(g.output, cat)
	if err != nil {
		return nil, err
	}

	engine := analysis.New(store)
	a := &app{
		cfg:      cfg,
		store:    store,
		engine:   engine,
		memo:     memo.Wrap(engine, cfg.Cache.Size),
		renderer: renderer,
		out:      cmd.OutOrStdout(),
		log:      logging.New("cli"),
	}
	a.log.Debug("rules loaded", "version", store.Current().Version, "path", cfg.Rules.Path)

	if g.record {
		if !cfg.History.Enabled {
			a.log.Warn("--record ignored: history is not enabled in config")
		} else if err := a.openRecorder(ctx); err != nil {
			a.close()
			return nil, err
		}
	}
	return a, nil
}

// openArchive opens the configured report archive; closable backends are
// released by close.
func (a *app) openArchive(ctx context.Context) (history.Archive, error) {
	archive, err := history.OpenArchive(ctx, a.cfg.History.Archive)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	if c, ok := archive.(io.Closer); ok {
		a.closers = append(a.closers, c.Close)
	}
	return archive, nil
}

// openStore opens the history index, or returns nil when no database is
// configured.
func (a *app) openStore(ctx context.Context) (*history.Store, error) {
	if a.cfg.History.DatabaseURL == "" {
		return nil, nil
	}
	db, err := history.Open(ctx, a.cfg.History.DatabaseURL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, db.Close)
	return history.NewStore(db), nil
}

func (a *app) openRecorder(ctx context.Context) error {
	archive, err := a.openArchive(ctx)
	if err != nil {
		return err
	}
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	var index history.Index
	if store != nil {
		index = store
	}
	a.recorder = history.NewRecorder(archive, index, a.cfg.History.Subject)
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("close failed", "error", err)
		}
	}
	a.closers = nil
}

// emit renders report and records it when a recorder is configured.
func (a *app) emit(ctx context.Context, kind string, request, report any) error {
	if err := a.renderer.Render(a.out, report); err != nil {
		return err
	}
	if a.recorder == nil {
		return nil
	}
	rec, err := a.recorder.Record(ctx, kind, request, report)
	if err != nil {
		return fmt.Errorf("recording %s: %w", kind, err)
	}
	a.log.Debug("recorded", "id", rec.ID, "ref", rec.ArchiveRef)
	return nil
}

// run builds the app, invokes fn and releases resources.
func run(cmd *cobra.Command, g *globalOpts, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp(ctx, cmd, g)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(ctx, a)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
