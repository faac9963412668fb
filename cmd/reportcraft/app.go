package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/reportcraft/internal/catalog"
	"github.com/verte-zerg/reportcraft/internal/config"
	"github.com/verte-zerg/reportcraft/internal/model"
	"github.com/verte-zerg/reportcraft/internal/preview"
	"github.com/verte-zerg/reportcraft/internal/report"
	"github.com/verte-zerg/reportcraft/internal/sample"
	"github.com/verte-zerg/reportcraft/internal/store"
)

// app bundles what every report command needs.
type app struct {
	fileCfg config.FileConfig
	catalog *catalog.Catalog
	store   *store.Store
}

func openApp() (*app, error) {
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cat, err := fileCfg.BuildCatalog()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return &app{fileCfg: fileCfg, catalog: cat, store: st}, nil
}

func (a *app) close() {
	if cerr := a.store.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func (a *app) load(ctx context.Context, name string) (*report.Configuration, error) {
	doc, err := a.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	cfg, err := report.FromDocument(a.catalog, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to restore report %q: %w", name, err)
	}
	return cfg, nil
}

func (a *app) save(ctx context.Context, cfg *report.Configuration) error {
	if err := a.store.Save(ctx, cfg.Document()); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func (a *app) exists(ctx context.Context, name string) (bool, error) {
	_, err := a.store.Load(ctx, name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, model.ErrReportNotFound):
		return false, nil
	}
	return false, err
}

// mutate loads a report, applies fn and saves it when fn succeeds.
func mutate(cmd *cobra.Command, name string, fn func(cfg *report.Configuration) error) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	cfg, err := a.load(ctx, name)
	if err != nil {
		return err
	}
	if err := fn(cfg); err != nil {
		return err
	}
	return a.save(ctx, cfg)
}

// rowOptions selects the row source for show, run and edit.
type rowOptions struct {
	rowsPath string
	generate int
	seed     int64
	locale   string
}

func addRowFlags(cmd *cobra.Command, opts *rowOptions) {
	cmd.Flags().StringVar(&opts.rowsPath, "rows", "", "CSV file with sample rows (header row holds field ids)")
	cmd.Flags().IntVar(&opts.generate, "generate", config.DefaultGenerate, "generate N synthetic rows instead of the built-in sample")
	cmd.Flags().Int64Var(&opts.seed, "seed", config.DefaultSeed, "seed for generated rows (0 = random)")
	cmd.Flags().StringVar(&opts.locale, "locale", config.DefaultLocale, "locale for number formatting")
}

func (a *app) applyRowConfig(cmd *cobra.Command, opts *rowOptions) error {
	applyStringConfig(cmd, "locale", &opts.locale, a.fileCfg.Preview.Locale)
	applyIntConfig(cmd, "generate", &opts.generate, a.fileCfg.Preview.Generate)
	applyInt64Config(cmd, "seed", &opts.seed, a.fileCfg.Preview.Seed)
	if opts.generate < 0 {
		return fmt.Errorf("--generate must be >= 0")
	}
	return nil
}

func (a *app) rows(opts rowOptions) ([]model.Record, error) {
	switch {
	case opts.rowsPath != "":
		rows, err := sample.LoadCSV(opts.rowsPath, a.catalog)
		if err != nil {
			return nil, fmt.Errorf("failed to load rows: %w", err)
		}
		return rows, nil
	case opts.generate > 0:
		return sample.NewGenerator(opts.seed).Generate(a.catalog, opts.generate), nil
	}
	return sample.Rows(), nil
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func styledOutput(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func renderPreview(cmd *cobra.Command, pv preview.Preview) error {
	out := cmd.OutOrStdout()
	return preview.Render(out, pv, preview.RenderOptions{Styled: styledOutput(out)})
}

// resolveRef maps a 1-based position, an id or a unique id prefix to an id.
func resolveRef(ref string, ids []string, notFound error) (string, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(ids) {
			return "", fmt.Errorf("%w: position %d (have %d)", notFound, n, len(ids))
		}
		return ids[n-1], nil
	}
	match := ""
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if ref != "" && strings.HasPrefix(id, ref) {
			if match != "" {
				return "", fmt.Errorf("ambiguous reference %q", ref)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %q", notFound, ref)
	}
	return match, nil
}

func parseParamFlags(values []string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for _, v := range values {
		name, value, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("--param must be name=value, got %q", v)
		}
		out[name] = value
	}
	return out, nil
}
