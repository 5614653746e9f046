// Package commands defines the numen command tree and wires the note
// repository, history store, provider gateway, and transform pipeline
// together for the CLI.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/aguiarsc/numen/internal"
	"github.com/aguiarsc/numen/internal/history"
	"github.com/aguiarsc/numen/internal/notes"
	"github.com/aguiarsc/numen/internal/provider"
	"github.com/aguiarsc/numen/internal/storage"
	"github.com/aguiarsc/numen/internal/templates"
	"github.com/aguiarsc/numen/internal/transform"
	pkgconfig "github.com/aguiarsc/numen/pkg/config"
)

// App carries the configuration and lazily-opened collaborators shared by
// all commands.
type App struct {
	cfg        *internal.Config
	configPath string
	logger     *slog.Logger

	repo *notes.Repository
	hist *history.Store
	tpls *templates.Library
}

// New builds the root command.
func New() *cli.Command {
	app := &App{}

	return &cli.Command{
		Name:  "numen",
		Usage: "Local-first Markdown notes with AI-assisted editing and version history",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   internal.DefaultConfigPath(),
				Sources: cli.EnvVars("NUMEN_CONFIG_FILE"),
			},
		},
		Before: app.before,
		Commands: []*cli.Command{
			app.newCmd(),
			app.listCmd(),
			app.viewCmd(),
			app.editCmd(),
			app.searchCmd(),
			app.tagCmd(),
			app.removeCmd(),
			app.aiCmd(),
			app.historyCmd(),
			app.templateCmd(),
			app.backupCmd(),
			app.importCmd(),
			app.statsCmd(),
			app.configCmd(),
			app.mcpCmd(),
		},
	}
}

func (a *App) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	a.configPath = cmd.String("config")
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadIfExists(a.configPath, cfg); err != nil {
		return ctx, fmt.Errorf("failed to parse config: %w", err)
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(a.logger)
	return ctx, nil
}

// Repo opens the note repository on first use.
func (a *App) Repo() (*notes.Repository, error) {
	if a.repo != nil {
		return a.repo, nil
	}
	store, err := storage.NewFS(a.cfg.Paths.NotesDir)
	if err != nil {
		return nil, err
	}
	a.repo = notes.NewRepository(store)
	return a.repo, nil
}

// History opens the version log on first use.
func (a *App) History() (*history.Store, error) {
	if a.hist != nil {
		return a.hist, nil
	}
	if err := os.MkdirAll(filepath.Dir(a.cfg.Paths.HistoryDB), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	h, err := history.Open(a.cfg.Paths.HistoryDB)
	if err != nil {
		return nil, err
	}
	a.hist = h
	return a.hist, nil
}

// Templates opens the template library on first use.
func (a *App) Templates() (*templates.Library, error) {
	if a.tpls != nil {
		return a.tpls, nil
	}
	store, err := storage.NewFS(a.cfg.Paths.TemplatesDir)
	if err != nil {
		return nil, err
	}
	a.tpls = templates.NewLibrary(store)
	return a.tpls, nil
}

// Pipeline builds a transform pipeline over the live collaborators.
func (a *App) Pipeline() (*transform.Pipeline, error) {
	repo, err := a.Repo()
	if err != nil {
		return nil, err
	}
	hist, err := a.History()
	if err != nil {
		return nil, err
	}
	gateway := provider.NewGateway(a.cfg.AI)
	return transform.New(repo, hist, gateway, a.cfg.AI.Timeout(), a.logger), nil
}

// NotePath returns the on-disk location of a note, for editor launches.
func (a *App) NotePath(stem string) string {
	return filepath.Join(a.cfg.Paths.NotesDir, stem+".md")
}
