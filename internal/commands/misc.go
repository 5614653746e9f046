package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/aguiarsc/numen/internal"
	"github.com/aguiarsc/numen/internal/editor"
	"github.com/aguiarsc/numen/internal/mcpserver"
	"github.com/aguiarsc/numen/internal/stats"
	"github.com/aguiarsc/numen/internal/storage"
	"github.com/aguiarsc/numen/internal/ui"
)

func (a *App) statsCmd() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show collection statistics",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			store, err := storage.NewFS(a.cfg.Paths.NotesDir)
			if err != nil {
				return err
			}
			report, err := stats.Collect(ctx, store)
			if err != nil {
				return err
			}
			if report.Notes == 0 {
				fmt.Println("no notes")
				return nil
			}

			fmt.Printf("%s %d notes, %d words (avg %d per note)\n",
				ui.Bold.Render("Collection:"), report.Notes, report.Words, report.AvgWords)
			if report.LongestID != "" {
				fmt.Printf("%s %s (%d words)\n",
					ui.Bold.Render("Longest:"), ui.Accent.Render(report.LongestID), report.LongestLen)
			}
			if report.Oldest != nil && report.Newest != nil {
				fmt.Printf("%s %s .. %s\n", ui.Bold.Render("Span:"),
					report.Oldest.Date.Format("2006-01-02"), report.Newest.Date.Format("2006-01-02"))
			}

			if len(report.Tags) > 0 {
				rows := make([][]string, 0, len(report.Tags))
				for _, t := range report.Tags {
					rows = append(rows, []string{t.Tag, strconv.Itoa(t.Count)})
				}
				fmt.Println()
				fmt.Println(ui.Table([]string{"TAG", "NOTES"}, rows))
			}
			if len(report.Months) > 0 {
				rows := make([][]string, 0, len(report.Months))
				for _, m := range report.Months {
					rows = append(rows, []string{m.Month, strconv.Itoa(m.Count)})
				}
				fmt.Println()
				fmt.Println(ui.Table([]string{"MONTH", "NOTES"}, rows))
			}
			return nil
		},
	}
}

func (a *App) configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Open the config file in the editor, creating it when missing",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := a.configPath
			if path == "" {
				path = internal.DefaultConfigPath()
			}
			if err := internal.EnsureDefaultConfig(path); err != nil {
				return err
			}
			return editor.Open(a.cfg.Editor.Resolve(), path)
		},
	}
}

func (a *App) mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the note collection over the Model Context Protocol on stdio",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			repo, err := a.Repo()
			if err != nil {
				return err
			}
			hist, err := a.History()
			if err != nil {
				return err
			}
			pipeline, err := a.Pipeline()
			if err != nil {
				return err
			}
			a.logger.Info("starting mcp server", "notes_dir", a.cfg.Paths.NotesDir)
			return mcpserver.New(repo, hist, pipeline).ServeStdio()
		},
	}
}
