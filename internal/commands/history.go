package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/aguiarsc/numen/internal/history"
	"github.com/aguiarsc/numen/internal/notes"
	"github.com/aguiarsc/numen/internal/ui"
)

func (a *App) historyCmd() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Manage the version log of a note",
		Commands: []*cli.Command{
			a.historySaveCmd(),
			a.historyListCmd(),
			a.historyViewCmd(),
			a.historyRestoreCmd(),
			a.historyDiffCmd(),
			a.historyRemoveCmd(),
		},
	}
}

// resolveHistory resolves the note id and opens both collaborators the
// history commands need.
func (a *App) resolveHistory(id string) (string, *notes.Repository, *history.Store, error) {
	repo, err := a.Repo()
	if err != nil {
		return "", nil, nil, err
	}
	stem, err := repo.Resolve(id)
	if err != nil {
		return "", nil, nil, err
	}
	hist, err := a.History()
	if err != nil {
		return "", nil, nil, err
	}
	return stem, repo, hist, nil
}

func (a *App) historySaveCmd() *cli.Command {
	return &cli.Command{
		Name:      "save",
		Usage:     "Snapshot the current note body",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "message",
				Aliases: []string{"m"},
				Usage:   "Message recorded with the snapshot",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return fmt.Errorf("usage: numen history save <id>")
			}
			stem, repo, hist, err := a.resolveHistory(id)
			if err != nil {
				return err
			}
			n, err := repo.Get(stem)
			if err != nil {
				return err
			}
			e, err := hist.Snapshot(stem, n.Body, cmd.String("message"))
			if err != nil {
				return err
			}
			fmt.Printf("saved %s version %d (%s)\n", stem, e.Seq, e.Checksum)
			return nil
		},
	}
}

func (a *App) historyListCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List saved versions, oldest first",
		ArgsUsage: "<id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return fmt.Errorf("usage: numen history list <id>")
			}
			stem, _, hist, err := a.resolveHistory(id)
			if err != nil {
				return err
			}
			entries, err := hist.List(stem)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Printf("no history for %s\n", stem)
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					strconv.Itoa(e.Seq),
					e.CreatedAt.Local().Format(time.DateTime),
					e.Checksum,
					e.Message,
				})
			}
			fmt.Println(ui.Table([]string{"VER", "SAVED AT", "CHECKSUM", "MESSAGE"}, rows))
			return nil
		},
	}
}

func (a *App) historyViewCmd() *cli.Command {
	return &cli.Command{
		Name:      "view",
		Usage:     "Display a saved version body",
		ArgsUsage: "<id> <version>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			stem, _, hist, seq, err := a.historyTarget(cmd)
			if err != nil {
				return err
			}
			e, err := hist.Get(stem, seq)
			if err != nil {
				return err
			}
			fmt.Print(ui.RenderMarkdown(e.Body))
			return nil
		},
	}
}

func (a *App) historyRestoreCmd() *cli.Command {
	return &cli.Command{
		Name:      "restore",
		Usage:     "Restore the note body to a saved version",
		ArgsUsage: "<id> <version>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			stem, repo, hist, seq, err := a.historyTarget(cmd)
			if err != nil {
				return err
			}
			body, err := hist.Restore(stem, seq)
			if err != nil {
				return err
			}
			// Snapshot the current body so the restore itself is reversible.
			n, err := repo.Get(stem)
			if err != nil {
				return err
			}
			if _, err := hist.Snapshot(stem, n.Body, fmt.Sprintf("auto: before restore to %d", seq)); err != nil {
				return err
			}
			if err := repo.WriteBody(stem, body); err != nil {
				return err
			}
			fmt.Printf("restored %s to version %d\n", stem, seq)
			return nil
		},
	}
}

func (a *App) historyDiffCmd() *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "Show line changes between two saved versions",
		ArgsUsage: "<id> <from> <to>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 3 {
				return fmt.Errorf("usage: numen history diff <id> <from> <to>")
			}
			from, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("bad version %q", args[1])
			}
			to, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("bad version %q", args[2])
			}
			stem, _, hist, err := a.resolveHistory(args[0])
			if err != nil {
				return err
			}
			lines, err := hist.Diff(stem, from, to)
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				fmt.Println("no changes")
				return nil
			}
			for _, l := range lines {
				switch {
				case strings.HasPrefix(l, "+"):
					fmt.Println(ui.Added.Render(l))
				case strings.HasPrefix(l, "-"):
					fmt.Println(ui.Removed.Render(l))
				default:
					fmt.Println(ui.Muted.Render(l))
				}
			}
			return nil
		},
	}
}

func (a *App) historyRemoveCmd() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "Delete the entire version log of a note",
		ArgsUsage: "<id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return fmt.Errorf("usage: numen history remove <id>")
			}
			stem, _, hist, err := a.resolveHistory(id)
			if err != nil {
				return err
			}
			if err := hist.Purge(stem); err != nil {
				return err
			}
			fmt.Printf("purged history of %s\n", stem)
			return nil
		},
	}
}

// historyTarget parses the common <id> <version> argument pair.
func (a *App) historyTarget(cmd *cli.Command) (string, *notes.Repository, *history.Store, int, error) {
	args := cmd.Args().Slice()
	if len(args) != 2 {
		return "", nil, nil, 0, fmt.Errorf("usage: numen history %s <id> <version>", cmd.Name)
	}
	seq, err := strconv.Atoi(args[1])
	if err != nil {
		return "", nil, nil, 0, fmt.Errorf("bad version %q", args[1])
	}
	stem, repo, hist, err := a.resolveHistory(args[0])
	if err != nil {
		return "", nil, nil, 0, err
	}
	return stem, repo, hist, seq, nil
}
