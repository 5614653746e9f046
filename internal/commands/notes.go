package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/aguiarsc/numen/internal/editor"
	"github.com/aguiarsc/numen/internal/notes"
	"github.com/aguiarsc/numen/internal/ui"
)

func (a *App) newCmd() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Create a new note",
		ArgsUsage: "<title>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "template",
				Aliases: []string{"t"},
				Usage:   "Template to seed the note body from",
			},
			&cli.BoolFlag{
				Name:    "edit",
				Aliases: []string{"e"},
				Usage:   "Open the note in the editor after creating it",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			title := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
			if title == "" {
				return fmt.Errorf("usage: numen new <title>")
			}
			repo, err := a.Repo()
			if err != nil {
				return err
			}

			now := time.Now()
			body := ""
			if name := cmd.String("template"); name != "" {
				lib, err := a.Templates()
				if err != nil {
					return err
				}
				body, err = lib.Apply(name, title, now)
				if err != nil {
					return err
				}
			}

			n, err := repo.Create(title, body, now)
			if err != nil {
				return err
			}
			fmt.Println(ui.Accent.Render(n.ID))

			if cmd.Bool("edit") {
				return editor.Open(a.cfg.Editor.Resolve(), a.NotePath(n.ID))
			}
			return nil
		},
	}
}

func (a *App) listCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List notes, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "tag",
				Aliases: []string{"t"},
				Usage:   "Only show notes carrying this tag",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			repo, err := a.Repo()
			if err != nil {
				return err
			}
			list, err := repo.List(cmd.String("tag"))
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Println("no notes")
				return nil
			}
			printNoteTable(list)
			return nil
		},
	}
}

func (a *App) viewCmd() *cli.Command {
	return &cli.Command{
		Name:      "view",
		Aliases:   []string{"show"},
		Usage:     "Display a note",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Print the raw Markdown body without rendering",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return fmt.Errorf("usage: numen view <id>")
			}
			repo, err := a.Repo()
			if err != nil {
				return err
			}
			n, err := repo.Get(id)
			if err != nil {
				return err
			}
			if cmd.Bool("raw") {
				fmt.Print(n.Body)
				return nil
			}
			fmt.Print(ui.RenderMarkdown(n.Body))
			return nil
		},
	}
}

func (a *App) editCmd() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Open a note in the configured editor",
		ArgsUsage: "<id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return fmt.Errorf("usage: numen edit <id>")
			}
			repo, err := a.Repo()
			if err != nil {
				return err
			}
			stem, err := repo.Resolve(id)
			if err != nil {
				return err
			}
			return editor.Open(a.cfg.Editor.Resolve(), a.NotePath(stem))
		},
	}
}

func (a *App) searchCmd() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search note content",
		ArgsUsage: "<query>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			query := strings.Join(cmd.Args().Slice(), " ")
			if strings.TrimSpace(query) == "" {
				return fmt.Errorf("usage: numen search <query>")
			}
			repo, err := a.Repo()
			if err != nil {
				return err
			}
			results, err := repo.Search(query)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Println("no matches")
				return nil
			}
			printNoteTable(results)
			return nil
		},
	}
}

func (a *App) tagCmd() *cli.Command {
	return &cli.Command{
		Name:      "tag",
		Usage:     "Add or remove tags on a note",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "add",
				Aliases: []string{"a"},
				Usage:   "Tag to add (repeatable)",
			},
			&cli.StringSliceFlag{
				Name:    "remove",
				Aliases: []string{"r"},
				Usage:   "Tag to remove (repeatable)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return fmt.Errorf("usage: numen tag <id> --add t1 --remove t2")
			}
			add, remove := cmd.StringSlice("add"), cmd.StringSlice("remove")
			if len(add) == 0 && len(remove) == 0 {
				return fmt.Errorf("nothing to do: pass --add or --remove")
			}
			repo, err := a.Repo()
			if err != nil {
				return err
			}
			n, err := repo.UpdateTags(id, add, remove)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s\n", ui.Accent.Render(n.ID), strings.Join(n.Tags, ", "))
			return nil
		},
	}
}

func (a *App) removeCmd() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "Delete a note and its version history",
		ArgsUsage: "<id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return fmt.Errorf("usage: numen remove <id>")
			}
			repo, err := a.Repo()
			if err != nil {
				return err
			}
			stem, err := repo.Resolve(id)
			if err != nil {
				return err
			}
			hist, err := a.History()
			if err != nil {
				return err
			}
			if err := repo.Delete(stem); err != nil {
				return err
			}
			if err := hist.Purge(stem); err != nil {
				return err
			}
			fmt.Printf("removed %s\n", stem)
			return nil
		},
	}
}

func printNoteTable(list []*notes.Note) {
	rows := make([][]string, 0, len(list))
	for _, n := range list {
		date := ""
		if !n.Date.IsZero() {
			date = n.Date.Format("2006-01-02")
		}
		rows = append(rows, []string{n.ID, n.Title, date, strings.Join(n.Tags, ", ")})
	}
	fmt.Println(ui.Table([]string{"ID", "TITLE", "DATE", "TAGS"}, rows))
}
