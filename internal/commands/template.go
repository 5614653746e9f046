package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/aguiarsc/numen/internal/templates"
	"github.com/aguiarsc/numen/internal/ui"
)

func (a *App) templateCmd() *cli.Command {
	return &cli.Command{
		Name:  "template",
		Usage: "Manage note templates",
		Commands: []*cli.Command{
			a.templateListCmd(),
			a.templateShowCmd(),
			a.templateNewCmd(),
			a.templateDeleteCmd(),
			a.templateResetCmd(),
		},
	}
}

func (a *App) templateListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List available templates",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			lib, err := a.Templates()
			if err != nil {
				return err
			}
			list, err := lib.List()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(list))
			for _, t := range list {
				kind := "user"
				if templates.IsDefault(t.Name) {
					kind = "built-in"
				}
				rows = append(rows, []string{t.Name, kind, t.Description})
			}
			fmt.Println(ui.Table([]string{"NAME", "KIND", "DESCRIPTION"}, rows))
			return nil
		},
	}
}

func (a *App) templateShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Display a template body",
		ArgsUsage: "<name>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return fmt.Errorf("usage: numen template show <name>")
			}
			lib, err := a.Templates()
			if err != nil {
				return err
			}
			t, err := lib.Get(name)
			if err != nil {
				return err
			}
			fmt.Print(ui.RenderMarkdown(t.Content))
			return nil
		},
	}
}

func (a *App) templateNewCmd() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Create a template from a note body or stdin",
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "title",
				Usage: "Template title",
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Template description",
			},
			&cli.StringFlag{
				Name:  "from-note",
				Usage: "Seed the template content from an existing note",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return fmt.Errorf("usage: numen template new <name>")
			}
			lib, err := a.Templates()
			if err != nil {
				return err
			}

			content := "# {{title}}\n\n"
			if noteID := cmd.String("from-note"); noteID != "" {
				repo, err := a.Repo()
				if err != nil {
					return err
				}
				n, err := repo.Get(noteID)
				if err != nil {
					return err
				}
				content = n.Body
			}

			title := cmd.String("title")
			if title == "" {
				title = name
			}
			t, err := lib.Create(name, title, cmd.String("description"), content)
			if err != nil {
				return err
			}
			fmt.Printf("created template %s\n", ui.Accent.Render(t.Name))
			return nil
		},
	}
}

func (a *App) templateDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a template",
		ArgsUsage: "<name>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return fmt.Errorf("usage: numen template delete <name>")
			}
			lib, err := a.Templates()
			if err != nil {
				return err
			}
			if err := lib.Delete(name); err != nil {
				return err
			}
			if templates.IsDefault(name) {
				fmt.Printf("deleted %s (built-in, will be recreated; use 'template reset' to restore it now)\n", name)
				return nil
			}
			fmt.Printf("deleted %s\n", name)
			return nil
		},
	}
}

func (a *App) templateResetCmd() *cli.Command {
	return &cli.Command{
		Name:      "reset",
		Usage:     "Restore a built-in template to its shipped content",
		ArgsUsage: "<name>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.Args().First()
			if name == "" {
				return fmt.Errorf("usage: numen template reset <name>")
			}
			lib, err := a.Templates()
			if err != nil {
				return err
			}
			if err := lib.Reset(name); err != nil {
				return err
			}
			fmt.Printf("reset %s\n", name)
			return nil
		},
	}
}
