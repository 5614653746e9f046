package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/aguiarsc/numen/internal/backup"
	"github.com/aguiarsc/numen/internal/storage"
)

func (a *App) backupCmd() *cli.Command {
	return &cli.Command{
		Name:      "backup",
		Usage:     "Export all notes to a zip archive",
		ArgsUsage: "[output.zip]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			out := cmd.Args().First()
			if out == "" {
				out = fmt.Sprintf("numen-backup-%s.zip", time.Now().Format("20060102-150405"))
			}
			store, err := storage.NewFS(a.cfg.Paths.NotesDir)
			if err != nil {
				return err
			}
			count, err := backup.Export(store, out)
			if err != nil {
				return err
			}
			if count == 0 {
				fmt.Println("no notes to back up")
				return nil
			}
			fmt.Printf("archived %d notes to %s\n", count, out)
			return nil
		},
	}
}

func (a *App) importCmd() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import notes from a zip archive",
		ArgsUsage: "<archive.zip>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "overwrite",
				Usage: "Replace existing notes that share a name with an archive entry",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			archive := cmd.Args().First()
			if archive == "" {
				return fmt.Errorf("usage: numen import <archive.zip>")
			}
			store, err := storage.NewFS(a.cfg.Paths.NotesDir)
			if err != nil {
				return err
			}
			res, err := backup.Import(store, archive, cmd.Bool("overwrite"))
			if err != nil {
				return err
			}
			fmt.Printf("imported %d notes, skipped %d\n", res.Imported, res.Skipped)
			return nil
		},
	}
}
