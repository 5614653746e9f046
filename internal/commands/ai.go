package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/aguiarsc/numen/internal/transform"
	"github.com/aguiarsc/numen/internal/ui"
)

func (a *App) aiCmd() *cli.Command {
	return &cli.Command{
		Name:  "ai",
		Usage: "Apply an AI transformation to a note",
		Commands: []*cli.Command{
			a.aiIntentCmd(transform.IntentExpand, "Expand a note or section into fuller prose"),
			a.aiIntentCmd(transform.IntentSummarize, "Summarize a note or section into bullet points"),
			a.aiIntentCmd(transform.IntentPoetic, "Rewrite a note or section as a poem"),
			a.aiCustomCmd(),
		},
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "section",
			Aliases: []string{"s"},
			Usage:   "1-based section number to target; 0 targets the whole note",
		},
		&cli.StringFlag{
			Name:    "provider",
			Aliases: []string{"p"},
			Usage:   "Force a specific backend (openai, anthropic, gemini, ollama)",
		},
		&cli.BoolFlag{
			Name:  "preview",
			Usage: "Print the output without modifying the note",
		},
		&cli.BoolFlag{
			Name:  "replace",
			Usage: "Replace the target content instead of appending below it",
		},
	}
}

func (a *App) aiIntentCmd(intent transform.Intent, usage string) *cli.Command {
	return &cli.Command{
		Name:      string(intent),
		Usage:     usage,
		ArgsUsage: "<id>",
		Flags:     aiFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return fmt.Errorf("usage: numen ai %s <id>", intent)
			}
			return a.runTransform(ctx, cmd, transform.Request{NoteID: id, Intent: intent})
		},
	}
}

func (a *App) aiCustomCmd() *cli.Command {
	return &cli.Command{
		Name:      "custom",
		Usage:     "Transform a note or section with a free-form instruction",
		ArgsUsage: "<id> <instruction>",
		Flags:     aiFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			instruction := strings.Join(cmd.Args().Tail(), " ")
			if id == "" || strings.TrimSpace(instruction) == "" {
				return fmt.Errorf("usage: numen ai custom <id> <instruction>")
			}
			return a.runTransform(ctx, cmd, transform.Request{
				NoteID:      id,
				Intent:      transform.IntentCustom,
				Instruction: instruction,
			})
		},
	}
}

func (a *App) runTransform(ctx context.Context, cmd *cli.Command, req transform.Request) error {
	req.Section = int(cmd.Int("section"))
	req.Provider = cmd.String("provider")
	switch {
	case cmd.Bool("preview"):
		req.Policy = transform.PolicyPreview
	case cmd.Bool("replace"):
		req.Policy = transform.PolicyReplace
	default:
		req.Policy = transform.PolicyAppend
	}

	pipeline, err := a.Pipeline()
	if err != nil {
		return err
	}
	res, err := pipeline.Transform(ctx, req)
	if err != nil {
		return err
	}

	if res.Policy == transform.PolicyPreview {
		fmt.Print(ui.RenderMarkdown(res.Output))
		fmt.Println(ui.Muted.Render(fmt.Sprintf("(preview via %s, note unchanged)", res.Provider)))
		return nil
	}
	fmt.Printf("applied %s via %s\n", req.Intent, ui.Accent.Render(res.Provider))
	return nil
}
