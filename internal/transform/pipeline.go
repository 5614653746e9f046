// Package transform orchestrates AI edits of a note: resolve the target
// locus, invoke the provider gateway, merge the output back under a policy,
// and snapshot the prior body before any destructive write.
package transform

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aguiarsc/numen/internal/history"
	"github.com/aguiarsc/numen/internal/notes"
	"github.com/aguiarsc/numen/internal/section"
)

// MergePolicy is the rule for combining provider output with the original text.
type MergePolicy string

const (
	// PolicyPreview returns the output without touching the note.
	PolicyPreview MergePolicy = "preview"
	// PolicyAppend concatenates the output after the original span.
	// This is the default policy.
	PolicyAppend MergePolicy = "append"
	// PolicyReplace substitutes the span content with the output.
	PolicyReplace MergePolicy = "replace"
)

// Headings inserted above appended AI output, matching the note layout users
// see after an append: H2 after a whole-note append, H3 inside a section.
const (
	appendHeadingNote    = "## AI-Generated Content"
	appendHeadingSection = "### AI-Generated Content"
)

// Request describes one transform.
type Request struct {
	NoteID      string
	Intent      Intent
	Instruction string // custom instruction, used when Intent == IntentCustom
	Section     int    // 1-based ordinal; section.WholeNote targets the full body
	Policy      MergePolicy
	Provider    string // explicit backend; empty uses the configured default
}

// Result is the outcome of a successful transform.
type Result struct {
	Output   string      // text returned by the provider
	Provider string      // backend that serviced the request
	Policy   MergePolicy // policy that was applied
	Section  section.Section
	NewBody  string // written-back body; empty for preview
}

// Invoker is the provider gateway capability the pipeline depends on.
type Invoker interface {
	Invoke(ctx context.Context, selector, prompt string) (output, servicedBy string, err error)
}

// Snapshotter is the history capability the pipeline depends on.
type Snapshotter interface {
	Snapshot(noteID, body, message string) (*history.Entry, error)
}

// Pipeline wires the note repository, section indexer, provider gateway, and
// history store into the transform operation.
type Pipeline struct {
	repo    *notes.Repository
	hist    Snapshotter
	gateway Invoker
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a pipeline. timeout bounds each provider call; zero means no bound.
func New(repo *notes.Repository, hist Snapshotter, gateway Invoker, timeout time.Duration, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{repo: repo, hist: hist, gateway: gateway, timeout: timeout, logger: logger}
}

// Transform runs one request to completion. Every failure path leaves the
// note byte-identical to its pre-call state: the body is only written after
// the provider call succeeds and the prior body has been snapshotted.
func (p *Pipeline) Transform(ctx context.Context, req Request) (*Result, error) {
	n, err := p.repo.Get(req.NoteID)
	if err != nil {
		return nil, err
	}

	sec, err := section.Resolve(n.Body, req.Section)
	if err != nil {
		return nil, fmt.Errorf("note %s: %w", n.ID, err)
	}

	prompt, err := buildPrompt(req.Intent, req.Instruction, sec.Text)
	if err != nil {
		return nil, err
	}

	callCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	output, servicedBy, err := p.gateway.Invoke(callCtx, req.Provider, prompt)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("provider call complete",
		slog.String("note", n.ID),
		slog.String("provider", servicedBy),
		slog.String("intent", string(req.Intent)))

	res := &Result{Output: output, Provider: servicedBy, Policy: req.Policy, Section: sec}

	policy := req.Policy
	if policy == "" {
		policy = PolicyAppend
	}
	if policy == PolicyPreview {
		return res, nil
	}

	var newBody string
	switch policy {
	case PolicyAppend:
		newBody = appendAfter(n.Body, sec, output)
	case PolicyReplace:
		newBody = replaceSpan(n.Body, sec, output)
	default:
		return nil, fmt.Errorf("transform: unknown merge policy %q", policy)
	}

	// Snapshot the pre-transform body first. A failed snapshot aborts the
	// transform: an unrecoverable overwrite is worse than a lost AI edit.
	message := fmt.Sprintf("auto: before ai %s", req.Intent)
	if _, err := p.hist.Snapshot(n.ID, n.Body, message); err != nil {
		return nil, err
	}

	if err := p.repo.WriteBody(n.ID, newBody); err != nil {
		return nil, err
	}
	res.NewBody = newBody
	return res, nil
}

// appendAfter inserts the output after the span, separated by a blank line
// and an AI-content heading one level below the span's place in the note.
func appendAfter(body string, sec section.Section, output string) string {
	heading := appendHeadingSection
	if sec.Ordinal == section.WholeNote {
		heading = appendHeadingNote
	}
	before := strings.TrimRight(body[:sec.End], "\n")
	after := body[sec.End:]

	chunk := before
	if chunk != "" {
		chunk += "\n\n"
	}
	chunk += heading + "\n\n" + strings.TrimRight(output, "\n")
	if after != "" {
		chunk += "\n\n"
	}
	return chunk + after
}

// replaceSpan substitutes the span content with the output. A section's
// heading line is structural metadata and survives the replacement; a
// whole-note locus replaces the entire body.
func replaceSpan(body string, sec section.Section, output string) string {
	start := sec.Start
	if sec.Heading != "" {
		if i := strings.IndexByte(sec.Text, '\n'); i >= 0 {
			start += i + 1
		} else {
			// Heading-only section: keep the heading line, append below it.
			return body[:sec.End] + "\n" + output
		}
	}
	return body[:start] + output + body[sec.End:]
}
