// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the note collection to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aguiarsc/numen/internal/history"
	"github.com/aguiarsc/numen/internal/notes"
	"github.com/aguiarsc/numen/internal/section"
	"github.com/aguiarsc/numen/internal/transform"
)

// Server wraps the MCP server with note, history, and transform tools.
type Server struct {
	mcp      *server.MCPServer
	repo     *notes.Repository
	hist     *history.Store
	pipeline *transform.Pipeline
}

// New creates an MCP server with all tools registered.
func New(repo *notes.Repository, hist *history.Store, pipeline *transform.Pipeline) *Server {
	s := &Server{repo: repo, hist: hist, pipeline: pipeline}

	s.mcp = server.NewMCPServer(
		"Numen",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List all notes, newest first, optionally filtered by tag."),
		mcp.WithString("tag", mcp.Description("Optional tag to filter by")),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the full body of a note."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note identifier (exact or partial)")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new Markdown note with the given title and body."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Note title")),
		mcp.WithString("body", mcp.Description("Markdown body")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Case-insensitive full-text search through note content."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("transform_note",
		mcp.WithDescription("Apply an AI transformation (expand, summarize, poetic, custom) "+
			"to a note or one of its sections. The previous body is snapshotted first."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note identifier")),
		mcp.WithString("intent", mcp.Required(), mcp.Description("One of: expand, summarize, poetic, custom")),
		mcp.WithString("instruction", mcp.Description("Custom instruction (required for intent=custom)")),
		mcp.WithNumber("section", mcp.Description("1-based section number; 0 or omitted targets the whole note")),
		mcp.WithString("policy", mcp.Description("Merge policy: preview, append (default), or replace")),
	), s.transformNote)

	s.mcp.AddTool(mcp.NewTool("history_list",
		mcp.WithDescription("List the saved versions of a note, oldest first."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note identifier")),
	), s.historyList)

	s.mcp.AddTool(mcp.NewTool("history_restore",
		mcp.WithDescription("Restore a note body to a saved version. The current body "+
			"is snapshotted before the restore, so nothing is lost."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note identifier")),
		mcp.WithNumber("version", mcp.Required(), mcp.Description("0-based version number to restore")),
	), s.historyRestore)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag := req.GetString("tag", "")
	list, err := s.repo.List(tag)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	type row struct {
		ID    string   `json:"id"`
		Title string   `json:"title"`
		Date  string   `json:"date,omitempty"`
		Tags  []string `json:"tags,omitempty"`
	}
	rows := make([]row, 0, len(list))
	for _, n := range list {
		r := row{ID: n.ID, Title: n.Title, Tags: n.Tags}
		if !n.Date.IsZero() {
			r.Date = n.Date.Format("2006-01-02")
		}
		rows = append(rows, r)
	}
	out, _ := json.MarshalIndent(rows, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n, err := s.repo.Get(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(n.Body), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	body := req.GetString("body", "")
	n, err := s.repo.Create(title, body, time.Now())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", n.ID)), nil
}

func (s *Server) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.repo.Search(query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var ids []string
	for _, n := range results {
		ids = append(ids, n.ID)
	}
	if len(ids) == 0 {
		return mcp.NewToolResultText("no matches"), nil
	}
	return mcp.NewToolResultText(strings.Join(ids, "\n")), nil
}

func (s *Server) transformNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	intent, err := req.RequireString("intent")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	policy := transform.MergePolicy(req.GetString("policy", string(transform.PolicyAppend)))

	res, err := s.pipeline.Transform(ctx, transform.Request{
		NoteID:      id,
		Intent:      transform.Intent(intent),
		Instruction: req.GetString("instruction", ""),
		Section:     req.GetInt("section", section.WholeNote),
		Policy:      policy,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if res.Policy == transform.PolicyPreview {
		return mcp.NewToolResultText(res.Output), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("applied %s via %s:\n\n%s", intent, res.Provider, res.Output)), nil
}

func (s *Server) historyList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	stem, err := s.repo.Resolve(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entries, err := s.hist.List(stem)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("no history"), nil
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%d\t%s\t%s\t%s\n", e.Seq, e.CreatedAt.Format(time.RFC3339), e.Checksum, e.Message)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) historyRestore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	seq, err := req.RequireInt("version")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	stem, err := s.repo.Resolve(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	body, err := s.hist.Restore(stem, seq)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	// Snapshot the current body so the restore itself is reversible.
	n, err := s.repo.Get(stem)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := s.hist.Snapshot(stem, n.Body, fmt.Sprintf("auto: before restore to %d", seq)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.repo.WriteBody(stem, body); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("restored %s to version %d", stem, seq)), nil
}
