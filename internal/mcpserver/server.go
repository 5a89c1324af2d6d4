// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Raido search and note tools for LLM integration via
// stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/raido/internal/navservice"
	"github.com/starford/raido/internal/sorting"
)

// Server wraps the MCP server with Raido tools.
type Server struct {
	mcp         *server.MCPServer
	svc         *navservice.Service
	defaultSort sorting.Spec
}

// New creates a new MCP server with all Raido tools registered.
func New(svc *navservice.Service, defaultSort sorting.Spec) *Server {
	s := &Server{svc: svc, defaultSort: defaultSort}

	s.mcp = server.NewMCPServer(
		"Raido",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Search vault notes with the Raido filter syntax "+
			"(#tag, .property=value, @date, folder:, ext:, has:task; see the "+
			"get_query_syntax tool). Returns matching records as JSON."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Filter query string (empty matches everything)")),
		mcp.WithString("sort", mcp.Description("Sort option, e.g. modified-desc, title-asc, property-asc")),
		mcp.WithString("property", mcp.Description("Property key for the property sort options")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 20)")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List note paths, optionally restricted to a folder, in the default sort order."),
		mcp.WithString("folder", mcp.Description("Optional folder to list (empty for all)")),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the full content of a vault note."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the note (e.g. folder/note.md)")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new Markdown note at the specified path. "+
			"Use YAML frontmatter (title, tags, aliases, created) so the note "+
			"is searchable by tag, property, and date filters."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path for the new note (must end with .md)")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Markdown content with optional YAML frontmatter")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("get_query_syntax",
		mcp.WithDescription("Returns the full filter search syntax reference. "+
			"Call this before composing non-trivial search_notes queries."),
	), s.getQuerySyntax)

	// Resource: filter query syntax.
	s.mcp.AddResource(
		mcp.NewResource("raido://query-syntax", "Filter Search Syntax",
			mcp.WithResourceDescription("Reference for the Raido filter query language."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readQuerySyntaxResource,
	)

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

func (s *Server) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	spec := s.defaultSort
	if opt := req.GetString("sort", ""); opt != "" {
		spec.Option = sorting.Option(opt)
	}
	if key := req.GetString("property", ""); key != "" {
		spec.PropertyKey = key
	}
	limit := req.GetInt("limit", 20)

	res, err := s.svc.Search(ctx, navservice.SearchRequest{Query: q, Sort: spec, Limit: limit})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(res, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := ""
	if folder := req.GetString("folder", ""); folder != "" {
		q = "folder:/" + strings.Trim(folder, "/")
	}

	res, err := s.svc.Search(ctx, navservice.SearchRequest{Query: q, Sort: s.defaultSort})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var paths []string
	for _, rec := range res.Records {
		paths = append(paths, rec.Path)
	}
	if len(paths) == 0 {
		return mcp.NewToolResultText("no notes found"), nil
	}
	return mcp.NewToolResultText(strings.Join(paths, "\n")), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := s.svc.GetNote(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(note.Content), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := s.svc.CreateNote(ctx, path, []byte(content)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", path)), nil
}

func (s *Server) getQuerySyntax(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(QuerySyntaxContract), nil
}

func (s *Server) readQuerySyntaxResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "raido://query-syntax",
			MIMEType: "text/markdown",
			Text:     QuerySyntaxContract,
		},
	}, nil
}
