// Package mcp exposes the dossier catalog to AI agents over the Model
// Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/scholia-labs/scholia/internal/catalog"
	"github.com/scholia-labs/scholia/internal/content"
)

// Version is set via ldflags at build time.
var Version = "dev"

// LibraryFunc returns the current content library.
type LibraryFunc func() *content.Library

// Server wraps an MCP server that exposes catalog tools.
type Server struct {
	store   *catalog.Store
	library LibraryFunc
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server over a synced catalog and the library
// it was synced from.
func NewServer(store *catalog.Store, library LibraryFunc) *Server {
	s := &Server{
		store:   store,
		library: library,
	}

	s.mcp = server.NewMCPServer(
		"scholia",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(listLegendsTool, s.handleListLegends)
	s.mcp.AddTool(searchMarginaliaTool, s.handleSearchMarginalia)
	s.mcp.AddTool(getVolumeTool, s.handleGetVolume)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
