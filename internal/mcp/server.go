package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/locle27/Koyeb-Booking-sub000/internal/rag"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that lets agents consult the concierge.
type Server struct {
	api rag.API
	mcp *server.MCPServer
}

// NewServer creates a new MCP server over the concierge API.
func NewServer(api rag.API) *Server {
	s := &Server{api: api}

	s.mcp = server.NewMCPServer(
		"concierge",
		Version,
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(askConciergeTool, s.handleAskConcierge)
	s.mcp.AddTool(retrieveContextTool, s.handleRetrieveContext)
	s.mcp.AddTool(listKnowledgeTool, s.handleListKnowledge)
	s.mcp.AddTool(guestHistoryTool, s.handleGuestHistory)

	return s
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
