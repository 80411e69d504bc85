package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ziadkadry99/string-analyzer/internal/records"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the string analyzer as tools.
type Server struct {
	svc *records.Service
	log *zap.Logger
	mcp *server.MCPServer
}

// NewServer creates a new MCP server backed by svc.
func NewServer(svc *records.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		svc: svc,
		log: log,
	}

	s.mcp = server.NewMCPServer(
		"stranalyzer",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(analyzeStringTool, s.handleAnalyzeString)
	s.mcp.AddTool(createStringTool, s.handleCreateString)
	s.mcp.AddTool(getStringTool, s.handleGetString)
	s.mcp.AddTool(filterStringsTool, s.handleFilterStrings)
	s.mcp.AddTool(queryStringsTool, s.handleQueryStrings)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
