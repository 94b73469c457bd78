// Package mcpserver exposes the quick-fixes of a project over the Model
// Context Protocol so that editors and agents can query and apply them.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/yaklabco/javafix/pkg/session"
)

// serverName is the name announced to MCP clients.
const serverName = "javafix"

// New creates an MCP server with the javafix tools and resources registered
// against sess. Version is announced to clients.
func New(sess *session.Session, version string) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	h := &handlers{sess: sess, version: version}
	registerTools(s, h)
	registerResources(s, h)

	return s
}

// Serve runs the server over stdio until the client disconnects.
func Serve(sess *session.Session, version string) error {
	return server.ServeStdio(New(sess, version))
}
