package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/yaklabco/javafix/pkg/inspect"
)

// InspectionsURI is the resource listing the registered inspections.
const InspectionsURI = "javafix://inspections"

// InspectionInfo describes a registered inspection.
type InspectionInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Tags        []string `json:"tags,omitempty"`
	Fixes       []string `json:"fixes,omitempty"`
}

func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResource(
		mcplib.NewResource(InspectionsURI, "Inspections",
			mcplib.WithResourceDescription("The inspections javafix runs and the fix families they offer"),
			mcplib.WithMIMEType("application/json"),
		),
		h.inspections,
	)
}

func (h *handlers) inspections(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(describeInspections(h.sess.Engine.Registry), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling inspections: %w", err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func describeInspections(registry *inspect.Registry) []InspectionInfo {
	all := registry.Inspections()
	out := make([]InspectionInfo, 0, len(all))
	for _, insp := range all {
		out = append(out, InspectionInfo{
			ID:          insp.ID(),
			Name:        insp.Name(),
			Description: insp.Description(),
			Severity:    string(insp.DefaultSeverity()),
			Enabled:     insp.DefaultEnabled(),
			Tags:        insp.Tags(),
			Fixes:       insp.FixFamilies(),
		})
	}
	return out
}
