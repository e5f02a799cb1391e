package resources

import (
	"context"
	_ "embed"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

//go:embed skills/browser-automation.md
var browserAutomationSkill string

// RegisterSkillResources registers the embedded skill documents. Skills
// are static markdown guides for tooling that lives outside this server.
func RegisterSkillResources(s *mcpserver.MCPServer) error {
	skillResource := mcp.NewResource(
		"skill://browser-automation",
		"Browser Automation Skill",
		mcp.WithResourceDescription("Guide for driving a browser through the browse CLI"),
		mcp.WithMIMEType("text/markdown"),
	)

	s.AddResource(skillResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			&mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "text/markdown",
				Text:     browserAutomationSkill,
			},
		}, nil
	})

	return nil
}
