package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
)

// CreateMilestoneTool handles the create_milestone MCP tool.
type CreateMilestoneTool struct {
	api API
	log logrus.FieldLogger
}

// NewCreateMilestoneTool creates a CreateMilestoneTool.
func NewCreateMilestoneTool(api API, log logrus.FieldLogger) *CreateMilestoneTool {
	return &CreateMilestoneTool{api: api, log: log}
}

// Definition returns the MCP tool definition for create_milestone.
func (t *CreateMilestoneTool) Definition() mcp.Tool {
	return mcp.NewTool("create_milestone",
		mcp.WithDescription("Create a new milestone in Shortcut."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Milestone name"),
		),
		mcp.WithString("description",
			mcp.Description("Markdown description"),
		),
		mcp.WithString("start_date",
			mcp.Description("Start date override (ISO 8601)"),
		),
		mcp.WithString("end_date",
			mcp.Description("Completion date override (ISO 8601)"),
		),
	)
}

// Handle processes the create_milestone tool call.
func (t *CreateMilestoneTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	b := body{"name": name}
	b.str(req, "description", "description")
	b.str(req, "start_date", "started_at_override")
	b.str(req, "end_date", "completed_at_override")

	milestone, err := post(ctx, t.api, "/milestones", b)
	if err != nil {
		t.log.WithError(err).Warn("create_milestone failed")
		return mcp.NewToolResultError(fmt.Sprintf("Error creating milestone: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Milestone created successfully with ID %s", milestone.ID)), nil
}
