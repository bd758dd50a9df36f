package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
)

// CreateEpicTool handles the create_epic MCP tool.
type CreateEpicTool struct {
	api API
	log logrus.FieldLogger
}

// NewCreateEpicTool creates a CreateEpicTool.
func NewCreateEpicTool(api API, log logrus.FieldLogger) *CreateEpicTool {
	return &CreateEpicTool{api: api, log: log}
}

// Definition returns the MCP tool definition for create_epic.
func (t *CreateEpicTool) Definition() mcp.Tool {
	return mcp.NewTool("create_epic",
		mcp.WithDescription("Create a new epic in Shortcut."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Epic name"),
		),
		mcp.WithString("description",
			mcp.Description("Markdown description"),
		),
		mcp.WithNumber("milestone_id",
			mcp.Description("Milestone the epic belongs to"),
		),
		mcp.WithString("state",
			mcp.Description("Epic state"),
			mcp.Enum("to do", "in progress", "done"),
		),
		mcp.WithString("start_date",
			mcp.Description("Planned start date (ISO 8601)"),
		),
		mcp.WithString("end_date",
			mcp.Description("Deadline (ISO 8601)"),
		),
	)
}

// Handle processes the create_epic tool call.
func (t *CreateEpicTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	b := body{"name": name}
	b.str(req, "description", "description")
	if err := b.id(req, "milestone_id", "milestone_id"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b.str(req, "state", "state")
	b.str(req, "start_date", "start_date")
	b.str(req, "end_date", "deadline")

	epic, err := post(ctx, t.api, "/epics", b)
	if err != nil {
		t.log.WithError(err).Warn("create_epic failed")
		return mcp.NewToolResultError(fmt.Sprintf("Error creating epic: %v", err)), nil
	}

	msg := fmt.Sprintf("Epic created successfully with ID %s", epic.ID)
	return mcp.NewToolResultText(withURL(msg, " and URL ", epic.AppURL)), nil
}
