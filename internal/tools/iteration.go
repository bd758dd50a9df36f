package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
)

// CreateIterationTool handles the create_iteration MCP tool.
type CreateIterationTool struct {
	api API
	log logrus.FieldLogger
}

// NewCreateIterationTool creates a CreateIterationTool.
func NewCreateIterationTool(api API, log logrus.FieldLogger) *CreateIterationTool {
	return &CreateIterationTool{api: api, log: log}
}

// Definition returns the MCP tool definition for create_iteration.
func (t *CreateIterationTool) Definition() mcp.Tool {
	return mcp.NewTool("create_iteration",
		mcp.WithDescription("Create a new iteration (sprint) in Shortcut."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Iteration name"),
		),
		mcp.WithString("start_date",
			mcp.Required(),
			mcp.Description("First day of the iteration (YYYY-MM-DD)"),
		),
		mcp.WithString("end_date",
			mcp.Required(),
			mcp.Description("Last day of the iteration (YYYY-MM-DD)"),
		),
		mcp.WithString("description",
			mcp.Description("Markdown description"),
		),
		mcp.WithArray("group_ids",
			mcp.Description("Team (group) UUIDs the iteration belongs to"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

// Handle processes the create_iteration tool call.
func (t *CreateIterationTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	b := body{}
	for _, key := range []string{"name", "start_date", "end_date"} {
		v := req.GetString(key, "")
		if v == "" {
			return mcp.NewToolResultError(fmt.Sprintf("'%s' is required", key)), nil
		}
		b[key] = v
	}
	b.str(req, "description", "description")
	b.list(req, "group_ids", "group_ids")

	iteration, err := post(ctx, t.api, "/iterations", b)
	if err != nil {
		t.log.WithError(err).Warn("create_iteration failed")
		return mcp.NewToolResultError(fmt.Sprintf("Error creating iteration: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Iteration created successfully with ID %s", iteration.ID)), nil
}
