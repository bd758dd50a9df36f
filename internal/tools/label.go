package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
)

// CreateLabelTool handles the create_label MCP tool.
type CreateLabelTool struct {
	api API
	log logrus.FieldLogger
}

// NewCreateLabelTool creates a CreateLabelTool.
func NewCreateLabelTool(api API, log logrus.FieldLogger) *CreateLabelTool {
	return &CreateLabelTool{api: api, log: log}
}

// Definition returns the MCP tool definition for create_label.
func (t *CreateLabelTool) Definition() mcp.Tool {
	return mcp.NewTool("create_label",
		mcp.WithDescription("Create a new label in Shortcut."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Label name"),
		),
		mcp.WithString("description",
			mcp.Description("What the label is used for"),
		),
	)
}

// Handle processes the create_label tool call.
func (t *CreateLabelTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	b := body{"name": name}
	b.str(req, "description", "description")

	label, err := post(ctx, t.api, "/labels", b)
	if err != nil {
		t.log.WithError(err).Warn("create_label failed")
		return mcp.NewToolResultError(fmt.Sprintf("Error creating label: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Label '%s' created successfully with ID %s", name, label.ID)), nil
}
