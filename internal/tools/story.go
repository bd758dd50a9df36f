package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/shortcut-mcp/internal/shortcut"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
)

var storyEntity = shortcut.Entity{Name: "story", Plural: "stories"}

// storyFields are the optional story attributes shared by create and update.
func storyFields(requireName bool) []mcp.ToolOption {
	nameOpts := []mcp.PropertyOption{mcp.Description("Story title")}
	if requireName {
		nameOpts = append(nameOpts, mcp.Required())
	}
	return []mcp.ToolOption{
		mcp.WithString("name", nameOpts...),
		mcp.WithString("description",
			mcp.Description("Markdown description"),
		),
		mcp.WithNumber("project_id",
			mcp.Description("Project the story belongs to"),
		),
		mcp.WithNumber("workflow_state_id",
			mcp.Description("Workflow state the story is in"),
		),
		mcp.WithNumber("epic_id",
			mcp.Description("Epic the story belongs to"),
		),
		mcp.WithNumber("estimate",
			mcp.Description("Point estimate; 0 is a valid estimate"),
		),
		mcp.WithArray("labels",
			mcp.Description("Label names to attach"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("owner_ids",
			mcp.Description("Member UUIDs that own the story"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	}
}

// storyBody maps the optional story arguments onto a request body.
func storyBody(req mcp.CallToolRequest) (body, error) {
	b := body{}
	b.str(req, "name", "name")
	b.str(req, "description", "description")
	for _, key := range []string{"project_id", "workflow_state_id", "epic_id"} {
		if err := b.id(req, key, key); err != nil {
			return nil, err
		}
	}
	if err := b.num(req, "estimate", "estimate"); err != nil {
		return nil, err
	}
	b.labels(req, "labels")
	b.list(req, "owner_ids", "owner_ids")
	return b, nil
}

// ─── CreateStoryTool ────────────────────────────────────────────────────────

// CreateStoryTool handles the create_story MCP tool.
type CreateStoryTool struct {
	api API
	log logrus.FieldLogger
}

// NewCreateStoryTool creates a CreateStoryTool.
func NewCreateStoryTool(api API, log logrus.FieldLogger) *CreateStoryTool {
	return &CreateStoryTool{api: api, log: log}
}

// Definition returns the MCP tool definition for create_story.
func (t *CreateStoryTool) Definition() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Create a new story in Shortcut."),
	}, storyFields(true)...)
	return mcp.NewTool("create_story", opts...)
}

// Handle processes the create_story tool call.
func (t *CreateStoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if req.GetString("name", "") == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	b, err := storyBody(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	story, err := post(ctx, t.api, storyEntity.ListPath(), b)
	if err != nil {
		t.log.WithError(err).Warn("create_story failed")
		return mcp.NewToolResultError(fmt.Sprintf("Error creating story: %v", err)), nil
	}

	msg := fmt.Sprintf("Story created successfully with ID %s", story.ID)
	return mcp.NewToolResultText(withURL(msg, " and URL ", story.AppURL)), nil
}

// ─── UpdateStoryTool ────────────────────────────────────────────────────────

// UpdateStoryTool handles the update_story MCP tool.
type UpdateStoryTool struct {
	api API
	log logrus.FieldLogger
}

// NewUpdateStoryTool creates an UpdateStoryTool.
func NewUpdateStoryTool(api API, log logrus.FieldLogger) *UpdateStoryTool {
	return &UpdateStoryTool{api: api, log: log}
}

// Definition returns the MCP tool definition for update_story.
func (t *UpdateStoryTool) Definition() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Update an existing story in Shortcut. Only the supplied fields change."),
		mcp.WithNumber("story_id",
			mcp.Required(),
			mcp.Description("ID of the story to update"),
		),
	}, storyFields(false)...)
	return mcp.NewTool("update_story", opts...)
}

// Handle processes the update_story tool call.
func (t *UpdateStoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := idArg(req, "story_id")
	if !ok {
		return mcp.NewToolResultError("'story_id' is required"), nil
	}

	b, err := storyBody(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var story created
	err = t.api.Put(ctx, storyEntity.ItemPath(id), b, &story)
	if err == nil {
		err = story.check()
	}
	if err != nil {
		t.log.WithError(err).WithField("story_id", id).Warn("update_story failed")
		return mcp.NewToolResultError(fmt.Sprintf("Error updating story: %v", err)), nil
	}

	msg := fmt.Sprintf("Story %s updated successfully.", id)
	return mcp.NewToolResultText(withURL(msg, " URL: ", story.AppURL)), nil
}
