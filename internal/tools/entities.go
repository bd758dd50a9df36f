package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HendryAvila/shortcut-mcp/internal/shortcut"
	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListTool handles list_<entities> for one Shortcut collection.
type ListTool struct {
	api    API
	entity shortcut.Entity
}

// NewListTool creates a ListTool for the given collection.
func NewListTool(api API, entity shortcut.Entity) *ListTool {
	return &ListTool{api: api, entity: entity}
}

// Definition returns the MCP tool definition for list_<entities>.
func (t *ListTool) Definition() mcp.Tool {
	return mcp.NewTool("list_"+t.entity.Plural,
		mcp.WithDescription(fmt.Sprintf("List all %s in the Shortcut workspace.", t.entity.Plural)),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

// Handle fetches the collection and returns the body unchanged.
// API errors propagate to the host.
func (t *ListTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var raw json.RawMessage
	if err := t.api.Get(ctx, t.entity.ListPath(), nil, &raw); err != nil {
		return nil, errors.Wrapf(err, "listing %s", t.entity.Plural)
	}
	return mcp.NewToolResultText(string(raw)), nil
}

// GetTool handles get_<entity> for one Shortcut collection.
type GetTool struct {
	api    API
	entity shortcut.Entity
}

// NewGetTool creates a GetTool for the given collection.
func NewGetTool(api API, entity shortcut.Entity) *GetTool {
	return &GetTool{api: api, entity: entity}
}

// Definition returns the MCP tool definition for get_<entity>.
func (t *GetTool) Definition() mcp.Tool {
	desc := fmt.Sprintf("Get a single %s by ID.", t.entity.Name)
	idOpts := []mcp.PropertyOption{
		mcp.Required(),
		mcp.Description(fmt.Sprintf("ID of the %s", t.entity.Name)),
	}

	if t.entity.StringID {
		return mcp.NewTool("get_"+t.entity.Name,
			mcp.WithDescription(desc),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithString(t.entity.IDParam, idOpts...),
		)
	}
	return mcp.NewTool("get_"+t.entity.Name,
		mcp.WithDescription(desc),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithNumber(t.entity.IDParam, idOpts...),
	)
}

// Handle fetches one record and returns the body unchanged.
// API errors propagate to the host.
func (t *GetTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := idArg(req, t.entity.IDParam)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("'%s' is required", t.entity.IDParam)), nil
	}

	var raw json.RawMessage
	if err := t.api.Get(ctx, t.entity.ItemPath(id), nil, &raw); err != nil {
		return nil, errors.Wrapf(err, "getting %s %s", t.entity.Name, id)
	}
	return mcp.NewToolResultText(string(raw)), nil
}
