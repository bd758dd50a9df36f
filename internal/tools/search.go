package tools

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
)

// SearchPageSize is the fixed page size sent to /search.
const SearchPageSize = 25

// searchResponse is the part of the /search payload we read. Each entry
// wraps a record of some type; only stories are kept.
type searchResponse struct {
	Data []struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	} `json:"data"`
}

// SearchStoriesTool handles the search_stories MCP tool.
type SearchStoriesTool struct {
	api API
	log logrus.FieldLogger
}

// NewSearchStoriesTool creates a SearchStoriesTool.
func NewSearchStoriesTool(api API, log logrus.FieldLogger) *SearchStoriesTool {
	return &SearchStoriesTool{api: api, log: log}
}

// Definition returns the MCP tool definition for search_stories.
func (t *SearchStoriesTool) Definition() mcp.Tool {
	return mcp.NewTool("search_stories",
		mcp.WithDescription(
			"Search for stories using Shortcut's search syntax "+
				"(e.g. 'owner:jane state:\"In Progress\" label:bug'). Returns at most 25 stories.",
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Shortcut search query"),
		),
	)
}

// Handle runs the search. Any failure yields an empty list.
func (t *SearchStoriesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	return jsonText(t.search(ctx, query))
}

func (t *SearchStoriesTool) search(ctx context.Context, query string) []json.RawMessage {
	stories := []json.RawMessage{}

	params := url.Values{
		"query":     {query},
		"page_size": {strconv.Itoa(SearchPageSize)},
	}
	var resp searchResponse
	if err := t.api.Get(ctx, "/search", params, &resp); err != nil {
		t.log.WithError(err).WithField("query", query).Error("Error searching stories")
		return stories
	}

	for _, item := range resp.Data {
		if item.Type == "story" && len(item.Data) > 0 {
			stories = append(stories, item.Data)
		}
	}
	return stories
}
