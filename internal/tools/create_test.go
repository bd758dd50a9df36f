package tools

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

// handler is the common shape of every tool under test.
type handler interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

func TestCreateTools_Bodies(t *testing.T) {
	tests := []struct {
		name     string
		newTool  func(API) handler
		path     string
		args     map[string]any
		wantBody map[string]any
		wantText string
	}{
		{
			name:     "epic name only",
			newTool:  func(a API) handler { return NewCreateEpicTool(a, quietLog()) },
			path:     "/epics",
			args:     map[string]any{"name": "Auth"},
			wantBody: map[string]any{"name": "Auth"},
			wantText: "Epic created successfully with ID 77 and URL https://app.shortcut.com/acme/x/77",
		},
		{
			name:    "epic all fields",
			newTool: func(a API) handler { return NewCreateEpicTool(a, quietLog()) },
			path:    "/epics",
			args: map[string]any{
				"name":         "Auth",
				"description":  "SSO and MFA",
				"milestone_id": float64(4),
				"state":        "in progress",
				"start_date":   "2026-01-01",
				"end_date":     "2026-03-31",
			},
			wantBody: map[string]any{
				"name":         "Auth",
				"description":  "SSO and MFA",
				"milestone_id": float64(4),
				"state":        "in progress",
				"start_date":   "2026-01-01",
				"deadline":     "2026-03-31",
			},
			wantText: "Epic created successfully with ID 77",
		},
		{
			name:    "epic falsy optionals dropped",
			newTool: func(a API) handler { return NewCreateEpicTool(a, quietLog()) },
			path:    "/epics",
			args: map[string]any{
				"name":         "Auth",
				"description":  "",
				"milestone_id": float64(0),
				"end_date":     "",
			},
			wantBody: map[string]any{"name": "Auth"},
			wantText: "Epic created successfully",
		},
		{
			name:    "milestone date overrides",
			newTool: func(a API) handler { return NewCreateMilestoneTool(a, quietLog()) },
			path:    "/milestones",
			args: map[string]any{
				"name":       "Q1",
				"start_date": "2026-01-01",
				"end_date":   "2026-03-31",
			},
			wantBody: map[string]any{
				"name":                  "Q1",
				"started_at_override":   "2026-01-01",
				"completed_at_override": "2026-03-31",
			},
			wantText: "Milestone created successfully with ID 77",
		},
		{
			name:     "milestone name only",
			newTool:  func(a API) handler { return NewCreateMilestoneTool(a, quietLog()) },
			path:     "/milestones",
			args:     map[string]any{"name": "Q1", "description": ""},
			wantBody: map[string]any{"name": "Q1"},
			wantText: "Milestone created successfully with ID 77",
		},
		{
			name:    "iteration",
			newTool: func(a API) handler { return NewCreateIterationTool(a, quietLog()) },
			path:    "/iterations",
			args: map[string]any{
				"name":        "Sprint 12",
				"start_date":  "2026-02-02",
				"end_date":    "2026-02-13",
				"description": "Checkout revamp",
				"group_ids":   []any{"team-uuid"},
			},
			wantBody: map[string]any{
				"name":        "Sprint 12",
				"start_date":  "2026-02-02",
				"end_date":    "2026-02-13",
				"description": "Checkout revamp",
				"group_ids":   []any{"team-uuid"},
			},
			wantText: "Iteration created successfully with ID 77",
		},
		{
			name:    "iteration without optionals",
			newTool: func(a API) handler { return NewCreateIterationTool(a, quietLog()) },
			path:    "/iterations",
			args: map[string]any{
				"name":       "Sprint 12",
				"start_date": "2026-02-02",
				"end_date":   "2026-02-13",
				"group_ids":  []any{},
			},
			wantBody: map[string]any{
				"name":       "Sprint 12",
				"start_date": "2026-02-02",
				"end_date":   "2026-02-13",
			},
			wantText: "Iteration created successfully with ID 77",
		},
		{
			name:     "label",
			newTool:  func(a API) handler { return NewCreateLabelTool(a, quietLog()) },
			path:     "/labels",
			args:     map[string]any{"name": "bug", "description": "Something is broken"},
			wantBody: map[string]any{"name": "bug", "description": "Something is broken"},
			wantText: "Label 'bug' created successfully with ID 77",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, fake := newFake(t, http.StatusCreated, `{"id":77,"app_url":"https://app.shortcut.com/acme/x/77"}`)
			tool := tt.newTool(api)

			result, err := tool.Handle(context.Background(), makeReq(tt.args))
			mustNotError(t, result, err)

			req := fake.only(t)
			if req.Method != http.MethodPost || req.Path != tt.path {
				t.Errorf("request = %s %s, want POST %s", req.Method, req.Path, tt.path)
			}
			diffBody(t, tt.wantBody, req.Body)

			if got := resultText(result); !strings.HasPrefix(got, tt.wantText) {
				t.Errorf("result = %q, want prefix %q", got, tt.wantText)
			}
		})
	}
}

func TestCreateTools_HTTPErrorBecomesText(t *testing.T) {
	tests := []struct {
		name    string
		tool    func(API) handler
		args    map[string]any
		wantPfx string
	}{
		{"epic", func(a API) handler { return NewCreateEpicTool(a, quietLog()) },
			map[string]any{"name": "E"}, "Error creating epic:"},
		{"milestone", func(a API) handler { return NewCreateMilestoneTool(a, quietLog()) },
			map[string]any{"name": "M"}, "Error creating milestone:"},
		{"iteration", func(a API) handler { return NewCreateIterationTool(a, quietLog()) },
			map[string]any{"name": "I", "start_date": "2026-01-01", "end_date": "2026-01-14"}, "Error creating iteration:"},
		{"label", func(a API) handler { return NewCreateLabelTool(a, quietLog()) },
			map[string]any{"name": "L"}, "Error creating label:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, _ := newFake(t, http.StatusUnprocessableEntity, `{"message":"invalid input"}`)

			result, err := tt.tool(api).Handle(context.Background(), makeReq(tt.args))
			if err != nil {
				t.Fatalf("mutation tools must not return Go errors, got: %v", err)
			}
			text := resultText(result)
			if !strings.HasPrefix(text, tt.wantPfx) {
				t.Errorf("result = %q, want prefix %q", text, tt.wantPfx)
			}
			if !strings.Contains(text, "invalid input") {
				t.Errorf("result should include the underlying message, got: %s", text)
			}
		})
	}
}

func TestCreateIteration_RequiresDates(t *testing.T) {
	api, fake := newFake(t, http.StatusCreated, `{"id":1}`)
	tool := NewCreateIterationTool(api, quietLog())

	for _, missing := range []string{"name", "start_date", "end_date"} {
		args := map[string]any{"name": "S", "start_date": "2026-01-01", "end_date": "2026-01-14"}
		delete(args, missing)

		result, err := tool.Handle(context.Background(), makeReq(args))
		if err != nil {
			t.Fatalf("unexpected Go error: %v", err)
		}
		if !result.IsError || !strings.Contains(resultText(result), missing) {
			t.Errorf("missing %s: expected tool error naming it, got %q", missing, resultText(result))
		}
	}
	if fake.count() != 0 {
		t.Errorf("no request should be issued, got %d", fake.count())
	}

	if !hasRequired(tool.Definition(), "start_date") || !hasRequired(tool.Definition(), "end_date") {
		t.Error("start_date and end_date should be required")
	}
}

func TestCreateTools_MissingName(t *testing.T) {
	api, fake := newFake(t, http.StatusCreated, `{"id":1}`)
	for _, tool := range []handler{
		NewCreateEpicTool(api, quietLog()),
		NewCreateMilestoneTool(api, quietLog()),
		NewCreateLabelTool(api, quietLog()),
	} {
		result, err := tool.Handle(context.Background(), makeReq(map[string]any{}))
		if err != nil {
			t.Fatalf("%s: unexpected Go error: %v", tool.Definition().Name, err)
		}
		if !result.IsError {
			t.Errorf("%s: expected tool error for missing name", tool.Definition().Name)
		}
	}
	if fake.count() != 0 {
		t.Errorf("no request should be issued, got %d", fake.count())
	}
}

func TestCreateEpic_InvalidMilestoneID(t *testing.T) {
	for _, v := range []any{4.5, 1e20, "four"} {
		api, fake := newFake(t, http.StatusCreated, `{"id":77}`)
		result, err := NewCreateEpicTool(api, quietLog()).Handle(context.Background(), makeReq(map[string]any{
			"name":         "Auth",
			"milestone_id": v,
		}))
		if err != nil {
			t.Fatalf("unexpected Go error: %v", err)
		}
		if !result.IsError || !strings.Contains(resultText(result), "milestone_id") {
			t.Errorf("milestone_id %v: expected tool error naming the field, got: %s", v, resultText(result))
		}
		if fake.count() != 0 {
			t.Errorf("milestone_id %v: no request should be issued", v)
		}
	}
}

func TestCreateEpic_OmitMissingURL(t *testing.T) {
	api, _ := newFake(t, http.StatusCreated, `{"id":77}`)

	result, err := NewCreateEpicTool(api, quietLog()).Handle(context.Background(), makeReq(map[string]any{"name": "Auth"}))
	mustNotError(t, result, err)
	if got, want := resultText(result), "Epic created successfully with ID 77"; got != want {
		t.Errorf("result = %q, want %q", got, want)
	}
}
