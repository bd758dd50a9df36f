package tools

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/HendryAvila/shortcut-mcp/internal/shortcut"
	"github.com/google/go-cmp/cmp"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

// recordedRequest is one call seen by the fake Shortcut API.
type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   map[string]any
}

// fakeShortcut is an httptest server that records every request and
// answers with a fixed status and body.
type fakeShortcut struct {
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	response string
}

func (f *fakeShortcut) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := recordedRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query()}
	if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
		_ = json.Unmarshal(raw, &rec.Body)
	}

	f.mu.Lock()
	f.requests = append(f.requests, rec)
	status, response := f.status, f.response
	f.mu.Unlock()

	w.WriteHeader(status)
	_, _ = io.WriteString(w, response)
}

// only returns the single recorded request, failing if there isn't exactly one.
func (f *fakeShortcut) only(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) != 1 {
		t.Fatalf("got %d requests, want exactly 1: %+v", len(f.requests), f.requests)
	}
	return f.requests[0]
}

func (f *fakeShortcut) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// newFake starts a fake API and returns a real client pointed at it.
func newFake(t *testing.T, status int, response string) (*shortcut.Client, *fakeShortcut) {
	t.Helper()
	fake := &fakeShortcut{status: status, response: response}
	ts := httptest.NewServer(fake)
	t.Cleanup(ts.Close)

	c, err := shortcut.New(shortcut.Config{BaseURL: ts.URL, Token: "test-token"})
	if err != nil {
		t.Fatalf("creating client: %v", err)
	}
	return c, fake
}

// quietLog returns a logger that discards output.
func quietLog() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// mustNotError fails the test on a Go error or a tool error result.
func mustNotError(t *testing.T, r *mcp.CallToolResult, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected Go error: %v", err)
	}
	if r == nil {
		t.Fatal("nil result")
	}
	if r.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(r))
	}
}

// diffBody compares a recorded JSON body against want.
func diffBody(t *testing.T, want, got map[string]any) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}
}

// hasRequired reports whether name is listed as required in the tool schema.
func hasRequired(def mcp.Tool, name string) bool {
	for _, r := range def.InputSchema.Required {
		if r == name {
			return true
		}
	}
	return false
}
