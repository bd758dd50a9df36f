// Package tools implements the MCP tool handlers backed by the Shortcut API.
//
// Each tool receives its dependencies via its struct (DIP) and exposes a
// Definition for registration plus a Handle compatible with mcp-go's
// CallToolRequest signature.
//
// Design principles:
// - SRP: each file = one entity family
// - DIP: tools depend on the API interface, not on *shortcut.Client
// - Reads propagate API errors to the host; writes turn them into
//   error results; search degrades to an empty list
package tools

import (
	"context"
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"
)

// API is the subset of the Shortcut client the tools need.
// *shortcut.Client satisfies it.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
}

// maxInt64 is 2^63, the first float64 that no longer fits in an int64.
const maxInt64 = 1 << 63

// wholeNumber converts a JSON number to int64, rejecting fractions and
// values outside the int64 range.
func wholeNumber(v float64) (int64, bool) {
	if v != math.Trunc(v) || v < -maxInt64 || v >= maxInt64 {
		return 0, false
	}
	return int64(v), true
}

// idArg returns an entity id argument as a string. JSON numbers must be
// positive integers; strings must be non-blank.
func idArg(req mcp.CallToolRequest, key string) (string, bool) {
	switch v := req.GetArguments()[key].(type) {
	case float64:
		n, ok := wholeNumber(v)
		if !ok || n <= 0 {
			return "", false
		}
		return strconv.FormatInt(n, 10), true
	case string:
		v = strings.TrimSpace(v)
		return v, v != ""
	default:
		return "", false
	}
}

// intArg reports an integer argument and whether it was supplied at all.
// JSON numbers arrive as float64; numeric strings are accepted too. A
// supplied value that is not a whole int64 is an error, never truncated.
func intArg(req mcp.CallToolRequest, key string) (int64, bool, error) {
	switch v := req.GetArguments()[key].(type) {
	case nil:
		return 0, false, nil
	case float64:
		n, ok := wholeNumber(v)
		if !ok {
			return 0, false, errors.Newf("'%s' must be a whole number, got %v", key, v)
		}
		return n, true, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return 0, false, nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false, errors.Newf("'%s' must be a whole number, got %q", key, v)
		}
		return n, true, nil
	default:
		return 0, false, errors.Newf("'%s' must be a number, got %T", key, v)
	}
}

// stringsArg extracts a list of strings, skipping blank and non-string items.
func stringsArg(req mcp.CallToolRequest, key string) []string {
	var out []string
	switch v := req.GetArguments()[key].(type) {
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
	case []string:
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// body accumulates a request body, keeping only supplied values.
type body map[string]any

// str sets key when the string argument is non-empty.
func (b body) str(req mcp.CallToolRequest, arg, key string) {
	if v := req.GetString(arg, ""); v != "" {
		b[key] = v
	}
}

// id sets key when the integer argument is non-zero. Zero is never a
// valid Shortcut id, so it counts as "not supplied".
func (b body) id(req mcp.CallToolRequest, arg, key string) error {
	v, ok, err := intArg(req, arg)
	if err != nil {
		return err
	}
	if ok && v != 0 {
		b[key] = v
	}
	return nil
}

// num sets key whenever the integer argument is present, including 0.
func (b body) num(req mcp.CallToolRequest, arg, key string) error {
	v, ok, err := intArg(req, arg)
	if err != nil {
		return err
	}
	if ok {
		b[key] = v
	}
	return nil
}

// list sets key when the string-list argument has at least one item.
func (b body) list(req mcp.CallToolRequest, arg, key string) {
	if v := stringsArg(req, arg); len(v) > 0 {
		b[key] = v
	}
}

// labels sets "labels" as [{"name": ...}] objects.
func (b body) labels(req mcp.CallToolRequest, arg string) {
	names := stringsArg(req, arg)
	if len(names) == 0 {
		return
	}
	labels := make([]map[string]string, 0, len(names))
	for _, n := range names {
		labels = append(labels, map[string]string{"name": n})
	}
	b["labels"] = labels
}

// created is the part of a create/update response the tools report back.
type created struct {
	ID     json.Number `json:"id"`
	AppURL string      `json:"app_url"`
}

// errMissingID flags a 2xx response that does not look like an entity.
var errMissingID = errors.New("unexpected response: missing id")

// check guards against a success response without an id.
func (c created) check() error {
	if c.ID.String() == "" {
		return errMissingID
	}
	return nil
}

// withURL appends sep and appURL to msg when the response carried an app_url.
func withURL(msg, sep, appURL string) string {
	if appURL == "" {
		return msg
	}
	return msg + sep + appURL
}

// post creates an entity and returns its id and URL.
func post(ctx context.Context, api API, path string, b body) (created, error) {
	var c created
	if err := api.Post(ctx, path, b, &c); err != nil {
		return c, err
	}
	return c, c.check()
}

// jsonText renders a value as an indented JSON text result.
func jsonText(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
