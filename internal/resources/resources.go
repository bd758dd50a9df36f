// Package resources implements MCP resource handlers for Shortcut entities.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing following MCP conventions: one static
// resource per collection (members://shortcut/members) and one template
// per gettable entity (stories://shortcut/stories/{story_id}).
package resources

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/HendryAvila/shortcut-mcp/internal/shortcut"
	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"
)

const mimeJSON = "application/json"

// API is the read-only subset of the Shortcut client resources need.
type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
}

// ReadFunc matches mcp-go's resource and resource-template handler signature.
type ReadFunc func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error)

// Handler serves Shortcut entities as MCP resources.
type Handler struct {
	api API
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(api API) *Handler {
	return &Handler{api: api}
}

// ListURI returns the static resource URI for a collection.
func ListURI(e shortcut.Entity) string {
	return e.Plural + "://shortcut/" + e.Plural
}

// ItemURITemplate returns the RFC 6570 template for a single record.
func ItemURITemplate(e shortcut.Entity) string {
	return ListURI(e) + "/{" + e.IDParam + "}"
}

// ListResource returns the MCP resource definition for a collection.
func (h *Handler) ListResource(e shortcut.Entity) mcp.Resource {
	return mcp.NewResource(
		ListURI(e),
		"Shortcut "+e.Plural,
		mcp.WithResourceDescription("All "+e.Plural+" in the Shortcut workspace"),
		mcp.WithMIMEType(mimeJSON),
	)
}

// ItemTemplate returns the MCP resource template for a single record.
func (h *Handler) ItemTemplate(e shortcut.Entity) mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		ItemURITemplate(e),
		"Shortcut "+e.Name,
		mcp.WithTemplateDescription("A single Shortcut "+e.Name+" by ID"),
		mcp.WithTemplateMIMEType(mimeJSON),
	)
}

// HandleList returns a handler that reads a whole collection.
func (h *Handler) HandleList(e shortcut.Entity) ReadFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return h.read(ctx, req.Params.URI, e.ListPath())
	}
}

// HandleItem returns a handler that reads one record addressed by the
// trailing segment of the request URI.
func (h *Handler) HandleItem(e shortcut.Entity) ReadFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id, err := idFromURI(ListURI(e), req.Params.URI)
		if err != nil {
			return nil, err
		}
		return h.read(ctx, req.Params.URI, e.ItemPath(id))
	}
}

// read fetches path and wraps the unchanged body as JSON resource contents.
func (h *Handler) read(ctx context.Context, uri, path string) ([]mcp.ResourceContents, error) {
	var raw json.RawMessage
	if err := h.api.Get(ctx, path, nil, &raw); err != nil {
		return nil, errors.Wrapf(err, "reading %s", uri)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(raw),
		},
	}, nil
}

// idFromURI extracts the id segment that follows base in uri.
func idFromURI(base, uri string) (string, error) {
	rest, ok := strings.CutPrefix(uri, base+"/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return "", errors.Newf("resource URI %q does not name a single record under %s", uri, base)
	}
	id, err := url.PathUnescape(rest)
	if err != nil {
		return "", errors.Wrapf(err, "decoding id in %q", uri)
	}
	if strings.TrimSpace(id) == "" {
		return "", errors.Newf("resource URI %q has an empty id", uri)
	}
	return id, nil
}
