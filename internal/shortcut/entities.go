package shortcut

import "net/url"

// Entity describes one Shortcut collection exposed read-only.
type Entity struct {
	// Name is the singular name, e.g. "story".
	Name string
	// Plural is the collection name and path segment, e.g. "stories".
	Plural string
	// IDParam is the argument carrying the id, e.g. "story_id".
	IDParam string
	// StringID is true when ids are UUID strings rather than integers.
	StringID bool
	// Gettable is false for collections that only support listing.
	Gettable bool
}

// ListPath returns the collection path, e.g. "/stories".
func (e Entity) ListPath() string {
	return "/" + e.Plural
}

// ItemPath returns the path of a single record, e.g. "/stories/42".
func (e Entity) ItemPath(id string) string {
	return "/" + e.Plural + "/" + url.PathEscape(id)
}

// Entities lists every collection served by the list/get tools and
// resources, in registration order.
var Entities = []Entity{
	{Name: "member", Plural: "members", IDParam: "member_id", StringID: true, Gettable: true},
	{Name: "story", Plural: "stories", IDParam: "story_id", Gettable: true},
	{Name: "epic", Plural: "epics", IDParam: "epic_id", Gettable: true},
	{Name: "milestone", Plural: "milestones", IDParam: "milestone_id", Gettable: true},
	{Name: "project", Plural: "projects", IDParam: "project_id", Gettable: true},
	{Name: "workflow", Plural: "workflows", IDParam: "workflow_id", Gettable: true},
	{Name: "iteration", Plural: "iterations", IDParam: "iteration_id", Gettable: true},
	{Name: "label", Plural: "labels", IDParam: "label_id"},
	{Name: "team", Plural: "teams", IDParam: "team_id"},
}
