// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it receives the concrete Shortcut
// client and injects it into the tools and resources that depend on
// abstractions. No business logic lives here, only wiring.
package server

import (
	"github.com/HendryAvila/shortcut-mcp/internal/resources"
	"github.com/HendryAvila/shortcut-mcp/internal/shortcut"
	"github.com/HendryAvila/shortcut-mcp/internal/tools"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

// Name is the MCP server name reported to hosts.
const Name = "shortcut-pm"

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools and resources
// registered against api.
func New(api tools.API, log logrus.FieldLogger) *server.MCPServer {
	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Read tools + resources, one pair per collection ---

	resourceHandler := resources.NewHandler(api)
	for _, e := range shortcut.Entities {
		listTool := tools.NewListTool(api, e)
		s.AddTool(listTool.Definition(), listTool.Handle)
		s.AddResource(resourceHandler.ListResource(e), server.ResourceHandlerFunc(resourceHandler.HandleList(e)))

		if !e.Gettable {
			continue
		}
		getTool := tools.NewGetTool(api, e)
		s.AddTool(getTool.Definition(), getTool.Handle)
		s.AddResourceTemplate(resourceHandler.ItemTemplate(e), server.ResourceTemplateHandlerFunc(resourceHandler.HandleItem(e)))
	}

	// --- Search ---

	searchTool := tools.NewSearchStoriesTool(api, log)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	// --- Write tools ---

	createStory := tools.NewCreateStoryTool(api, log)
	s.AddTool(createStory.Definition(), createStory.Handle)

	updateStory := tools.NewUpdateStoryTool(api, log)
	s.AddTool(updateStory.Definition(), updateStory.Handle)

	createEpic := tools.NewCreateEpicTool(api, log)
	s.AddTool(createEpic.Definition(), createEpic.Handle)

	createMilestone := tools.NewCreateMilestoneTool(api, log)
	s.AddTool(createMilestone.Definition(), createMilestone.Handle)

	createIteration := tools.NewCreateIterationTool(api, log)
	s.AddTool(createIteration.Definition(), createIteration.Handle)

	createLabel := tools.NewCreateLabelTool(api, log)
	s.AddTool(createLabel.Definition(), createLabel.Handle)

	return s
}

// serverInstructions returns the system instructions that tell the AI
// how to use the server effectively.
func serverInstructions() string {
	return `You have access to a Shortcut workspace through this server.

## Reading
- list_* tools return whole collections; get_* tools return one record by ID.
- Use search_stories with Shortcut search syntax (owner:, state:, label:, epic:)
  to find stories instead of listing everything. It returns at most 25 stories.
- The same data is available as resources, e.g. stories://shortcut/stories/{story_id}.

## Writing
- create_story, update_story, create_epic, create_milestone, create_iteration
  and create_label change the workspace. Confirm with the user before writing.
- Look up IDs first (list_projects, list_workflows, list_members) instead of
  guessing them.
- Only the fields you pass are sent; omit fields you do not want to change.
- A result starting with "Error" means nothing was changed; report the
  message to the user.`
}
