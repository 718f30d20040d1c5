package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pkeller/tocedit/internal/config"
	"github.com/pkeller/tocedit/internal/storage"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"toc_get": {
		def:     getToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGet },
	},
	"toc_status": {
		def:     statusToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleStatus },
	},
	"toc_reason_set": {
		def:     reasonSetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleReasonSet },
	},
	"toc_tag_add": {
		def:     tagAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTagAdd },
	},
	"toc_tag_remove": {
		def:     tagRemoveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTagRemove },
	},
	"toc_assumption_add": {
		def:     assumptionAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAssumptionAdd },
	},
	"toc_assumption_update": {
		def:     assumptionUpdateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAssumptionUpdate },
	},
	"toc_assumption_delete": {
		def:     assumptionDeleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAssumptionDelete },
	},
	"toc_outcome_add": {
		def:     outcomeAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleOutcomeAdd },
	},
	"toc_outcome_update": {
		def:     outcomeUpdateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleOutcomeUpdate },
	},
	"toc_outcome_delete": {
		def:     outcomeDeleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleOutcomeDelete },
	},
	"toc_suboutcome_add": {
		def:     subOutcomeAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSubOutcomeAdd },
	},
	"toc_suboutcome_delete": {
		def:     subOutcomeDeleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSubOutcomeDelete },
	},
	"toc_item_add": {
		def:     itemAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleItemAdd },
	},
	"toc_item_update": {
		def:     itemUpdateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleItemUpdate },
	},
	"toc_item_delete": {
		def:     itemDeleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleItemDelete },
	},
	"toc_save": {
		def:     saveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSave },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with tocedit tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(store storage.Store, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"tocedit",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(store, cfg)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	// Register tools (skip disabled)
	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(store storage.Store, cfg *config.Config, version string) error {
	s := NewServer(store, cfg, version)
	return server.ServeStdio(s)
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
