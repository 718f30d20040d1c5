package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions. One tool per editor operation; argument shapes match
// the request types in handlers.go.

var getToolDef = mcp.NewTool("toc_get",
	mcp.WithDescription("Get the full theory-of-change document and its dirty flag"),
)

var statusToolDef = mcp.NewTool("toc_status",
	mcp.WithDescription("Get the dirty flag and last save time"),
)

var reasonSetToolDef = mcp.NewTool("toc_reason_set",
	mcp.WithDescription("Set the free-text reason statement"),
	mcp.WithString("text", mcp.Required(), mcp.Description("New reason text (markdown allowed)")),
)

var tagAddToolDef = mcp.NewTool("toc_tag_add",
	mcp.WithDescription("Add an audience tag; case-insensitive duplicates are ignored"),
	mcp.WithString("value", mcp.Required(), mcp.Description("Tag value")),
)

var tagRemoveToolDef = mcp.NewTool("toc_tag_remove",
	mcp.WithDescription("Remove the tag at a position"),
	mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based tag position")),
)

var assumptionAddToolDef = mcp.NewTool("toc_assumption_add",
	mcp.WithDescription("Add a row to the assumptions table"),
	mcp.WithString("description", mcp.Required(), mcp.Description("Assumption description")),
	mcp.WithString("certainty", mcp.Description("Very certain|Moderately certain|Uncertain (default: Very certain)")),
)

var assumptionUpdateToolDef = mcp.NewTool("toc_assumption_update",
	mcp.WithDescription("Update an assumption row; only supplied fields change"),
	mcp.WithString("id", mcp.Required(), mcp.Description("Row id")),
	mcp.WithString("description", mcp.Description("New description")),
	mcp.WithString("certainty", mcp.Description("New certainty rating")),
)

var assumptionDeleteToolDef = mcp.NewTool("toc_assumption_delete",
	mcp.WithDescription("Delete an assumption row"),
	mcp.WithString("id", mcp.Required(), mcp.Description("Row id")),
)

var outcomeAddToolDef = mcp.NewTool("toc_outcome_add",
	mcp.WithDescription("Add a direct outcome"),
	mcp.WithString("title", mcp.Required(), mcp.Description("Outcome title")),
)

var outcomeUpdateToolDef = mcp.NewTool("toc_outcome_update",
	mcp.WithDescription("Rename a direct outcome"),
	mcp.WithString("id", mcp.Required(), mcp.Description("Outcome id")),
	mcp.WithString("title", mcp.Required(), mcp.Description("New title")),
)

var outcomeDeleteToolDef = mcp.NewTool("toc_outcome_delete",
	mcp.WithDescription("Delete a direct outcome and all its sub-outcomes"),
	mcp.WithString("id", mcp.Required(), mcp.Description("Outcome id")),
)

var subOutcomeAddToolDef = mcp.NewTool("toc_suboutcome_add",
	mcp.WithDescription("Add a sub-outcome under a direct outcome"),
	mcp.WithString("outcome_id", mcp.Required(), mcp.Description("Parent outcome id")),
	mcp.WithString("text", mcp.Required(), mcp.Description("Sub-outcome text")),
)

var subOutcomeDeleteToolDef = mcp.NewTool("toc_suboutcome_delete",
	mcp.WithDescription("Delete a sub-outcome"),
	mcp.WithString("outcome_id", mcp.Required(), mcp.Description("Parent outcome id")),
	mcp.WithString("sub_id", mcp.Required(), mcp.Description("Sub-outcome id")),
)

var itemAddToolDef = mcp.NewTool("toc_item_add",
	mcp.WithDescription("Add a record to the indirect or ultimate outcome list"),
	mcp.WithString("list", mcp.Required(), mcp.Description("indirect|ultimate")),
	mcp.WithString("text", mcp.Required(), mcp.Description("Record text")),
)

var itemUpdateToolDef = mcp.NewTool("toc_item_update",
	mcp.WithDescription("Replace the text of a record in the indirect or ultimate list"),
	mcp.WithString("list", mcp.Required(), mcp.Description("indirect|ultimate")),
	mcp.WithString("id", mcp.Required(), mcp.Description("Record id")),
	mcp.WithString("text", mcp.Required(), mcp.Description("New text")),
)

var itemDeleteToolDef = mcp.NewTool("toc_item_delete",
	mcp.WithDescription("Delete a record from the indirect or ultimate list"),
	mcp.WithString("list", mcp.Required(), mcp.Description("indirect|ultimate")),
	mcp.WithString("id", mcp.Required(), mcp.Description("Record id")),
)

var saveToolDef = mcp.NewTool("toc_save",
	mcp.WithDescription("Write the snapshot and clear the dirty flag"),
)
