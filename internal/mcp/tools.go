package mcp

import "github.com/mark3labs/mcp-go/mcp"

var listLegendsTool = mcp.NewTool("list_legends",
	mcp.WithDescription("List the legends in the catalog with their archetype, volume count and total reading time."),
	mcp.WithString("archetype",
		mcp.Description("Only legends with this archetype code, e.g. ARCH_BUILDER_CONSTRUCTOR"),
	),
	mcp.WithBoolean("cross_cutting",
		mcp.Description("true for cross-archetype analyses only, false to exclude them"),
	),
)

var searchMarginaliaTool = mcp.NewTool("search_marginalia",
	mcp.WithDescription("Search marginalia notes and section headings across every dossier. Notes rank above headings."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Text to look for in note titles, note bodies and section titles"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
)

var getVolumeTool = mcp.NewTool("get_volume",
	mcp.WithDescription("Get the outline of one dossier volume: its sections in order, each with its marginalia."),
	mcp.WithString("legend",
		mcp.Required(),
		mcp.Description("Legend slug, e.g. henry-ford"),
	),
	mcp.WithString("volume",
		mcp.Required(),
		mcp.Description("Volume slug, e.g. volume-1"),
	),
)
