package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/scholia-labs/scholia/internal/catalog"
	"github.com/scholia-labs/scholia/internal/content"
	"github.com/scholia-labs/scholia/internal/taxonomy"
)

func (s *Server) handleListLegends(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := catalog.ListFilter{Archetype: request.GetString("archetype", "")}
	if v, ok := request.GetArguments()["cross_cutting"].(bool); ok {
		filter.CrossCutting = &v
	}

	legends, err := s.store.ListLegends(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing legends failed: %v", err)), nil
	}
	if len(legends) == 0 {
		return mcp.NewToolResultText("No legends match. The catalog may be empty; check the content directory."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d legend(s):\n", len(legends))
	for _, l := range legends {
		fmt.Fprintf(&sb, "\n- %s (%s)\n", l.Name, l.Slug)
		fmt.Fprintf(&sb, "  Archetype: %s\n", l.ArchetypeName)
		if l.Industry != "" {
			fmt.Fprintf(&sb, "  Industry: %s\n", l.Industry)
		}
		fmt.Fprintf(&sb, "  Volumes: %d, %d min total\n", l.Volumes, l.TotalReadingTime)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func (s *Server) handleSearchMarginalia(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	hits, err := s.store.Search(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(hits) == 0 {
		return mcp.NewToolResultText("No results found."), nil
	}
	return mcp.NewToolResultText(formatHits(hits)), nil
}

func (s *Server) handleGetVolume(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	legend, err := request.RequireString("legend")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: legend"), nil
	}
	volume, err := request.RequireString("volume")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: volume"), nil
	}

	v, err := s.library().Volume(legend, volume)
	if errors.Is(err, content.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("no volume %s/%s", legend, volume)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading volume failed: %v", err)), nil
	}
	return mcp.NewToolResultText(formatVolume(v)), nil
}

// formatHits renders search hits as plain text for agent consumption.
func formatHits(hits []catalog.Hit) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):\n", len(hits))

	for i, h := range hits {
		fmt.Fprintf(&sb, "\n--- Result %d ---\n", i+1)
		fmt.Fprintf(&sb, "Volume: %s (%s)\n", h.VolumeTitle, h.URL())
		if h.Kind == catalog.KindMarginalia {
			fmt.Fprintf(&sb, "Note: %s [%s]\n", h.Title, taxonomy.DisplayName(h.Type))
		} else {
			fmt.Fprintf(&sb, "Section: %s\n", h.Title)
		}
		if h.Snippet != "" {
			sb.WriteString("\n")
			sb.WriteString(h.Snippet)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func formatVolume(v *content.Volume) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", v.Title)
	fmt.Fprintf(&sb, "%s", v.LegendName)
	if v.Subtitle != "" {
		fmt.Fprintf(&sb, " · %s", v.Subtitle)
	}
	fmt.Fprintf(&sb, " · %d min\n", v.ReadingTime)

	index := v.Annotations()
	for _, sec := range v.Sections {
		fmt.Fprintf(&sb, "\n## %s (#%s)\n", sec.Title, sec.ID)
		for _, a := range index.ForSection(sec.ID) {
			fmt.Fprintf(&sb, "- [%s] %s: %s\n", taxonomy.DisplayName(a.Type), a.Title, a.Content)
		}
	}
	return sb.String()
}
