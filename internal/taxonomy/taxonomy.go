// Package taxonomy maps the coded vocabulary used in content front matter
// (archetypes, disciplines, motifs, relationships, marginalia types) to
// display names and colours.
package taxonomy

import (
	"sort"
	"strings"
)

// CrossCutting marks a volume that analyses an archetype across legends
// rather than profiling a single person.
const CrossCutting = "CROSS_CUTTING"

// DefaultMarginaliaColor is used for marginalia types without a palette entry.
const DefaultMarginaliaColor = "#6B7280"

var disciplineNames = map[string]string{
	"DISC_OPERATIONS_EXECUTION":      "Operations & Execution",
	"DISC_PSYCHOLOGY_BEHAVIOR":       "Psychology & Behavior",
	"DISC_BUSINESS_ENTREPRENEURSHIP": "Business & Entrepreneurship",
	"DISC_ECONOMICS_MARKETS":         "Economics & Markets",
	"DISC_STRATEGY_DECISION":         "Strategy & Decision",
	"DISC_LEADERSHIP_MANAGEMENT":     "Leadership & Management",
	"DISC_HISTORY_CONTEXT":           "History & Context",
	"DISC_PHILOSOPHY_ETHICS":         "Philosophy & Ethics",
	"DISC_TECHNOLOGY_ENGINEERING":    "Technology & Engineering",
	"DISC_FINANCE_INVESTMENT":        "Finance & Investment",
	"DISC_MARKETING_SALES":           "Marketing & Sales",
	"DISC_LAW_REGULATION":            "Law & Regulation",
}

var archetypeNames = map[string]string{
	"ARCH_BUILDER_CONSTRUCTOR": "Builder-Constructor",
	"ARCH_SYSTEMS_THINKER":     "Systems Thinker",
	"ARCH_OPERATOR":            "Operator",
	"ARCH_DEALMAKER":           "Dealmaker",
	"ARCH_VISIONARY":           "Visionary",
	"ARCH_TURNAROUND_ARTIST":   "Turnaround Artist",
	"ARCH_CAPITAL_ALLOCATOR":   "Capital Allocator",
	"ARCH_CONGLOMERATEUR":      "Conglomerateur",
	"ARCH_FRANCHISE_BUILDER":   "Franchise Builder",
	"ARCH_MARKET_MAKER":        "Market Maker",
	"ARCH_CONTRARIAN":          "Contrarian",
	"ARCH_SCALE_OPERATOR":      "Scale Operator",
	"ARCH_STRATEGIST":          "Strategist",
	CrossCutting:               "Cross-Cutting Analysis",
}

var motifNames = map[string]string{
	"vertical-integration":   "Vertical Integration",
	"cost-compression":       "Cost Compression",
	"standardization":        "Standardization",
	"scale-economies":        "Scale Economies",
	"focus-discipline":       "Focus Discipline",
	"feedback-loops":         "Feedback Loops",
	"path-dependence":        "Path Dependence",
	"counter-positioning":    "Counter Positioning",
	"founder-control":        "Founder Control",
	"succession-crisis":      "Succession Crisis",
	"organizational-decline": "Organizational Decline",
	"labor-management":       "Labor Management",
}

var relationshipNames = map[string]string{
	"MENTOR":       "Mentor",
	"MENTEE":       "Mentee",
	"PARTNER":      "Partner",
	"COMPETITOR":   "Competitor",
	"RIVAL":        "Rival",
	"ANTAGONIST":   "Antagonist",
	"COLLABORATOR": "Collaborator",
	"FAMILY":       "Family",
	"EMPLOYEE":     "Employee",
	"EXECUTIVE":    "Executive",
	"INVESTOR":     "Investor",
	"FRIEND":       "Friend",
	"INFLUENCE":    "Influence",
	"REFERENCE":    "Reference",
	"CAUTIONARY":   "Cautionary Tale",
	"INNOVATOR":    "Innovator",
	"LEADER":       "Leader",
	"ENGINEER":     "Engineer",
	"SUBJECT":      "Subject",
	"OPERATOR":     "Operator",
	"CHRONICLER":   "Chronicler",
}

var marginaliaLabels = map[string]string{
	"KEY_THEME":      "Key Theme",
	"QUANT":          "By the Numbers",
	"ANECDOTE":       "Anecdote",
	"MODERN_ECHO":    "Modern Echo",
	"CONTRARIAN":     "Contrarian View",
	"MOTIF":          "Motif",
	"PRIMARY_VOICE":  "Primary Voice",
	"MECHANISM":      "Mechanism",
	"HISTORICAL":     "Historical Context",
	"PATTERN":        "Pattern",
	"STRATEGIC":      "Strategic Note",
	"SOURCE_CONTEXT": "Source Context",
}

var marginaliaColors = map[string]string{
	"KEY_THEME":      "#CA8A04",
	"QUANT":          "#0D9488",
	"ANECDOTE":       "#6366F1",
	"MODERN_ECHO":    "#0891B2",
	"CONTRARIAN":     "#DC2626",
	"MOTIF":          "#CA8A04",
	"PRIMARY_VOICE":  "#0F2F53",
	"MECHANISM":      "#7C3AED",
	"HISTORICAL":     "#92400E",
	"PATTERN":        "#059669",
	"STRATEGIC":      "#0046FF",
	"SOURCE_CONTEXT": "#64748B",
}

// lookupOrder fixes which table wins when a code appears in several.
var lookupOrder = []map[string]string{
	disciplineNames,
	archetypeNames,
	motifNames,
	relationshipNames,
	marginaliaLabels,
}

// DisplayName returns the human-readable name for any taxonomy code. Unknown
// codes are title-cased with DISC_/ARCH_ prefixes and underscores removed.
func DisplayName(code string) string {
	for _, table := range lookupOrder {
		if name, ok := table[code]; ok {
			return name
		}
	}

	trimmed := strings.TrimPrefix(strings.TrimPrefix(code, "DISC_"), "ARCH_")
	words := strings.Split(strings.ReplaceAll(trimmed, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// DisplayNames maps DisplayName over codes.
func DisplayNames(codes []string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		out = append(out, DisplayName(c))
	}
	return out
}

// FormatMotif returns the display name for a motif slug.
func FormatMotif(slug string) string {
	if name, ok := motifNames[slug]; ok {
		return name
	}
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// MarginaliaColor returns the accent colour for a marginalia type.
func MarginaliaColor(kind string) string {
	if c, ok := marginaliaColors[kind]; ok {
		return c
	}
	return DefaultMarginaliaColor
}

// Archetypes returns the known archetype codes sorted by display name.
func Archetypes() []string {
	codes := make([]string, 0, len(archetypeNames))
	for code := range archetypeNames {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		return archetypeNames[codes[i]] < archetypeNames[codes[j]]
	})
	return codes
}
