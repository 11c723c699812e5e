package sections

import (
	"regexp"
	"strings"
)

// explicitIDPattern matches a "## Title {#explicit-id}" heading line.
var explicitIDPattern = regexp.MustCompile(`^##[ \t]+(.+?)[ \t]*\{#([a-z0-9-]+)\}[ \t]*$`)

// Anchors maps trimmed heading source text to author-supplied section ids.
// Keys keep inline markup exactly as written ("**Bold** Title").
// A table belongs to exactly one parse; callers never share one between documents.
type Anchors map[string]string

// Lookup returns the explicit id recorded for title, if any.
func (a Anchors) Lookup(title string) (string, bool) {
	if a == nil {
		return "", false
	}
	id, ok := a[strings.TrimSpace(title)]
	return id, ok
}

// ExtractAnchors strips "{#id}" suffixes from level-2 heading lines and
// returns the cleaned markdown together with the title->id table collected
// from them. Lines inside fenced code blocks are left untouched.
func ExtractAnchors(markdown string) (string, Anchors) {
	anchors := make(Anchors)
	lines := strings.SplitAfter(markdown, "\n")

	var fence string
	for i, line := range lines {
		content := strings.TrimRight(line, "\r\n")
		if fence != "" {
			if closesFence(content, fence) {
				fence = ""
			}
			continue
		}
		if f := openingFence(content); f != "" {
			fence = f
			continue
		}
		m := explicitIDPattern.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		title := strings.TrimSpace(m[1])
		anchors[title] = m[2]
		lines[i] = "## " + title + line[len(content):]
	}
	return strings.Join(lines, ""), anchors
}

// openingFence returns the fence marker ("```", "~~~~", ...) a line opens,
// or "" when the line is not a code fence.
func openingFence(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || trimmed == "" {
		return ""
	}
	ch := trimmed[0]
	if ch != '`' && ch != '~' {
		return ""
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == ch {
		n++
	}
	if n < 3 {
		return ""
	}
	if ch == '`' && strings.Contains(trimmed[n:], "`") {
		return ""
	}
	return trimmed[:n]
}

// closesFence reports whether line closes a block opened with fence.
func closesFence(line, fence string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return false
	}
	marker := strings.TrimRight(trimmed, " \t")
	if len(marker) < len(fence) {
		return false
	}
	return strings.Trim(marker, fence[:1]) == ""
}
