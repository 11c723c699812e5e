package content

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/scholia-labs/scholia/internal/sections"
)

// sectionLevel is the heading level that opens a section.
const sectionLevel = 2

var renderStateKey = parser.NewContextKey()

// renderState is the per-document input and output of the heading transformer.
type renderState struct {
	anchors  sections.Anchors
	registry *sections.Registry
	headings []sections.Section
}

// Rendered is the result of rendering one markdown body.
type Rendered struct {
	HTML string
	// Headings lists the section headings in body order with the ids they
	// were rendered with.
	Headings []sections.Section
}

// Renderer converts markdown bodies to HTML with stable section anchors.
// It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with GFM and syntax highlighting enabled.
func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(sectionHeadingTransformer{}, 100),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

// Render converts body to HTML. Level-2 headings get an id and a
// data-section attribute: the author's explicit {#id} when present,
// otherwise the registry's resolution of the heading title.
func (r *Renderer) Render(body []byte, registry *sections.Registry) (*Rendered, error) {
	cleaned, anchors := sections.ExtractAnchors(string(body))

	state := &renderState{anchors: anchors, registry: registry}
	pc := parser.NewContext()
	pc.Set(renderStateKey, state)

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(cleaned), &buf, parser.WithContext(pc)); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}
	return &Rendered{HTML: buf.String(), Headings: state.headings}, nil
}

type sectionHeadingTransformer struct{}

func (sectionHeadingTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	state, ok := pc.Get(renderStateKey).(*renderState)
	if !ok {
		return
	}
	source := reader.Source()

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level != sectionLevel {
			return ast.WalkSkipChildren, nil
		}

		title := strings.TrimSpace(string(headingText(h, source)))
		id, explicit := state.anchors.Lookup(headingSource(h, source))
		if !explicit {
			id = state.registry.Resolve(title)
		}

		h.SetAttributeString("id", []byte(id))
		h.SetAttributeString("data-section", []byte(id))
		h.SetAttributeString("class", []byte("section-title"))
		state.headings = append(state.headings, sections.Section{ID: id, Title: title})
		return ast.WalkSkipChildren, nil
	})
}

// headingSource returns the heading's markdown as written, inline markup
// included, which is how explicit anchors are keyed.
func headingSource(h *ast.Heading, source []byte) string {
	var buf bytes.Buffer
	lines := h.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return strings.TrimSpace(buf.String())
}

// headingText concatenates the text segments under a heading.
func headingText(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.Write(headingText(c, source))
		}
	}
	return buf.Bytes()
}
