package content

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/scholia-labs/scholia/internal/sections"
)

func loadTestdata(t *testing.T) *Library {
	t.Helper()
	root := filepath.Join("..", "..", "testdata", "content")
	lib, err := NewLoader(root, NewRenderer(), zaptest.NewLogger(t)).Load(context.Background())
	require.NoError(t, err)
	return lib
}

func TestSplitFrontMatter(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantFM   string
		wantBody string
	}{
		{"basic", "---\ntitle: x\n---\nbody\n", "title: x\n", "body\n"},
		{"crlf", "---\r\ntitle: x\r\n---\r\nbody", "title: x\n", "body"},
		{"no front matter", "# Heading\n", "", "# Heading\n"},
		{"unterminated", "---\ntitle: x\n", "", "---\ntitle: x\n"},
		{"no trailing body", "---\na: 1\n---", "a: 1\n", ""},
		{"dashes inside", "---\na: \"---\"\n---\n## H\n", "a: \"---\"\n", "## H\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body := SplitFrontMatter([]byte(tt.src))
			assert.Equal(t, tt.wantFM, string(fm))
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestMinutesDecoding(t *testing.T) {
	var v struct {
		A Minutes `yaml:"a"`
		B Minutes `yaml:"b"`
		C Minutes `yaml:"c"`
		D Minutes `yaml:"d"`
	}
	err := decodeFrontMatter([]byte("a: 45\nb: \"50 minutes\"\nc: soon\nd: [1, 2]\n"), &v)
	require.NoError(t, err)
	assert.Equal(t, Minutes(45), v.A)
	assert.Equal(t, Minutes(50), v.B)
	assert.Equal(t, Minutes(0), v.C)
	assert.Equal(t, Minutes(0), v.D)
}

func TestRenderAssignsSectionAnchors(t *testing.T) {
	r := NewRenderer()
	reg := sections.Build([]sections.Section{{ID: "s1", Title: "The Ford Era"}})

	out, err := r.Render([]byte("Intro\n\n## the ford era\n\n## Rise & Fall {#custom}\n\n## Early Career & Setbacks\n\n### Minor\n"), reg)
	require.NoError(t, err)

	assert.Contains(t, out.HTML, `id="s1"`)
	assert.Contains(t, out.HTML, `data-section="s1"`)
	assert.Contains(t, out.HTML, `id="custom"`)
	assert.Contains(t, out.HTML, `data-section="early-career-setbacks"`)
	assert.NotContains(t, out.HTML, "{#custom}")
	assert.NotContains(t, out.HTML, `data-section="minor"`)

	require.Len(t, out.Headings, 3)
	assert.Equal(t, sections.Section{ID: "s1", Title: "the ford era"}, out.Headings[0])
	assert.Equal(t, sections.Section{ID: "custom", Title: "Rise & Fall"}, out.Headings[1])
	assert.Equal(t, "early-career-setbacks", out.Headings[2].ID)
}

func TestRenderExplicitAnchorWithInlineMarkup(t *testing.T) {
	out, err := NewRenderer().Render([]byte("## **Bold** `Title` {#x}\n"), nil)
	require.NoError(t, err)

	assert.Contains(t, out.HTML, `data-section="x"`)
	require.Len(t, out.Headings, 1)
	assert.Equal(t, sections.Section{ID: "x", Title: "Bold Title"}, out.Headings[0])
}

func TestRenderLeavesFencedHeadingsAlone(t *testing.T) {
	out, err := NewRenderer().Render([]byte("## Real\n\n```md\n## Example {#demo}\n```\n"), nil)
	require.NoError(t, err)

	assert.Contains(t, out.HTML, "{#demo}")
	require.Len(t, out.Headings, 1)
	assert.Equal(t, "real", out.Headings[0].ID)
}

func TestRenderConcurrentDocumentsKeepSeparateAnchors(t *testing.T) {
	r := NewRenderer()
	done := make(chan string, 2)
	go func() {
		out, _ := r.Render([]byte("## Shared {#first}\n"), nil)
		done <- out.HTML
	}()
	go func() {
		out, _ := r.Render([]byte("## Shared\n"), nil)
		done <- out.HTML
	}()
	a, b := <-done, <-done
	htmls := a + b
	assert.Equal(t, 1, strings.Count(htmls, `id="first"`))
	assert.Equal(t, 1, strings.Count(htmls, `id="shared"`))
}

func TestLoadLegends(t *testing.T) {
	lib := loadTestdata(t)

	legends := lib.Legends()
	require.Len(t, legends, 1)
	ford := legends[0]
	assert.Equal(t, "henry-ford", ford.Slug)
	assert.Equal(t, "Henry Ford", ford.Name)
	assert.Equal(t, "How a farm boy from Dearborn industrialised the automobile.", ford.Hook)
	assert.Equal(t, "Builder-Constructor", ford.ArchetypeName())
	assert.Equal(t, 95, ford.TotalReadingTime)
	require.Len(t, ford.Volumes, 2)
	assert.Equal(t, Minutes(45), ford.Volumes[0].ReadingTime)

	cross := lib.CrossCutting()
	require.Len(t, cross, 1)
	assert.Equal(t, CrossCuttingColor, cross[0].ArchetypeColor)
	assert.Len(t, lib.AllLegends(), 2)

	_, err := lib.Legend("nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadVolumeNormalization(t *testing.T) {
	lib := loadTestdata(t)

	v, err := lib.Volume("henry-ford", "volume-1")
	require.NoError(t, err)

	assert.Equal(t, "The Tinkerer", v.Title, "hub title wins")
	assert.Equal(t, "Dearborn to Detroit", v.Subtitle)
	assert.Equal(t, "Henry Ford", v.LegendName)
	assert.Equal(t, 45, v.ReadingTime)
	assert.Equal(t, "#1E3A8A", v.ArchetypeColor)
	assert.Equal(t, "Automotive", v.Industry)
	assert.Equal(t, []string{"DISC_OPERATIONS_EXECUTION"}, v.Disciplines)
	assert.Equal(t, "/images/legends/henry-ford/henry-ford-volume-1.png", v.CoverImage)
	assert.NotNil(t, v.SecondaryArchetypes)
	require.Len(t, v.Sources, 1)

	assert.Nil(t, v.Prev)
	require.NotNil(t, v.Next)
	assert.Equal(t, "volume-2", v.Next.Slug)

	require.Len(t, v.Marginalia, 3)
	generated := v.Marginalia[2].ID
	assert.Len(t, generated, 36)

	again := loadTestdata(t)
	v2, _ := again.Volume("henry-ford", "volume-1")
	assert.Equal(t, generated, v2.Marginalia[2].ID, "generated ids are deterministic")

	assert.Contains(t, v.BodyHTML, `id="early-years"`)
	assert.Contains(t, v.BodyHTML, `id="ford-era"`)
	assert.Contains(t, v.BodyHTML, `id="coda"`)

	assert.Equal(t, []sections.Section{
		{ID: "early-years", Title: "Early Years"},
		{ID: "ford-era", Title: "The Ford Era"},
		{ID: "coda", Title: "Coda"},
	}, v.Sections, "undeclared headings follow the declared ones")
	assert.True(t, v.Registry().Has("coda"))
	assert.Equal(t, "early-years", v.Registry().Resolve("early years"))
	assert.Len(t, v.Annotations().ForSection("ford-era"), 2)
}

func TestLoadVolumeDerivesSectionsFromHeadings(t *testing.T) {
	lib := loadTestdata(t)

	v, err := lib.Volume("henry-ford", "volume-2")
	require.NoError(t, err)

	assert.Equal(t, "The Empire", v.Title)
	assert.Equal(t, 50, v.ReadingTime)
	assert.Equal(t, []sections.Section{
		{ID: "peak", Title: "Peak"},
		{ID: "decline-fall", Title: "Decline & Fall"},
	}, v.Sections)
	require.NotNil(t, v.Prev)
	assert.Equal(t, "volume-1", v.Prev.Slug)
	assert.Empty(t, v.Marginalia)
}

func TestVolumesOfAndModels(t *testing.T) {
	lib := loadTestdata(t)

	vols := lib.VolumesOf("henry-ford")
	require.Len(t, vols, 2)
	assert.Equal(t, "volume-1", vols[0].Slug)
	assert.Len(t, lib.Volumes(), 3)

	models := lib.Models()
	require.Len(t, models, 1)
	assert.True(t, models[0].Planned())
	m, err := lib.Model("inversion")
	require.NoError(t, err)
	assert.Equal(t, "Inversion", m.Title)
}

func TestLoadSkipsMalformedFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"legends/good/index.md":    {Data: []byte("---\nlegend: Good\nvolumes:\n  - slug: volume-1\n---\n")},
		"legends/good/volume-1.md": {Data: []byte("---\nsections: [\n---\n")},
		"legends/bad/index.md":     {Data: []byte("---\nlegend: [unclosed\n---\n")},
	}
	lib, err := NewFSLoader(fsys, nil, zaptest.NewLogger(t)).Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, lib.AllLegends(), 1)
	_, err = lib.Volume("good", "volume-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fsys := fstest.MapFS{"legends/a/index.md": {Data: []byte("---\nlegend: A\n---\n")}}
	_, err := NewFSLoader(fsys, nil, nil).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidate(t *testing.T) {
	lib := loadTestdata(t)
	problems := Validate(lib)

	var messages []string
	for _, p := range problems {
		messages = append(messages, p.String())
	}
	joined := strings.Join(messages, "\n")
	assert.Contains(t, joined, `references unknown section "nowhere"`)
	assert.Contains(t, joined, `section heading "Coda" (coda) is not declared in front matter`)
	assert.Len(t, problems, 2, joined)
}

func TestValidateHubMismatch(t *testing.T) {
	fsys := fstest.MapFS{
		"legends/a/index.md":    {Data: []byte("---\nlegend: A\nvolumes:\n  - slug: volume-9\n---\n")},
		"legends/a/volume-1.md": {Data: []byte("## One\n\n## One\n")},
		"legends/b/volume-1.md": {Data: []byte("## Orphan\n")},
	}
	lib, err := NewFSLoader(fsys, nil, nil).Load(context.Background())
	require.NoError(t, err)

	joined := ""
	for _, p := range Validate(lib) {
		joined += p.String() + "\n"
	}
	assert.Contains(t, joined, `duplicate section id "one"`)
	assert.Contains(t, joined, `volume "volume-1" is not listed`)
	assert.Contains(t, joined, `listed volume "volume-9" has no file`)
	assert.Contains(t, joined, `no index for legend "b"`)
}

func TestMergeHeadings(t *testing.T) {
	declared := []sections.Section{{ID: "a", Title: "A"}, {ID: "c", Title: "C"}}
	rendered := []sections.Section{
		{ID: "b", Title: "B"},
		{ID: "a", Title: "A"},
		{ID: "d", Title: "D"},
		{ID: "b", Title: "B"},
	}

	merged, undeclared := mergeHeadings(declared, rendered)
	assert.Equal(t, []sections.Section{
		{ID: "a", Title: "A"},
		{ID: "c", Title: "C"},
		{ID: "b", Title: "B"},
		{ID: "d", Title: "D"},
	}, merged)
	assert.Equal(t, []sections.Section{{ID: "b", Title: "B"}, {ID: "d", Title: "D"}}, undeclared)

	merged, undeclared = mergeHeadings(nil, rendered[:1])
	assert.Equal(t, rendered[:1], merged)
	assert.Empty(t, undeclared)
}

func TestLoadVolumeKeepsMarkersAndOutlineInSync(t *testing.T) {
	fsys := fstest.MapFS{
		"legends/a/index.md": {Data: []byte("---\nlegend: A\nvolumes:\n  - slug: volume-1\n---\n")},
		"legends/a/volume-1.md": {Data: []byte("---\nsections:\n  - id: start\n    title: Start\n---\n" +
			"## Interlude\n\n## Start\n\n## Finale {#end}\n")},
	}
	lib, err := NewFSLoader(fsys, nil, zaptest.NewLogger(t)).Load(context.Background())
	require.NoError(t, err)

	v, err := lib.Volume("a", "volume-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"start", "interlude", "end"}, v.Registry().IDs())
	for _, id := range v.Registry().IDs() {
		assert.Contains(t, v.BodyHTML, `data-section="`+id+`"`)
	}

	var messages []string
	for _, p := range Validate(lib) {
		messages = append(messages, p.Message)
	}
	assert.ElementsMatch(t, []string{
		`section heading "Interlude" (interlude) is not declared in front matter`,
		`section heading "Finale" (end) is not declared in front matter`,
	}, messages)
}
