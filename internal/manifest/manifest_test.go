package manifest

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholia-labs/scholia/internal/marginalia"
	"github.com/scholia-labs/scholia/internal/sections"
)

func TestNewDerivesSectionNoteIDs(t *testing.T) {
	m := New("henry-ford", "volume-1", "The Tinkerer",
		[]sections.Section{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}},
		[]marginalia.Annotation{
			{ID: "n1", SectionID: "a"},
			{ID: "n2", SectionID: "b"},
			{ID: "n3", SectionID: "a"},
		},
		DefaultReaderSettings())

	assert.Equal(t, []string{"n1", "n3"}, m.SectionNoteIDs["a"])
	assert.Equal(t, []string{"n2"}, m.SectionNoteIDs["b"])
	assert.Equal(t, "b", m.Registry().Resolve("B"))
	assert.Len(t, m.Index().ForSection("a"), 2)
}

func TestNewEmptyListsEncodeAsArrays(t *testing.T) {
	m := New("l", "v", "t", nil, nil, DefaultReaderSettings())
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sections":[]`)
	assert.Contains(t, string(data), `"marginalia":[]`)
	assert.Contains(t, string(data), `"sectionNoteIds":{}`)
}

func TestDecodeRoundTripAndDefaults(t *testing.T) {
	m, err := Decode([]byte(`{"legend":"x","sections":[{"id":"s","title":"S"}],"reader":{"lookAheadPx":50}}`))
	require.NoError(t, err)

	assert.Equal(t, "x", m.Legend)
	assert.Equal(t, 50.0, m.Reader.ScrollConfig().LookAhead)
	assert.Equal(t, 2.0, m.Reader.ScrollConfig().LastSectionViewports)
	assert.Equal(t, 200*time.Millisecond, m.Reader.Fade())
	assert.Equal(t, marginalia.DefaultTruncateAt, m.Reader.TruncateAt)

	_, err = Decode([]byte(`{`))
	assert.Error(t, err)
}
