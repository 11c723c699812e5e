package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestScaffoldLoadsBack(t *testing.T) {
	root := t.TempDir()
	created, err := Scaffold(root, LegendScaffold{
		Name:      "Ada Lovelace",
		Slug:      "ada-lovelace",
		Archetype: "ARCH_VISIONARY",
		Dates:     "1815–1852",
		Volumes:   2,
	})
	require.NoError(t, err)
	assert.Len(t, created, 3)

	lib, err := NewLoader(root, nil, zaptest.NewLogger(t)).Load(context.Background())
	require.NoError(t, err)

	l, err := lib.Legend("ada-lovelace")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", l.Name)
	assert.Equal(t, "1815–1852", l.Dates)
	require.Len(t, l.Volumes, 2)
	assert.Equal(t, "volume-2", l.Volumes[1].Slug)

	v, err := lib.Volume("ada-lovelace", "volume-1")
	require.NoError(t, err)
	assert.Equal(t, "Volume 1", v.Title)
	require.Len(t, v.Sections, 1)
	assert.Equal(t, "opening", v.Sections[0].ID)
}

func TestScaffoldRefusesExistingLegend(t *testing.T) {
	root := t.TempDir()
	_, err := Scaffold(root, LegendScaffold{Name: "A", Slug: "a"})
	require.NoError(t, err)

	_, err = Scaffold(root, LegendScaffold{Name: "A", Slug: "a"})
	assert.ErrorIs(t, err, ErrExists)
}

func TestScaffoldKeepsExistingVolumes(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "legends", "b")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	existing := filepath.Join(dir, "volume-1.md")
	require.NoError(t, os.WriteFile(existing, []byte("## Drafted\n"), 0o644))

	created, err := Scaffold(root, LegendScaffold{Name: "B", Slug: "b", Volumes: 2})
	require.NoError(t, err)
	assert.NotContains(t, created, existing)

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "## Drafted\n", string(data))
}

func TestScaffoldRequiresNameAndSlug(t *testing.T) {
	_, err := Scaffold(t.TempDir(), LegendScaffold{Name: "Nameless"})
	assert.Error(t, err)
}
