package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Out: &buf, Label: "Building site"}

	r.Start(2)
	r.Update(1, "/legends")
	r.Update(2, "/library")
	r.Finish()

	assert.Equal(t, "Building site: 2 items\n[1/2] /legends\n[2/2] /library\nBuilding site: complete\n", buf.String())
}

func TestNewReporterInCI(t *testing.T) {
	t.Setenv("CI", "true")
	_, ok := NewReporter("x").(*CIReporter)
	assert.True(t, ok)
}

func TestNewReporterInTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	_, ok := NewReporter("x").(*TerminalReporter)
	assert.True(t, ok)
}
