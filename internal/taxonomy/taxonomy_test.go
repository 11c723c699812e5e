package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		code, want string
	}{
		{"ARCH_SYSTEMS_THINKER", "Systems Thinker"},
		{"DISC_HISTORY_CONTEXT", "History & Context"},
		{"QUANT", "By the Numbers"},
		{"CAUTIONARY", "Cautionary Tale"},
		{CrossCutting, "Cross-Cutting Analysis"},
		{"ARCH_LONE_WOLF", "Lone Wolf"},
		{"DISC_SPORTS", "Sports"},
		{"SOMETHING_NEW", "Something New"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DisplayName(tt.code), "DisplayName(%q)", tt.code)
	}
}

func TestOperatorCodes(t *testing.T) {
	assert.Equal(t, "Operator", DisplayName("OPERATOR"))
	assert.Equal(t, "Operator", DisplayName("ARCH_OPERATOR"))
}

func TestFormatMotif(t *testing.T) {
	assert.Equal(t, "Counter Positioning", FormatMotif("counter-positioning"))
	assert.Equal(t, "Brand Moats", FormatMotif("brand-moats"))
}

func TestMarginaliaColor(t *testing.T) {
	assert.Equal(t, "#0D9488", MarginaliaColor("QUANT"))
	assert.Equal(t, DefaultMarginaliaColor, MarginaliaColor("UNKNOWN"))
}

func TestDisplayNames(t *testing.T) {
	got := DisplayNames([]string{"ARCH_DEALMAKER", "DISC_LAW_REGULATION"})
	assert.Equal(t, []string{"Dealmaker", "Law & Regulation"}, got)
}

func TestArchetypesSortedByName(t *testing.T) {
	codes := Archetypes()
	require.NotEmpty(t, codes)
	for i := 1; i < len(codes); i++ {
		assert.LessOrEqual(t, DisplayName(codes[i-1]), DisplayName(codes[i]))
	}
	assert.Contains(t, codes, "ARCH_BUILDER_CONSTRUCTOR")
}
