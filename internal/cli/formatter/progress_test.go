package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name  string
		pct   int
		label string
	}{
		{"zero", 0, "  0%"},
		{"half", 50, " 50%"},
		{"full", 100, "100%"},
		{"over clamps", 150, "100%"},
		{"negative clamps", -5, "  0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgress(tt.pct, 10)
			assert.True(t, strings.HasSuffix(got, tt.label), got)
			assert.Contains(t, got, "[")
		})
	}
}

func TestRenderCompactBar(t *testing.T) {
	tests := []struct {
		name  string
		pct   int
		width int
	}{
		{"0%", 0, 10},
		{"50%", 50, 10},
		{"100%", 100, 10},
		{"tiny width clamps to 2", 50, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderCompactBar(tt.pct, tt.width, false)
			assert.NotEmpty(t, got)
			assert.NotContains(t, got, "[")
			assert.NotContains(t, got, "%")
		})
	}
}

func TestRenderCompactBar_DimBlocks(t *testing.T) {
	assert.Equal(t, strings.Repeat(emptyBlock, 4), RenderCompactBar(0, 4, true))
	assert.Equal(t, strings.Repeat(filledBlock, 4), RenderCompactBar(100, 4, true))
	assert.Equal(t, filledBlock+filledBlock+emptyBlock+emptyBlock, RenderCompactBar(50, 4, true))
}
