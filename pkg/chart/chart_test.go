package chart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake_Empty(t *testing.T) {
	assert.Equal(t, "", Make([]int{}))
}

func TestMake_Shape(t *testing.T) {
	out := Make([]int{0, 5, 10})
	lines := strings.Split(out, "\n")

	require.Len(t, lines, Height+1)
	assert.True(t, strings.HasPrefix(lines[0], "10 |"))
	assert.True(t, strings.HasSuffix(lines[0], "  █"))
	assert.True(t, strings.HasPrefix(lines[Height/2], " 5 |"))
	assert.True(t, strings.HasSuffix(lines[Height/2], " ██"))
	assert.True(t, strings.HasPrefix(lines[Height-1], " 0 |"))
	assert.True(t, strings.HasSuffix(lines[Height], "+---"))
}

func TestMake_AllZero(t *testing.T) {
	out := Make([]float64{0, 0})

	assert.NotContains(t, out, "█")
	assert.Len(t, strings.Split(out, "\n"), Height+1)
}

func TestMake_Floats(t *testing.T) {
	out := Make([]float64{0.5, 1.5})

	assert.True(t, strings.HasPrefix(out, " 1.5 |"))
}
