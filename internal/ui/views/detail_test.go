package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownRendererReusedPerWidth(t *testing.T) {
	var m markdownRenderer

	out := m.render("Some **bold** notes", 40)
	assert.Contains(t, out, "bold")
	first := m.r
	require.NotNil(t, first)

	m.render("other text", 40)
	assert.Same(t, first, m.r)

	m.render("other text", 60)
	assert.NotSame(t, first, m.r)
	assert.Equal(t, 60, m.width)
}
