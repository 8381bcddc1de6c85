package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnhanceImages(t *testing.T) {
	out := string(EnhanceImages(`<p><img src="https://files.campus.edu/a.png"></p>`))
	assert.Contains(t, out, `loading="lazy"`)
	assert.Contains(t, out, `referrerpolicy="no-referrer"`)

	assert.Equal(t, "<p>plain</p>", string(EnhanceImages("<p>plain</p>")))
}

func TestFirstBlocks(t *testing.T) {
	in := "<p>one</p><p>two</p><ul><li>three</li></ul><p>four</p>"

	out := FirstBlocks(in, 3)
	assert.Contains(t, out, "<p>one</p>")
	assert.Contains(t, out, "<li>three</li>")
	assert.NotContains(t, out, "four")

	assert.Equal(t, "just text", FirstBlocks("just text", 3))
}
