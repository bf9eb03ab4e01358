package redact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnippet(t *testing.T) {
	input := "ate soup, write me at anna@example.com or +7 912 345-67-89"

	t.Run("none", func(t *testing.T) {
		assert.Equal(t, "[REDACTED]", New(LevelNone, "s").Snippet(input))
	})

	t.Run("full", func(t *testing.T) {
		assert.Equal(t, input, New(LevelFull, "s").Snippet(input))
	})

	t.Run("hashed", func(t *testing.T) {
		out := New(LevelHashed, "s").Snippet(input)
		assert.NotContains(t, out, "anna@example.com")
		assert.NotContains(t, out, "345-67-89")
		assert.Contains(t, out, "[EMAIL:")
		assert.Contains(t, out, "[PHONE:")
		assert.True(t, strings.HasPrefix(out, "ate soup"))
	})
}

func TestSnippet_KeepsNumbersThatAreNotPhones(t *testing.T) {
	out := New(LevelHashed, "s").Snippet("200 г гречки, 350 kcal")
	assert.Equal(t, "200 г гречки, 350 kcal", out)
}

func TestSnippet_TruncatesByRunes(t *testing.T) {
	long := strings.Repeat("я", maxSnippetRunes+50)
	out := New(LevelFull, "").Snippet(long)
	assert.Equal(t, maxSnippetRunes+1, len([]rune(out)))
	assert.True(t, strings.HasSuffix(out, "…"))
}

func TestID(t *testing.T) {
	hashed := New(LevelHashed, "salt")
	assert.Equal(t, "", hashed.ID(""))
	assert.Len(t, hashed.ID("123456789"), 8)
	assert.Equal(t, hashed.ID("123456789"), hashed.ID("123456789"))
	assert.NotEqual(t, hashed.ID("123456789"), New(LevelHashed, "other").ID("123456789"))

	assert.Equal(t, "[REDACTED]", New(LevelNone, "").ID("42"))
	assert.Equal(t, "42", New(LevelFull, "").ID("42"))
}

func TestNew_UnknownLevelHashes(t *testing.T) {
	r := New(Level("verbose"), "s")
	assert.Equal(t, LevelHashed, r.level)
}
