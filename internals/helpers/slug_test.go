package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "al-madrasa-an-nur", Slugify("Al-Madrasa An-Nur", 100))
	assert.Equal(t, "cafe", Slugify("Café", 100))
	assert.Equal(t, "darul-ulum-2026", Slugify("  Darul   Ulum  (2026)  ", 100))
	assert.Equal(t, "item", Slugify("", 100))
	assert.Equal(t, "item", Slugify("!!!", 100))
}

func TestSlugifyMaxLen(t *testing.T) {
	got := Slugify("abcdefghij", 5)
	assert.Equal(t, "abcde", got)

	// a cut that lands on a hyphen must not leave a trailing "-"
	got = Slugify("abc-defg", 4)
	assert.Equal(t, "abc", got)
}

func TestTrimForSuffix(t *testing.T) {
	assert.Equal(t, "abc", trimForSuffix("abcdef", "-2", 5))
	assert.Equal(t, "x", trimForSuffix("abc", "-123456", 5))
}
