package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestPickLangFallbackChain(t *testing.T) {
	values := datatypes.JSONMap{"en": "Notice", "bn": "নোটিশ"}

	assert.Equal(t, "নোটিশ", PickLang(values, "bn", "key"))
	assert.Equal(t, "Notice", PickLang(values, "en", "key"))
	// ar missing → en
	assert.Equal(t, "Notice", PickLang(values, "ar", "key"))
	// unsupported lang normalizes to en
	assert.Equal(t, "Notice", PickLang(values, "fr", "key"))
}

func TestPickLangFallsBackToKey(t *testing.T) {
	assert.Equal(t, "key", PickLang(nil, "bn", "key"))
	assert.Equal(t, "key", PickLang(datatypes.JSONMap{}, "bn", "key"))
	// only ar present and en empty → key for bn
	assert.Equal(t, "key", PickLang(datatypes.JSONMap{"en": "  "}, "bn", "key"))
}

func TestLangMapSkipsEmpty(t *testing.T) {
	m := LangMap("Hello", "", "مرحبا")
	assert.Len(t, m, 2)
	assert.Equal(t, "Hello", m["en"])
	assert.Equal(t, "مرحبا", m["ar"])
	_, hasBN := m["bn"]
	assert.False(t, hasBN)
}

func TestNormalizeLang(t *testing.T) {
	assert.Equal(t, "bn", NormalizeLang(" BN "))
	assert.Equal(t, "ar", NormalizeLang("ar"))
	assert.Equal(t, "en", NormalizeLang(""))
	assert.Equal(t, "en", NormalizeLang("de"))
}
