package helper

import (
	"strings"

	"gorm.io/datatypes"

	"madrasahku_backend/internals/constants"
)

// Multilingual text columns are JSONB maps {"en": ..., "bn": ..., "ar": ...}.

// PickLang resolves a language from a JSONMap with the fallback chain
// lang → en → fallback.
func PickLang(values datatypes.JSONMap, lang, fallback string) string {
	if values == nil {
		return fallback
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if !constants.IsValidLang(lang) {
		lang = constants.LangEN
	}
	if v, ok := values[lang].(string); ok && strings.TrimSpace(v) != "" {
		return v
	}
	if v, ok := values[constants.LangEN].(string); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

// LangMap builds a JSONMap from the three languages, skipping empty ones.
func LangMap(en, bn, ar string) datatypes.JSONMap {
	m := datatypes.JSONMap{}
	if strings.TrimSpace(en) != "" {
		m[constants.LangEN] = en
	}
	if strings.TrimSpace(bn) != "" {
		m[constants.LangBN] = bn
	}
	if strings.TrimSpace(ar) != "" {
		m[constants.LangAR] = ar
	}
	return m
}

// NormalizeLang maps an arbitrary ?lang= value to a supported language.
func NormalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if !constants.IsValidLang(lang) {
		return constants.LangEN
	}
	return lang
}
