package constants

// Content languages served by the API. English is the fallback.
const (
	LangEN = "en"
	LangBN = "bn"
	LangAR = "ar"
)

var AllLangs = []string{LangEN, LangBN, LangAR}

func IsValidLang(l string) bool {
	return l == LangEN || l == LangBN || l == LangAR
}
