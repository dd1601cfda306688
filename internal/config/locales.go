package config

import "log/slog"

const (
	LangEN = "en"
	LangES = "es"
)

// NormalizeLanguage maps any unsupported language to English.
func NormalizeLanguage(lang string) string {
	switch lang {
	case LangEN, LangES:
		return lang
	default:
		slog.Warn("unsupported language, falling back to English", "language", lang)
		return LangEN
	}
}
