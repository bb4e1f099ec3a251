package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func WithDefault(val, def string) string {
	if val != "" {
		return val
	}
	return def
}

// Var is one {key} placeholder and its replacement.
type Var struct {
	Key   string
	Value string
}

// Substitute replaces every "{key}" occurrence for each var. Text that is not a
// known placeholder is left untouched.
func Substitute(template string, vars ...Var) string {
	result := template
	for _, v := range vars {
		result = strings.ReplaceAll(result, "{"+v.Key+"}", v.Value)
	}
	return result
}

// StripV drops a single leading "v" from a version string.
func StripV(version string) string {
	return strings.TrimPrefix(strings.TrimSpace(version), "v")
}

// PascalCase turns "my-cool_tool" into "MyCoolTool".
func PascalCase(s string) string {
	var b strings.Builder
	for _, word := range strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' }) {
		first, size := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(first))
		b.WriteString(word[size:])
	}
	return b.String()
}
