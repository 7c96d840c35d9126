package walk

import (
	"strings"
	"unicode"
)

// Join appends key to prefix using dot notation when key is a bare
// identifier and quoted bracket notation otherwise.
func Join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	if IsIdentifier(key) {
		return prefix + "." + key
	}
	return prefix + `["` + quoteKey(key) + `"]`
}

// IsIdentifier reports whether key can follow a dot without quoting.
func IsIdentifier(key string) bool {
	if key == "" {
		return false
	}
	for i, r := range key {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

var keyEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func quoteKey(key string) string {
	return keyEscaper.Replace(key)
}
