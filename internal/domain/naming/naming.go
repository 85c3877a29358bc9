// Package naming converts identifiers between the casings used in generated code.
package naming

import (
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
)

func isSeparator(r rune) bool {
	return r == '-' || r == '_' || unicode.IsSpace(r)
}

// ToCamelCase drops separators, capitalizes the rune after each one and
// lowercases the first rune: "user_profile" -> "userProfile".
func ToCamelCase(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	upperNext := false
	first := true
	for _, r := range s {
		if isSeparator(r) {
			upperNext = !first
			continue
		}
		switch {
		case first:
			r = unicode.ToLower(r)
			first = false
		case upperNext:
			r = unicode.ToUpper(r)
		}
		upperNext = false
		b.WriteRune(r)
	}
	return b.String()
}

// ToPascalCase is ToCamelCase with the first rune uppercased.
func ToPascalCase(s string) string {
	c := ToCamelCase(s)
	if c == "" {
		return ""
	}
	runes := []rune(c)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// ToKebabCase inserts "-" at every lower-to-upper boundary and lowercases.
func ToKebabCase(s string) string { return splitBoundaries(s, '-') }

// ToSnakeCase inserts "_" at every lower-to-upper boundary and lowercases.
func ToSnakeCase(s string) string { return splitBoundaries(s, '_') }

func splitBoundaries(s string, sep byte) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if i > 0 && c >= 'A' && c <= 'Z' {
			prev := s[i-1]
			if prev >= 'a' && prev <= 'z' {
				b.WriteByte(sep)
			}
		}
		b.WriteByte(c)
	}
	return strings.ToLower(b.String())
}

// Pluralize applies naive English suffix rules. Irregular nouns are not handled.
func Pluralize(s string) string {
	switch {
	case s == "":
		return ""
	case strings.HasSuffix(s, "y"):
		return s[:len(s)-1] + "ies"
	case strings.HasSuffix(s, "s"), strings.HasSuffix(s, "sh"), strings.HasSuffix(s, "ch"):
		return s + "es"
	default:
		return s + "s"
	}
}

// Humanize splits an identifier into space separated words:
// "UserProfile" -> "User Profile", "order_item" -> "Order Item".
func Humanize(s string) string {
	words := camelcase.Split(ToPascalCase(s))
	out := words[:0]
	for _, w := range words {
		if strings.TrimSpace(w) != "" {
			out = append(out, w)
		}
	}
	return strings.Join(out, " ")
}

// Apply converts s to the named casing. Unknown casings return s unchanged.
func Apply(s, casing string) string {
	switch casing {
	case "kebabCase":
		return ToKebabCase(s)
	case "snakeCase":
		return ToSnakeCase(s)
	case "camelCase":
		return ToCamelCase(s)
	case "pascalCase":
		return ToPascalCase(s)
	default:
		return s
	}
}
