package solver

import (
	"strings"
	"unicode"

	"github.com/mna/jsrename/scope"
)

// reservedWords are identifiers that cannot be used as a binding name in any
// JavaScript context this system renames into (keywords plus strict-mode
// reserved words). A normalized candidate colliding with one of these is
// prefixed with "_", mirroring the teacher's own scanner keyword table in
// spirit (a flat lookup set, not a parser production).
var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "export": true, "extends": true, "finally": true,
	"for": true, "function": true, "if": true, "import": true, "in": true,
	"instanceof": true, "new": true, "return": true, "super": true,
	"switch": true, "this": true, "throw": true, "try": true, "typeof": true,
	"var": true, "void": true, "while": true, "with": true, "yield": true,
	"let": true, "static": true, "enum": true, "await": true,
	"implements": true, "package": true, "protected": true, "interface": true,
	"private": true, "public": true,
	"null": true, "true": true, "false": true,
}

// placeholderName is used when normalization yields an empty string.
const placeholderName = "_renamed"

// normalizeCandidate converts a raw oracle-suggested name into a safe,
// style-conforming identifier (§4.6 preconditions):
//  1. strip/convert non-identifier characters, splitting on them as word
//     boundaries for camel/pascal casing;
//  2. coerce to the binding's desired style, preserving leading underscores;
//  3. replace a numeric leading character;
//  4. prefix reserved words with "_";
//  5. fall back to a placeholder if the result is empty.
func normalizeCandidate(raw string, style scope.Style) string {
	leadingUnderscores := 0
	for leadingUnderscores < len(raw) && raw[leadingUnderscores] == '_' {
		leadingUnderscores++
	}

	words := splitWords(raw[leadingUnderscores:])
	name := applyStyle(words, style)
	name = strings.Repeat("_", leadingUnderscores) + name

	if name == "" {
		name = placeholderName
	}
	if r := rune(name[0]); unicode.IsDigit(r) {
		name = "_" + name
	}
	if reservedWords[name] {
		name = "_" + name
	}
	return name
}

// splitWords breaks s into word fragments on any non-identifier-part
// character and on camelCase/PascalCase boundaries already present in the
// input, so "user-Name_2FA" yields ["user", "Name", "2FA"].
func splitWords(s string) []string {
	var words []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]) {
				flush()
			}
			cur.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return words
}

func applyStyle(words []string, style scope.Style) string {
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	switch style {
	case scope.StyleUpperSnake:
		for i, w := range words {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteString(strings.ToUpper(w))
		}
	case scope.StylePascal:
		for _, w := range words {
			b.WriteString(capitalize(w))
		}
	default: // camel
		b.WriteString(lowerFirst(words[0]))
		for _, w := range words[1:] {
			b.WriteString(capitalize(w))
		}
	}
	return b.String()
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	r := []rune(w)
	return strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
}

func lowerFirst(w string) string {
	if w == "" {
		return w
	}
	r := []rune(w)
	return strings.ToLower(string(r[0])) + string(r[1:])
}
