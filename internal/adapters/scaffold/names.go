package scaffold

import (
	"strings"
	"unicode"
)

// Words splits an identifier into words at separators and case changes.
// "user-profile", "user_profile" and "UserProfile" all yield [user profile]
// in their original casing; acronyms such as "HTTPServer" stay together.
func Words(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && i > 0 && startsWord(runes, i):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return words
}

// startsWord reports whether the upper-case rune at i begins a new word.
func startsWord(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	// End of an acronym: "HTTPServer" splits before the "S".
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

// PascalCase joins words capitalizing the first letter of each.
func PascalCase(words []string) string {
	var b strings.Builder
	for _, w := range words {
		r := []rune(w)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(string(r[1:]))
	}
	return b.String()
}

// KebabCase joins lower-cased words with hyphens.
func KebabCase(words []string) string {
	lower := make([]string, len(words))
	for i, w := range words {
		lower[i] = strings.ToLower(w)
	}
	return strings.Join(lower, "-")
}

// trimKind drops a trailing word equal to kind, so "UserController" and
// "user" name the same controller.
func trimKind(words []string, kind string) []string {
	if len(words) > 1 && strings.EqualFold(words[len(words)-1], kind) {
		return words[:len(words)-1]
	}
	return words
}
