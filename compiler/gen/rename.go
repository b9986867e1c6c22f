package gen

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RenameRule derives wire labels from enum case names. The rules and the
// word splitting below are frozen: changing them changes stored data.
type RenameRule string

// Rename rules accepted by the rename-all directive.
const (
	RenameNone               RenameRule = "none"
	RenameLowercase          RenameRule = "lowercase"
	RenameUppercase          RenameRule = "UPPERCASE"
	RenamePascalCase         RenameRule = "PascalCase"
	RenameCamelCase          RenameRule = "camelCase"
	RenameSnakeCase          RenameRule = "snake_case"
	RenameScreamingSnakeCase RenameRule = "SCREAMING_SNAKE_CASE"
	RenameKebabCase          RenameRule = "kebab-case"
	RenameScreamingKebabCase RenameRule = "SCREAMING-KEBAB-CASE"
)

// DefaultRenameRule applies when an enum has no rename-all directive.
const DefaultRenameRule = RenameSnakeCase

var renameRules = []RenameRule{
	RenameNone,
	RenameLowercase,
	RenameUppercase,
	RenamePascalCase,
	RenameCamelCase,
	RenameSnakeCase,
	RenameScreamingSnakeCase,
	RenameKebabCase,
	RenameScreamingKebabCase,
}

// ParseRenameRule returns the rule spelled s.
func ParseRenameRule(s string) (RenameRule, bool) {
	for _, r := range renameRules {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// Apply returns the label of the case name.
//
//	RenameSnakeCase.Apply("PastDue")          // past_due
//	RenameKebabCase.Apply("HTTPServer")       // http-server
//	RenameCamelCase.Apply("Http2Server")      // http2Server
//	RenameScreamingSnakeCase.Apply("IPv6Addr") // I_PV6_ADDR
func (r RenameRule) Apply(name string) string {
	// Casers are stateful; never share them.
	lower := cases.Lower(language.Und)
	upper := cases.Upper(language.Und)
	title := cases.Title(language.Und)
	switch r {
	case RenameLowercase:
		return lower.String(name)
	case RenameUppercase:
		return upper.String(name)
	case RenamePascalCase:
		return joinWords(name, "", func(int, string) cases.Caser { return title })
	case RenameCamelCase:
		return joinWords(name, "", func(i int, _ string) cases.Caser {
			if i == 0 {
				return lower
			}
			return title
		})
	case RenameSnakeCase:
		return joinWords(name, "_", func(int, string) cases.Caser { return lower })
	case RenameScreamingSnakeCase:
		return joinWords(name, "_", func(int, string) cases.Caser { return upper })
	case RenameKebabCase:
		return joinWords(name, "-", func(int, string) cases.Caser { return lower })
	case RenameScreamingKebabCase:
		return joinWords(name, "-", func(int, string) cases.Caser { return upper })
	default:
		return name
	}
}

func joinWords(name, sep string, caser func(int, string) cases.Caser) string {
	words := Words(name)
	for i, w := range words {
		words[i] = caser(i, w).String(w)
	}
	return strings.Join(words, sep)
}

// Words splits a case name into words. Words break at '_', '-' and spaces,
// before an upper-case letter following a lower-case letter or a digit, and
// before the last upper-case letter of an acronym followed by a lower-case
// letter. Digits stay with the preceding word.
//
//	Words("PastDue")     // [Past Due]
//	Words("HTTPServer")  // [HTTP Server]
//	Words("Http2Server") // [Http2 Server]
//	Words("IPv6Address") // [I Pv6 Address]
func Words(s string) []string {
	var (
		words []string
		runes = []rune(s)
		start = -1
	)
	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, string(runes[start:end]))
		}
		start = -1
	}
	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush(i)
			continue
		}
		if start < 0 {
			start = i
			continue
		}
		if !unicode.IsUpper(r) {
			continue
		}
		prev := runes[i-1]
		nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
			flush(i)
			start = i
		}
	}
	flush(len(runes))
	return words
}

// humanize returns a readable description of a Go identifier, e.g.
// "PastDue" -> "Past due".
func humanize(name string) string {
	return inflect.Humanize(RenameSnakeCase.Apply(name))
}
