package load

import (
	"go/token"
	"strconv"
	"strings"
	"unicode"
)

// Prefix starts every dbtype directive comment. Like other Go directives it
// has no space after the slashes, so go/doc hides it from documentation.
const Prefix = "//dbtype:"

// ParseDirectives tokenizes a comment line. ok is false when the comment is
// not a dbtype directive. Tokens are "key", "key=value" or `key="quoted"`;
// a type's directive line starts with its kind ("enum", "id").
func ParseDirectives(text string, pos token.Position) (dirs []*Directive, err *DirectiveError, ok bool) {
	if !strings.HasPrefix(text, Prefix) {
		return nil, nil, false
	}
	s := text[len(Prefix):]
	base := len(Prefix)
	i := 0
	for {
		for i < len(s) && unicode.IsSpace(rune(s[i])) {
			i++
		}
		if i == len(s) {
			return dirs, nil, true
		}
		start := i
		for i < len(s) && s[i] != '=' && !unicode.IsSpace(rune(s[i])) {
			i++
		}
		d := &Directive{Key: s[start:i], Pos: column(pos, base+start)}
		if d.Key == "" {
			return nil, &DirectiveError{Pos: d.Pos, Text: text, Msg: "missing key before '='"}, true
		}
		if i < len(s) && s[i] == '=' {
			i++
			d.HasValue = true
			if i < len(s) && s[i] == '"' {
				end, ok := closingQuote(s, i)
				if !ok {
					return nil, &DirectiveError{Pos: d.Pos, Text: text, Msg: "unterminated quoted value"}, true
				}
				v, uerr := strconv.Unquote(s[i : end+1])
				if uerr != nil {
					return nil, &DirectiveError{Pos: d.Pos, Text: text, Msg: uerr.Error()}, true
				}
				d.Value = v
				i = end + 1
			} else {
				vs := i
				for i < len(s) && !unicode.IsSpace(rune(s[i])) {
					i++
				}
				d.Value = s[vs:i]
			}
		}
		dirs = append(dirs, d)
	}
}

// closingQuote returns the index of the quote closing the one at s[open].
func closingQuote(s string, open int) (int, bool) {
	for i := open + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i, true
		}
	}
	return 0, false
}

func column(pos token.Position, off int) token.Position {
	if pos.IsValid() {
		pos.Column += off
		pos.Offset += off
	}
	return pos
}
