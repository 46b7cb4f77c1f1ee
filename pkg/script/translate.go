package script

import "strings"

// translateSource rewrites script source into the dialect zygomys accepts.
// Three rewrites are applied, none of them inside string literals:
//
//   - :keyword becomes the string literal "__kw_keyword", so keyword
//     arguments never collide with user-defined symbols (":=" is left alone)
//   - a hyphen between identifier characters becomes an underscore, since
//     zygomys reads "total-area" as subtraction; a freestanding minus is
//     untouched
//   - a ";" line comment becomes a "//" comment
//
// Quantity names such as "edge-lengths" appear in quoted strings and pass
// through unchanged.
func translateSource(source string) string {
	t := translator{src: source}
	t.out.Grow(len(source) + len(source)/4)
	for t.pos < len(t.src) {
		switch c := t.src[t.pos]; c {
		case '"', '`':
			t.copyQuoted(c)
		case ';':
			t.comment()
		case ':':
			t.colon()
		case '-':
			t.hyphen()
		default:
			t.out.WriteByte(c)
			t.pos++
		}
	}
	return t.out.String()
}

// translator is a single-pass cursor over the source with the rewritten
// output accumulating in out.
type translator struct {
	src string
	pos int
	out strings.Builder
}

// copyQuoted copies a string literal verbatim, up to and including the
// closing quote. A backslash escapes the next character only inside
// double quotes; backtick strings are raw.
func (t *translator) copyQuoted(quote byte) {
	t.out.WriteByte(quote)
	t.pos++
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		if c == '\\' && quote == '"' && t.pos+1 < len(t.src) {
			t.out.WriteByte(c)
			t.out.WriteByte(t.src[t.pos+1])
			t.pos += 2
			continue
		}
		t.out.WriteByte(c)
		t.pos++
		if c == quote {
			return
		}
	}
}

// comment rewrites a ";" comment (any number of leading semicolons) to a
// "//" comment running to end of line.
func (t *translator) comment() {
	t.out.WriteString("//")
	for t.pos < len(t.src) && t.src[t.pos] == ';' {
		t.pos++
	}
	for t.pos < len(t.src) && t.src[t.pos] != '\n' {
		t.out.WriteByte(t.src[t.pos])
		t.pos++
	}
}

// colon handles the three meanings of ":": the assignment operator ":=",
// a keyword like :cells, and a bare colon.
func (t *translator) colon() {
	if t.pos+1 < len(t.src) {
		switch next := t.src[t.pos+1]; {
		case next == '=':
			t.out.WriteString(":=")
			t.pos += 2
			return
		case isLetter(next):
			end := t.pos + 1
			for end < len(t.src) && isKeywordChar(t.src[end]) {
				end++
			}
			t.out.WriteByte('"')
			t.out.WriteString(kwPrefix)
			t.out.WriteString(t.src[t.pos+1 : end])
			t.out.WriteByte('"')
			t.pos = end
			return
		}
	}
	t.out.WriteByte(':')
	t.pos++
}

// hyphen joins kebab-case identifiers with underscores. Only a hyphen
// sitting between an identifier character and a letter is rewritten, so
// subtraction like (- a b) or (a - 1) survives.
func (t *translator) hyphen() {
	if t.pos > 0 && t.pos+1 < len(t.src) &&
		isIdentChar(t.src[t.pos-1]) && isLetter(t.src[t.pos+1]) {
		t.out.WriteByte('_')
	} else {
		t.out.WriteByte('-')
	}
	t.pos++
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKeywordChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
