package parse

import "strings"

const eof = -1

// scanner is a forward-only reader over template source with one character
// of lookahead, tracking line and column for error messages.  All read
// operations return empty results at end of input rather than failing.
type scanner struct {
	input string
	pos   int // byte offset of the next character
	line  int // 1-based line of the next character
	col   int // 1-based column of the next character
}

func newScanner(input string) *scanner {
	return &scanner{input: input, line: 1, col: 1}
}

// next consumes and returns the next character, or eof.
func (s *scanner) next() int {
	if s.pos >= len(s.input) {
		return eof
	}
	var c = s.input[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return int(c)
}

// peek returns the next character without consuming it.
func (s *scanner) peek() int {
	if s.pos >= len(s.input) {
		return eof
	}
	return int(s.input[s.pos])
}

// peek2 returns the character after next without consuming anything.
func (s *scanner) peek2() int {
	if s.pos+1 >= len(s.input) {
		return eof
	}
	return int(s.input[s.pos+1])
}

// atCloser reports whether the scanner is looking at the directive closer.
func (s *scanner) atCloser() bool {
	return s.peek() == '?' && s.peek2() == '>'
}

func isSpace(c int) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// readText consumes raw text up to and including the directive opener "<?",
// returning the text before it.  Returns the remainder of the input if no
// opener follows, and "" if the input starts with a directive.
func (s *scanner) readText() string {
	var text strings.Builder
	for {
		var c = s.next()
		if c == eof {
			return text.String()
		}
		if c == '<' && s.peek() == '?' {
			s.next() // forget '?'
			return text.String()
		}
		text.WriteByte(byte(c))
	}
}

// readTemplateCommand reads the command word of a directive: leading
// whitespace is skipped, then a bare word up to whitespace or the directive
// closer.  A single leading '=' is the shorthand for "echo".  Returns "" at
// end of input, which the parser treats as end of template.
func (s *scanner) readTemplateCommand() string {
	s.readWhiteSpace()
	var command strings.Builder
	for {
		var c = s.peek()
		if c == eof || isSpace(c) || s.atCloser() {
			return command.String()
		}
		if c == '=' && command.Len() == 0 {
			s.next()
			return "echo"
		}
		s.next()
		command.WriteByte(byte(c))
	}
}

// readWord reads a whitespace-delimited token.
func (s *scanner) readWord() string {
	var word strings.Builder
	for {
		var c = s.peek()
		if c == eof || isSpace(c) {
			return word.String()
		}
		s.next()
		word.WriteByte(byte(c))
	}
}

// readQuery reads a whitespace-delimited token, additionally stopping
// (without consuming) at the directive closer so a query may directly abut
// "?>".  Terminating whitespace is consumed.
func (s *scanner) readQuery() string {
	var word strings.Builder
	for {
		if s.atCloser() {
			return word.String()
		}
		var c = s.next()
		if c == eof || isSpace(c) {
			return word.String()
		}
		word.WriteByte(byte(c))
	}
}

// readString reads a double-quoted literal.  The opening quote is required;
// the literal ends at the first subsequent quote, with no escape support.
func (s *scanner) readString() string {
	var str strings.Builder
	if s.peek() != '"' {
		return ""
	}
	s.next()
	for {
		var c = s.next()
		if c == eof || c == '"' {
			return str.String()
		}
		str.WriteByte(byte(c))
	}
}

// readWhiteSpace consumes and discards contiguous whitespace.
func (s *scanner) readWhiteSpace() {
	for isSpace(s.peek()) {
		s.next()
	}
}
