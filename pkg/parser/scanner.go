package parser

import (
	"github.com/leapstack-labs/dumpnav/pkg/token"
)

// StatementKind classifies a scanned statement.
type StatementKind int

// Statement kinds. Everything that is not a CREATE TABLE or an INSERT is
// StatementOther and is ignored by the dump parser.
const (
	StatementOther StatementKind = iota
	StatementCreateTable
	StatementInsert
)

// String returns a short name for the kind.
func (k StatementKind) String() string {
	switch k {
	case StatementCreateTable:
		return "CREATE TABLE"
	case StatementInsert:
		return "INSERT INTO"
	default:
		return "other"
	}
}

// Statement is one top-level statement: the text from its first
// non-blank character up to, not including, the terminating ';'.
type Statement struct {
	Text string
	Pos  Position
	Kind StatementKind
}

// Scanner splits dump text into statements. Statements end at a ';' that is
// outside quotes, backticks, comments and parentheses.
type Scanner struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	// Comments skipped between statements.
	Comments []*token.Comment
}

// NewScanner creates a Scanner for the given dump text.
func NewScanner(input string) *Scanner {
	s := &Scanner{
		input: input,
		line:  1,
		col:   0,
	}
	s.readChar()
	return s
}

// readChar advances to the next character.
func (s *Scanner) readChar() {
	if s.pos < len(s.input) && s.readPos > 0 {
		switch prev := s.input[s.pos]; {
		case prev == '\n':
			s.line++
			s.col = 0
		case prev&0xC0 == 0x80:
			// continuation byte, same column
			s.col--
		}
	}
	if s.readPos >= len(s.input) {
		s.ch = 0 // ASCII NUL = EOF
	} else {
		s.ch = s.input[s.readPos]
	}
	s.pos = s.readPos
	s.readPos++
	s.col++
}

// peekChar returns the next character without advancing.
func (s *Scanner) peekChar() byte {
	if s.readPos >= len(s.input) {
		return 0
	}
	return s.input[s.readPos]
}

// eof reports whether the whole input has been consumed.
func (s *Scanner) eof() bool {
	return s.pos >= len(s.input)
}

// currentPos returns the current position.
func (s *Scanner) currentPos() Position {
	return Position{
		Line:   s.line,
		Column: s.col,
		Offset: s.pos,
	}
}

// Next returns the next statement. ok is false once the input is exhausted.
// Empty statements (a lone ';', or a ';' after a skipped comment) are skipped.
func (s *Scanner) Next() (stmt Statement, ok bool, err error) {
	for {
		s.skipWhitespaceAndComments()
		if s.eof() {
			return Statement{}, false, nil
		}
		if s.ch == ';' {
			s.readChar()
			continue
		}

		start := s.currentPos()
		end, err := s.scanStatement()
		if err != nil {
			return Statement{}, false, err
		}
		text := trimRightSpace(s.input[start.Offset:end])
		return Statement{Text: text, Pos: start, Kind: classify(text)}, true, nil
	}
}

// scanStatement consumes up to and including the terminating ';' and
// returns the offset of the ';' (or of EOF when the last statement is
// unterminated).
func (s *Scanner) scanStatement() (int, error) {
	depth := 0
	for !s.eof() {
		switch s.ch {
		case '\'', '"':
			if err := s.skipQuoted(s.ch, errUnterminatedString); err != nil {
				return 0, err
			}
			continue
		case '`':
			if err := s.skipQuoted('`', errUnterminatedIdent); err != nil {
				return 0, err
			}
			continue
		case '/':
			if s.peekChar() == '*' {
				s.skipBlockComment()
				continue
			}
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				end := s.pos
				s.readChar()
				return end, nil
			}
		}
		s.readChar()
	}
	return len(s.input), nil
}

// skipQuoted consumes a quoted run starting at the opening quote.
// Backslash escapes apply inside ' and "; a doubled quote is a literal quote
// in all three forms.
func (s *Scanner) skipQuoted(quote byte, message string) error {
	start := s.currentPos()
	s.readChar() // skip opening quote
	for !s.eof() {
		switch {
		case s.ch == '\\' && quote != '`':
			s.readChar()
			if !s.eof() {
				s.readChar()
			}
		case s.ch == quote && s.peekChar() == quote:
			s.readChar()
			s.readChar()
		case s.ch == quote:
			s.readChar() // skip closing quote
			return nil
		default:
			s.readChar()
		}
	}
	return &MalformedLiteralError{Pos: start, Message: message}
}

// skipWhitespaceAndComments skips whitespace and collects comments.
func (s *Scanner) skipWhitespaceAndComments() {
	for {
		for isSpace(s.ch) {
			s.readChar()
		}

		switch {
		case s.ch == '-' && s.peekChar() == '-':
			s.collectLineComment()
		case s.ch == '#':
			s.collectLineComment()
		case s.ch == '/' && s.peekChar() == '*':
			s.collectBlockComment()
		default:
			return
		}
	}
}

// collectLineComment collects a line comment.
func (s *Scanner) collectLineComment() {
	startPos := s.currentPos()
	for s.ch != '\n' && !s.eof() {
		s.readChar()
	}
	s.addComment(startPos)
}

// collectBlockComment collects a block comment.
func (s *Scanner) collectBlockComment() {
	startPos := s.currentPos()
	s.skipBlockComment()
	s.addComment(startPos)
}

// skipBlockComment consumes /* ... */; an unterminated comment runs to EOF.
func (s *Scanner) skipBlockComment() {
	s.readChar() // skip '/'
	s.readChar() // skip '*'
	for !s.eof() {
		if s.ch == '*' && s.peekChar() == '/' {
			s.readChar() // skip '*'
			s.readChar() // skip '/'
			return
		}
		s.readChar()
	}
}

func (s *Scanner) addComment(start Position) {
	text := s.input[start.Offset:s.pos]
	s.Comments = append(s.Comments, &token.Comment{
		Kind: token.KindOf(text),
		Text: text,
		Span: token.Span{Start: start, End: s.currentPos()},
	})
}

// classify determines the statement kind from its leading keywords.
func classify(text string) StatementKind {
	if _, ok := matchCreateTable(text); ok {
		return StatementCreateTable
	}
	if _, ok := matchInsert(text); ok {
		return StatementInsert
	}
	return StatementOther
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

func trimRightSpace(s string) string {
	end := len(s)
	for end > 0 && isSpace(s[end-1]) {
		end--
	}
	return s[:end]
}
