// Package lexer converts cypheri source text into a token stream.
//
// The lexer is ASCII-centric: identifiers and numbers are made only of ASCII
// letters, digits, and '_', and only ASCII whitespace separates tokens.
// UTF-8 inside string literals passes
// through unchanged. Tokens are produced with maximal munch, so every
// multi-character operator is preferred over its prefixes.
package lexer

import (
	"math"
	"strings"

	"github.com/cypheri-lang/cypheri/errors"
	"github.com/cypheri-lang/cypheri/nametable"
	"github.com/cypheri-lang/cypheri/token"
)

// Result is the outcome of tokenizing one source text: the tokens produced,
// the decoded string-literal pool indexed by (string) tokens, and the first
// error, if any. On success the token stream ends with exactly one (eof)
// token; on error the tokens lexed before the fault are kept but no (eof)
// is appended.
type Result struct {
	Tokens      []token.Token
	StrLiterals []string
	Err         *errors.SyntaxError
}

// stream is a byte cursor over the source with line/column tracking.
type stream struct {
	source string
	pos    int
	loc    errors.SourceLocation
}

func newStream(source string) *stream {
	return &stream{source: source, loc: errors.SourceLocation{Line: 1, Column: 1}}
}

func (s *stream) eof() bool {
	return s.pos >= len(s.source)
}

func (s *stream) peek() byte {
	return s.source[s.pos]
}

func (s *stream) consume() byte {
	c := s.source[s.pos]
	if c == '\n' {
		s.loc.Line++
		s.loc.Column = 1
	} else {
		s.loc.Column++
	}
	s.pos++
	return c
}

func (s *stream) match(expected byte) bool {
	if !s.eof() && s.peek() == expected {
		s.consume()
		return true
	}
	return false
}

func (s *stream) location() errors.SourceLocation {
	return s.loc
}

func (s *stream) skipWhitespace() {
	for !s.eof() && isSpace(s.peek()) {
		s.consume()
	}
}

// consumeIdentifier scans an identifier whose first byte was already
// consumed. It rolls the cursor back one byte so the whole lexeme is read
// in one pass.
func (s *stream) consumeIdentifier() string {
	s.pos--
	s.loc.Column--

	begin := s.pos
	for !s.eof() && isIdentByte(s.peek()) {
		s.consume()
	}
	return s.source[begin:s.pos]
}

// consumeString decodes a string literal whose opening quote was already
// consumed. An unterminated literal yields the content accumulated so far.
func (s *stream) consumeString() string {
	var b strings.Builder
	escaped := false
	for !s.eof() {
		c := s.consume()
		if escaped {
			switch c {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case '"':
				b.WriteByte('"')
			case '\'':
				b.WriteByte('\'')
			case '\\':
				b.WriteByte('\\')
			default:
				// unknown escape sequence, keep the character as is
				b.WriteByte(c)
			}
			escaped = false
		} else {
			switch c {
			case '"':
				return b.String()
			case '\\':
				escaped = true
			default:
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentByte(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '_'
}

// Tokenize scans source left to right and returns the resulting token
// stream. Identifier names are interned into nameTable. Tokenize never
// fails to return: on a lexical error the Result carries the first
// SyntaxError along with the tokens produced before it.
func Tokenize(source string, nameTable *nametable.Table) Result {
	var res Result
	s := newStream(source)

	fail := func(loc errors.SourceLocation, msg string) Result {
		res.Err = errors.New(msg, loc)
		return res
	}
	emit := func(typ token.Type, loc errors.SourceLocation) {
		res.Tokens = append(res.Tokens, token.New(typ, loc))
	}

	s.skipWhitespace()
	for !s.eof() {
		loc := s.location()
		c := s.consume()

		switch c {
		case '+':
			if s.match('=') {
				emit(token.PLUS_EQUALS, loc)
			} else {
				emit(token.PLUS, loc)
			}
		case '-':
			if s.match('=') {
				emit(token.MINUS_EQUALS, loc)
			} else {
				emit(token.MINUS, loc)
			}
		case '*':
			if s.match('=') {
				emit(token.ASTERISK_EQUALS, loc)
			} else if s.match('*') {
				if s.match('=') {
					emit(token.POW_EQUALS, loc)
				} else {
					emit(token.POW, loc)
				}
			} else {
				emit(token.ASTERISK, loc)
			}
		case '/':
			if s.match('=') {
				emit(token.SLASH_EQUALS, loc)
			} else if s.match('/') {
				if s.match('=') {
					emit(token.SLASH_SLASH_EQUALS, loc)
				} else {
					emit(token.SLASH_SLASH, loc)
				}
			} else {
				emit(token.SLASH, loc)
			}
		case '%':
			if s.match('=') {
				emit(token.MOD_EQUALS, loc)
			} else {
				emit(token.MOD, loc)
			}
		case '^':
			if s.match('=') {
				emit(token.CARET_EQUALS, loc)
			} else {
				emit(token.CARET, loc)
			}
		case '=':
			if s.match('=') {
				emit(token.EQ, loc)
			} else {
				emit(token.ASSIGN, loc)
			}
		case '!':
			if s.match('=') {
				emit(token.NOT_EQ, loc)
			} else {
				emit(token.BANG, loc)
			}
		case '<':
			if s.match('=') {
				emit(token.LT_EQUALS, loc)
			} else if s.match('<') {
				if s.match('=') {
					emit(token.LT_LT_EQUALS, loc)
				} else {
					emit(token.LT_LT, loc)
				}
			} else {
				emit(token.LT, loc)
			}
		case '>':
			if s.match('=') {
				emit(token.GT_EQUALS, loc)
			} else if s.match('>') {
				if s.match('=') {
					emit(token.GT_GT_EQUALS, loc)
				} else {
					emit(token.GT_GT, loc)
				}
			} else {
				emit(token.GT, loc)
			}
		case '&':
			if s.match('&') {
				emit(token.AND, loc)
			} else if s.match('=') {
				emit(token.AMPERSAND_EQUALS, loc)
			} else {
				emit(token.AMPERSAND, loc)
			}
		case '|':
			if s.match('|') {
				emit(token.OR, loc)
			} else if s.match('=') {
				emit(token.PIPE_EQUALS, loc)
			} else {
				emit(token.PIPE, loc)
			}
		case ';':
			emit(token.SEMICOLON, loc)
		case '(':
			emit(token.LPAREN, loc)
		case ')':
			emit(token.RPAREN, loc)
		case '{':
			emit(token.LBRACE, loc)
		case '}':
			emit(token.RBRACE, loc)
		case ',':
			emit(token.COMMA, loc)
		case '[':
			emit(token.LBRACKET, loc)
		case ']':
			emit(token.RBRACKET, loc)
		case ':':
			if !s.match(':') {
				return fail(loc, "Expected '::'")
			}
			emit(token.COLON_COLON, loc)
		case '"':
			res.StrLiterals = append(res.StrLiterals, s.consumeString())
			res.Tokens = append(res.Tokens, token.FromString(loc, len(res.StrLiterals)-1))
		default:
			switch {
			case isDigit(c):
				// TODO: handle hex, octal, and binary numbers, as well as floats
				val := uint64(c - '0')
				overflow := false
				for !s.eof() && isDigit(s.peek()) {
					d := uint64(s.peek() - '0')
					if val > (math.MaxUint64-d)/10 {
						overflow = true
						break
					}
					val = val*10 + d
					s.consume()
				}
				if overflow {
					return fail(loc, "Integer literal overflow")
				}
				res.Tokens = append(res.Tokens, token.FromInteger(loc, val))
			case isAlpha(c) || c == '_':
				id := s.consumeIdentifier()
				if keyword := token.LookupIdentifier(id); keyword != token.IDENT {
					emit(keyword, loc)
				} else {
					res.Tokens = append(res.Tokens,
						token.FromIdentifier(loc, nameTable.GetIDOrInsert(id)))
				}
			default:
				return fail(loc, "Unexpected character")
			}
		}
		s.skipWhitespace()
	}

	emit(token.EOF, s.location())
	return res
}
