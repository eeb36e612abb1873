// Package lexer turns script source text into a sequence of tokens.
//
// Tokens are whitespace delimited, except that the punctuation characters
// ( ) [ ] , : { } always force a token boundary. The lexer never stops early:
// an unrecognized character sequence becomes an ERROR token, the first one is
// reported, and scanning continues until the input ends with an EOF token.
package lexer

import (
	"unicode"

	"github.com/deepnoodle-ai/screenscript/errz"
	"github.com/deepnoodle-ai/screenscript/internal/token"
)

// Lexer holds our object-state.
type Lexer struct {
	input    []rune
	reporter *errz.Reporter
	tokens   []token.Token

	// the token being built
	buf  []rune
	kind token.Type

	// string literal state
	inString bool
	escaped  bool
	closed   bool

	line int
}

// New creates a Lexer for the given input. Lexical errors are sent to the
// reporter, which may be nil.
func New(input string, reporter *errz.Reporter) *Lexer {
	// A trailing newline guarantees every token is terminated.
	return &Lexer{
		input:    []rune(input + "\n"),
		reporter: reporter,
	}
}

// Tokenize is shorthand for New(input, reporter).Tokenize().
func Tokenize(input string, reporter *errz.Reporter) []token.Token {
	return New(input, reporter).Tokenize()
}

// Tokenize scans the whole input and returns the tokens, always ending with
// a single EOF token.
func (l *Lexer) Tokenize() []token.Token {
	for _, ch := range l.input {
		if l.inString {
			l.readStringChar(ch)
			continue
		}
		switch ch {
		case '\n':
			l.commit()
			l.emit(token.NEWLINE, "\n")
			l.line++
		case ' ', '\t', '\r':
			l.commit()
		default:
			if typ, ok := token.LookupPunctuation(ch); ok {
				if ch == '(' && l.kind == token.IDENTIFIER &&
					token.LookupIdentifier(string(l.buf)) == token.IDENTIFIER {
					l.kind = token.METHODNAME
				}
				l.commit()
				l.emit(typ, string(ch))
				continue
			}
			if l.kind == "" {
				l.start(ch)
			} else {
				l.extend(ch)
			}
		}
	}
	l.commit()
	l.emit(token.EOF, "")
	return l.tokens
}

// start begins a new token with its first character.
func (l *Lexer) start(ch rune) {
	switch {
	case isDigit(ch):
		l.kind = token.INTEGER
	case isLetter(ch):
		l.kind = token.IDENTIFIER
	case ch == '"':
		l.kind = token.STRING
		l.inString = true
		return
	case ch == '#':
		l.kind = token.COLOR
	case ch == '+':
		l.kind = token.PLUS
	case ch == '-':
		l.kind = token.MINUS
	case ch == '*':
		l.kind = token.MULTIPLY
	case ch == '/':
		l.kind = token.DIVIDE
	case ch == '%':
		l.kind = token.MOD
	case ch == '=':
		l.kind = token.ASSIGNMENT
	case ch == '!':
		l.kind = token.NOT
	case ch == '<':
		l.kind = token.LESSTHAN
	case ch == '>':
		l.kind = token.GREATERTHAN
	default:
		l.kind = token.ERROR
	}
	l.buf = append(l.buf, ch)
}

// extend appends a character to the token in progress, promoting or
// demoting its type as needed.
func (l *Lexer) extend(ch rune) {
	next := token.ERROR
	if l.kind == token.STRING {
		// A closed string followed by more characters is reported as written.
		l.buf = append(append([]rune{'"'}, l.buf...), '"')
	}
	switch l.kind {
	case token.INTEGER:
		if isDigit(ch) {
			next = token.INTEGER
		} else if ch == '.' {
			next = token.FLOAT
		}
	case token.FLOAT:
		if isDigit(ch) {
			next = token.FLOAT
		}
	case token.IDENTIFIER:
		if isLetter(ch) || isDigit(ch) || ch == '.' {
			next = token.IDENTIFIER
		}
	case token.COLOR:
		if isHexDigit(ch) {
			next = token.COLOR
		}
	case token.MINUS:
		if isDigit(ch) {
			next = token.INTEGER
		}
	case token.ASSIGNMENT:
		if ch == '=' {
			next = token.EQUALS
		}
	case token.NOT:
		if ch == '=' {
			next = token.DOESNOTEQUAL
		}
	case token.LESSTHAN:
		if ch == '=' {
			next = token.LESSTHANOREQUAL
		}
	case token.GREATERTHAN:
		if ch == '=' {
			next = token.GREATERTHANOREQUAL
		}
	}
	l.kind = next
	l.buf = append(l.buf, ch)
}

func (l *Lexer) readStringChar(ch rune) {
	if l.escaped {
		switch ch {
		case 'n':
			ch = '\n'
		case 't':
			ch = '\t'
		}
		l.buf = append(l.buf, ch)
		l.escaped = false
		return
	}
	switch ch {
	case '\\':
		l.escaped = true
	case '"':
		l.inString = false
		l.closed = true
	case '\n':
		// Unterminated string
		l.inString = false
		l.kind = token.ERROR
		l.buf = append([]rune{'"'}, l.buf...)
		l.commit()
		l.emit(token.NEWLINE, "\n")
		l.line++
	default:
		l.buf = append(l.buf, ch)
	}
}

// commit finishes the token in progress, if any.
func (l *Lexer) commit() {
	if l.kind == "" {
		return
	}
	text := string(l.buf)
	kind := l.kind
	switch kind {
	case token.IDENTIFIER:
		kind = token.LookupIdentifier(text)
	case token.STRING:
		if !l.closed {
			kind = token.ERROR
		}
	}
	if kind == token.ERROR && l.reporter != nil {
		l.reporter.Report(errz.ErrLexical, l.line, "unrecognized token %q", text)
	}
	l.emit(kind, text)
	l.buf = l.buf[:0]
	l.kind = ""
	l.closed = false
	l.escaped = false
}

func (l *Lexer) emit(kind token.Type, text string) {
	l.tokens = append(l.tokens, token.Token{Type: kind, Literal: text, Line: l.line})
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}
