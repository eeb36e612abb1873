package parser

import (
	"errors"
	"fmt"

	"github.com/deepnoodle-ai/screenscript/ast"
	"github.com/deepnoodle-ai/screenscript/errz"
	"github.com/deepnoodle-ai/screenscript/internal/token"
)

// MatchError is returned by a production that does not match the tokens at
// the cursor. It is not fatal: the caller backtracks and tries the next
// alternative.
type MatchError struct {
	Want string
	Got  token.Token
	at   cursor
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Want, e.Got)
}

func (p *Parser) noMatch(c cursor, want string) *MatchError {
	return &MatchError{Want: want, Got: p.at(c), at: c}
}

// isFatal returns true for errors that must abort the parse instead of
// triggering a backtrack.
func isFatal(err error) bool {
	var m *MatchError
	return err != nil && !errors.As(err, &m)
}

// furthest returns whichever of the two match failures got further into the
// token stream.
func furthest(a, b error) error {
	var ma, mb *MatchError
	if !errors.As(a, &ma) {
		return b
	}
	if !errors.As(b, &mb) {
		return a
	}
	if mb.at > ma.at {
		return b
	}
	return a
}

// malformed annotates a match failure with the construct being parsed.
type malformed struct {
	construct string
	err       *MatchError
}

func (e *malformed) Error() string {
	return fmt.Sprintf("malformed %s: %s", e.construct, e.err)
}

func (e *malformed) Unwrap() error { return e.err }

// topLevelError turns the failure of every statement alternative at c into a
// syntax error.
func (p *Parser) topLevelError(c cursor, err error) error {
	if isFatal(err) {
		return err
	}
	var mf *malformed
	if errors.As(err, &mf) && mf.err.at > c {
		return errz.New(errz.ErrSyntax, mf.err.Got.Line, "%s", mf)
	}
	tok := p.at(c)
	return errz.New(errz.ErrSyntax, tok.Line, "unexpected %s", tok)
}

func construct(stmt ast.Stmt) string {
	switch stmt.(type) {
	case *ast.Assignment:
		return "assignment"
	case *ast.ForLoop:
		return "for loop"
	case *ast.WhileLoop:
		return "while loop"
	case *ast.IfStatement:
		return "if statement"
	case *ast.MethodCall:
		return "method call"
	case *ast.ReturnStatement:
		return "return statement"
	}
	return "statement"
}

func (p *Parser) syntaxError(tok token.Token, format string, args ...any) *errz.Error {
	return errz.New(errz.ErrSyntax, tok.Line, format, args...)
}
