// Package parser is used to generate the abstract syntax tree (AST) for a
// script.
//
// The grammar is ambiguous at the statement level, so productions are tried
// in a fixed order and a failed attempt is rolled back before the next one is
// tried. Each production takes the cursor by value and returns the cursor
// after the tokens it consumed; the cursor only moves on success. Changes to
// the symbol table and any semantic diagnostics raised during an attempt are
// journaled and undone along with it.
//
// A parser is created by calling New() with the token stream as input. The
// parser should then be used only once, by calling Parse() to produce the AST.
package parser

import (
	"context"

	"github.com/deepnoodle-ai/screenscript/ast"
	"github.com/deepnoodle-ai/screenscript/checker"
	"github.com/deepnoodle-ai/screenscript/errz"
	"github.com/deepnoodle-ai/screenscript/internal/lexer"
	"github.com/deepnoodle-ai/screenscript/internal/token"
)

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 500

// Program is the result of a successful parse.
type Program struct {
	// Root holds the top-level statements.
	Root *ast.Block

	// Table is the scope chain built while parsing.
	Table *checker.Table

	// Info holds the static type of every expression in Root.
	Info *checker.Info
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithMaxDepth sets the maximum nesting depth for the parser.
// This prevents stack overflow on deeply nested input.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// WithTable sets the symbol table the parser fills. By default each parser
// creates its own.
func WithTable(table *checker.Table) Option {
	return func(p *Parser) {
		p.table = table
	}
}

// Parse tokenizes and parses the provided input. This is shorthand for
// creating a Parser over lexer.Tokenize(input) and calling Parse on it.
func Parse(ctx context.Context, input string, reporter *errz.Reporter, options ...Option) (*Program, error) {
	if reporter == nil {
		reporter = errz.NewReporter(nil)
	}
	return New(lexer.Tokenize(input, reporter), reporter, options...).Parse(ctx)
}

// cursor is an index into the token stream.
type cursor int

// mark is a point the parser can roll back to.
type mark struct {
	table checker.Mark
	diags int
}

// Parser object
type Parser struct {
	tokens   []token.Token
	reporter *errz.Reporter
	table    *checker.Table
	info     *checker.Info

	// semantic diagnostics raised by the top-level statement being parsed
	diags []*errz.Error

	// Current recursion depth
	depth int

	// Maximum allowed recursion depth
	maxDepth int
}

// New returns a Parser for the token stream. Errors are reported to the
// given reporter, which may be nil.
func New(tokens []token.Token, reporter *errz.Reporter, options ...Option) *Parser {
	if reporter == nil {
		reporter = errz.NewReporter(nil)
	}
	if n := len(tokens); n == 0 || tokens[n-1].Type != token.EOF {
		line := 0
		if n > 0 {
			line = tokens[n-1].Line
		}
		tokens = append(tokens, token.Token{Type: token.EOF, Line: line})
	}
	p := &Parser{
		tokens:   tokens,
		reporter: reporter,
		info:     checker.NewInfo(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.table == nil {
		p.table = checker.NewTable()
	}
	return p
}

// Parse the token stream. A syntax error aborts the parse and no program is
// returned. Semantic diagnostics found along the way are sent to the reporter
// and do not stop the parse.
func (p *Parser) Parse(ctx context.Context) (*Program, error) {
	root := &ast.Block{}
	c := p.skipNewlines(0)
	for p.at(c).Type != token.EOF {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m := p.mark()
		stmt, next, err := p.statement(c)
		if err != nil {
			p.rollback(m)
			return nil, p.fail(p.topLevelError(c, err))
		}
		if tok := p.at(next); tok.Type != token.NEWLINE {
			p.rollback(m)
			return nil, p.fail(p.syntaxError(tok, "expected newline after %s, got %s", construct(stmt), tok))
		}
		p.flush()
		root.Stmts = append(root.Stmts, stmt)
		c = p.skipNewlines(next)
	}
	return &Program{Root: root, Table: p.table, Info: p.info}, nil
}

// Tokens returns the token stream the parser works on.
func (p *Parser) Tokens() []token.Token {
	return p.tokens
}

func (p *Parser) at(c cursor) token.Token {
	if int(c) >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[c]
}

func (p *Parser) skipNewlines(c cursor) cursor {
	for p.at(c).Type == token.NEWLINE {
		c++
	}
	return c
}

// expect consumes one token of the given type.
func (p *Parser) expect(c cursor, typ token.Type, want string) (token.Token, cursor, error) {
	tok := p.at(c)
	if tok.Type != typ {
		return tok, c, p.noMatch(c, want)
	}
	return tok, c + 1, nil
}

func (p *Parser) mark() mark {
	return mark{table: p.table.Mark(), diags: len(p.diags)}
}

func (p *Parser) rollback(m mark) {
	p.table.Rollback(m.table)
	p.diags = p.diags[:m.diags]
}

// diagnose records a semantic error against the current attempt.
func (p *Parser) diagnose(line int, err error) {
	p.diags = append(p.diags, errz.New(errz.ErrSemantic, line, "%w", err))
}

// flush sends the committed statement's diagnostics to the reporter.
func (p *Parser) flush() {
	for _, d := range p.diags {
		p.reporter.Latch(d)
	}
	p.diags = p.diags[:0]
}

func (p *Parser) fail(err error) error {
	if e, ok := errz.As(err); ok {
		p.reporter.Latch(e)
	}
	return err
}

func (p *Parser) enter(c cursor) error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.syntaxError(p.at(c), "maximum nesting depth exceeded")
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}
