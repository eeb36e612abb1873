package parser

import (
	"strings"

	"github.com/deepnoodle-ai/screenscript/ast"
	"github.com/deepnoodle-ai/screenscript/internal/token"
	"github.com/deepnoodle-ai/screenscript/types"
)

type production struct {
	name  string
	parse func(c cursor) (ast.Stmt, cursor, error)
}

func (p *Parser) productions() []production {
	return []production{
		{"assignment", p.assignment},
		{"for loop", p.forLoop},
		{"while loop", p.whileLoop},
		{"if statement", p.ifStatement},
		{"method call", p.methodCallStatement},
		{"return statement", p.returnStatement},
	}
}

// statement tries each statement production in order. On failure the
// furthest match failure is returned, annotated with its construct.
func (p *Parser) statement(c cursor) (ast.Stmt, cursor, error) {
	var failure error
	for _, prod := range p.productions() {
		m := p.mark()
		stmt, next, err := prod.parse(c)
		if err == nil {
			return stmt, next, nil
		}
		p.rollback(m)
		if isFatal(err) {
			return nil, c, err
		}
		failure = furthest(failure, &malformed{construct: prod.name, err: asMatch(err)})
	}
	return nil, c, failure
}

func asMatch(err error) *MatchError {
	if m, ok := err.(*MatchError); ok {
		return m
	}
	if mf, ok := err.(*malformed); ok {
		return mf.err
	}
	return &MatchError{Want: "statement"}
}

// Assignment := Property "=" ValueOrLogical [ "as" CastTarget ]
func (p *Parser) assignment(c cursor) (ast.Stmt, cursor, error) {
	target, c, err := p.property(c)
	if err != nil {
		return nil, c, err
	}
	if _, c, err = p.expect(c, token.ASSIGNMENT, `"="`); err != nil {
		return nil, c, err
	}
	value, c, err := p.valueOrLogical(c)
	if err != nil {
		return nil, c, err
	}
	cast, c, err := p.optionalCast(c)
	if err != nil {
		return nil, c, err
	}
	typ := p.info.TypeOf(value)
	if cast != nil {
		typ = castType(cast)
	}
	if err := p.table.Assign(target.Name(), typ); err != nil {
		p.diagnose(target.Pos(), err)
	}
	return &ast.Assignment{Target: target, Value: value, Cast: cast}, c, nil
}

// property parses an assignment target. Only the first dotted segment of the
// identifier is kept.
func (p *Parser) property(c cursor) (*ast.Property, cursor, error) {
	tok, next, err := p.expect(c, token.IDENTIFIER, "identifier")
	if err != nil {
		return nil, c, err
	}
	id := &ast.Identifier{Line: tok.Line, Name: firstSegment(tok.Literal)}
	return &ast.Property{Path: []*ast.Identifier{id}}, next, nil
}

func firstSegment(name string) string {
	if i := strings.IndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}

// optionalCast parses a trailing "as <Type>" clause if present.
func (p *Parser) optionalCast(c cursor) (*ast.Cast, cursor, error) {
	tok := p.at(c)
	if tok.Type != token.CAST {
		return nil, c, nil
	}
	target := p.at(c + 1)
	if !token.IsTypeName(target.Type) && target.Type != token.IDENTIFIER {
		return nil, c, p.noMatch(c+1, "type name")
	}
	return &ast.Cast{Line: tok.Line, TypeName: target.Literal}, c + 2, nil
}

// castType is the static type a cast produces, or Unknown for a target the
// semantic pass will reject.
func castType(cast *ast.Cast) types.Type {
	if t, ok := types.ParseCastTarget(cast.TypeName); ok {
		return t
	}
	return types.Unknown
}

// ForLoop := "for" IDENTIFIER [ "as" CastTarget ] "in" Value Block
func (p *Parser) forLoop(c cursor) (ast.Stmt, cursor, error) {
	tok, c, err := p.expect(c, token.FOR, `"for"`)
	if err != nil {
		return nil, c, err
	}
	name, c, err := p.expect(c, token.IDENTIFIER, "loop identifier")
	if err != nil {
		return nil, c, err
	}
	binder := &ast.Identifier{Line: name.Line, Name: firstSegment(name.Literal)}
	cast, c, err := p.optionalCast(c)
	if err != nil {
		return nil, c, err
	}
	if _, c, err = p.expect(c, token.IN, `"in"`); err != nil {
		return nil, c, err
	}
	source, c, err := p.value(c)
	if err != nil {
		return nil, c, err
	}
	binderType := types.Unknown
	if cast != nil {
		binderType = castType(cast)
	}
	body, c, err := p.block(c, func() {
		p.table.Declare(binder.Name, binderType)
	})
	if err != nil {
		return nil, c, err
	}
	return &ast.ForLoop{Line: tok.Line, Binder: binder, Cast: cast, Source: source, Body: body}, c, nil
}

// WhileLoop := "while" LogicalExpr Block
func (p *Parser) whileLoop(c cursor) (ast.Stmt, cursor, error) {
	tok, c, err := p.expect(c, token.WHILE, `"while"`)
	if err != nil {
		return nil, c, err
	}
	cond, c, err := p.logical(c)
	if err != nil {
		return nil, c, err
	}
	body, c, err := p.block(c, nil)
	if err != nil {
		return nil, c, err
	}
	return &ast.WhileLoop{Line: tok.Line, Cond: cond, Body: body}, c, nil
}

// IfStatement := "if" LogicalExpr Block
func (p *Parser) ifStatement(c cursor) (ast.Stmt, cursor, error) {
	tok, c, err := p.expect(c, token.IF, `"if"`)
	if err != nil {
		return nil, c, err
	}
	cond, c, err := p.logical(c)
	if err != nil {
		return nil, c, err
	}
	body, c, err := p.block(c, nil)
	if err != nil {
		return nil, c, err
	}
	return &ast.IfStatement{Line: tok.Line, Cond: cond, Body: body}, c, nil
}

func (p *Parser) methodCallStatement(c cursor) (ast.Stmt, cursor, error) {
	call, c, err := p.methodCall(c)
	if err != nil {
		return nil, c, err
	}
	return call, c, nil
}

// ReturnStatement := "return" Value
func (p *Parser) returnStatement(c cursor) (ast.Stmt, cursor, error) {
	tok, c, err := p.expect(c, token.RETURN, `"return"`)
	if err != nil {
		return nil, c, err
	}
	value, c, err := p.value(c)
	if err != nil {
		return nil, c, err
	}
	return &ast.ReturnStatement{Line: tok.Line, Value: value}, c, nil
}

// block parses "{" statements "}" in a new scope. setup, if set, runs once
// the scope is pushed.
//
// A statement that fails to parse ends the block early and the cursor skips
// the token it failed on. Whatever follows is left to the enclosing
// statement, which usually fails on the missing newline.
func (p *Parser) block(c cursor, setup func()) (*ast.Block, cursor, error) {
	open, c, err := p.expect(c, token.OPENBRACE, `"{"`)
	if err != nil {
		return nil, c, err
	}
	if err := p.enter(c); err != nil {
		return nil, c, err
	}
	defer p.leave()

	p.table.Push()
	defer p.table.Pop()
	if setup != nil {
		setup()
	}

	block := &ast.Block{Line: open.Line}
	for {
		c = p.skipNewlines(c)
		switch p.at(c).Type {
		case token.EOF:
			return block, c, nil
		case token.CLOSEBRACE:
			return block, c + 1, nil
		}
		m := p.mark()
		stmt, next, err := p.statement(c)
		if isFatal(err) {
			return nil, c, err
		}
		if err != nil {
			p.rollback(m)
			return block, c + 1, nil
		}
		switch tok := p.at(next); tok.Type {
		case token.NEWLINE, token.CLOSEBRACE:
		default:
			return nil, c, p.syntaxError(tok, "expected newline after %s, got %s", construct(stmt), tok)
		}
		block.Stmts = append(block.Stmts, stmt)
		c = next
	}
}
