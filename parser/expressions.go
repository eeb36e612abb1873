package parser

import (
	"github.com/deepnoodle-ai/screenscript/ast"
	"github.com/deepnoodle-ai/screenscript/builtins"
	"github.com/deepnoodle-ai/screenscript/internal/token"
	"github.com/deepnoodle-ai/screenscript/types"
)

type exprProduction func(c cursor) (ast.Expr, cursor, error)

// valueOrLogical parses the right-hand side of an assignment, an argument or
// an array item. A bare value is the operator-free form of a logical
// expression.
func (p *Parser) valueOrLogical(c cursor) (ast.Expr, cursor, error) {
	return p.logical(c)
}

// LogicalExpr := "not" Operand | Operand [ CompareOp Operand ]
//
// At most one comparison or boolean operator is allowed.
func (p *Parser) logical(c cursor) (ast.Expr, cursor, error) {
	if tok := p.at(c); tok.Type == token.NOT {
		x, next, err := p.operand(c + 1)
		if err != nil {
			return nil, c, err
		}
		not := &ast.Not{Line: tok.Line, X: x}
		p.info.Record(not, types.Boolean)
		return not, next, nil
	}
	x, next, err := p.operand(c)
	if err != nil {
		return nil, c, err
	}
	op := p.at(next)
	if !token.IsComparison(op.Type) {
		return x, next, nil
	}
	y, next, err := p.operand(next + 1)
	if err != nil {
		return nil, c, err
	}
	cmp := &ast.Compare{Line: x.Pos(), Op: compareOperator(op.Type), X: x, Y: y}
	p.info.Record(cmp, types.Boolean)
	return cmp, next, nil
}

func compareOperator(t token.Type) ast.Operator {
	switch t {
	case token.AND:
		return ast.And
	case token.OR:
		return ast.Or
	}
	return ast.Operator(t)
}

// Operand := "true" | "false" | Value
func (p *Parser) operand(c cursor) (ast.Expr, cursor, error) {
	switch tok := p.at(c); tok.Type {
	case token.TRUE, token.FALSE:
		lit := &ast.BoolLit{Line: tok.Line, Value: tok.Type == token.TRUE}
		p.info.Record(lit, types.Boolean)
		return lit, c + 1, nil
	}
	return p.value(c)
}

// value tries each value production in order:
// MathExpr, Identifier, String, MethodCall, Array, Dictionary, Color.
func (p *Parser) value(c cursor) (ast.Expr, cursor, error) {
	if err := p.enter(c); err != nil {
		return nil, c, err
	}
	defer p.leave()

	alternatives := []exprProduction{
		p.mathExpr,
		p.identifier,
		p.stringLit,
		p.methodCallExpr,
		p.array,
		p.dictionary,
		p.color,
	}
	var failure error
	for _, alt := range alternatives {
		m := p.mark()
		x, next, err := alt(c)
		if err == nil {
			return x, next, nil
		}
		p.rollback(m)
		if isFatal(err) {
			return nil, c, err
		}
		failure = furthest(failure, err)
	}
	if m := asMatch(failure); m.at > c {
		return nil, c, failure
	}
	return nil, c, p.noMatch(c, "value")
}

// MathExpr := MathOperand [ ArithmeticOp MathExpr ]
//
// Chains lean right and there is no precedence: "2 * 3 + 1" is
// Multiply(2, Plus(3, 1)). An identifier alone is not a math expression.
func (p *Parser) mathExpr(c cursor) (ast.Expr, cursor, error) {
	x, next, err := p.mathOperand(c)
	if err != nil {
		return nil, c, err
	}
	if !token.IsArithmetic(p.at(next).Type) {
		if _, ok := x.(*ast.Identifier); ok {
			return nil, c, p.noMatch(c, "value")
		}
		return x, next, nil
	}
	return p.mathChain(x, next)
}

// mathChain parses the rest of a chain whose left operand is x; c is at the
// operator.
func (p *Parser) mathChain(x ast.Expr, c cursor) (ast.Expr, cursor, error) {
	op := p.at(c)
	y, next, err := p.mathOperand(c + 1)
	if err != nil {
		return nil, c, err
	}
	if token.IsArithmetic(p.at(next).Type) {
		if y, next, err = p.mathChain(y, next); err != nil {
			return nil, c, err
		}
	}
	bin := &ast.BinaryOp{Line: x.Pos(), Op: ast.Operator(op.Type), X: x, Y: y}
	p.info.Record(bin, mathType(p.info.TypeOf(x), p.info.TypeOf(y)))
	return bin, next, nil
}

// MathOperand := INTEGER | FLOAT | Identifier
func (p *Parser) mathOperand(c cursor) (ast.Expr, cursor, error) {
	switch p.at(c).Type {
	case token.INTEGER:
		return p.integerLit(c)
	case token.FLOAT:
		return p.floatLit(c)
	case token.IDENTIFIER:
		return p.identifier(c)
	}
	return nil, c, p.noMatch(c, "number or identifier")
}

// mathType combines the static types of two operands.
func mathType(x, y types.Type) types.Type {
	switch {
	case !x.IsConcrete() || !y.IsConcrete():
		return types.Unknown
	case x == types.String || y == types.String:
		return types.String
	case x == types.Float || y == types.Float:
		return types.Float
	case x == types.Integer && y == types.Integer:
		return types.Integer
	}
	return types.Unknown
}

// Identifier := IDENTIFIER [ "[" Value "]" ]
//
// The name must be declared somewhere in the active scope chain. Only the
// first dotted segment of the name is kept.
func (p *Parser) identifier(c cursor) (ast.Expr, cursor, error) {
	tok, next, err := p.expect(c, token.IDENTIFIER, "identifier")
	if err != nil {
		return nil, c, err
	}
	id := &ast.Identifier{Line: tok.Line, Name: firstSegment(tok.Literal)}
	typ, err := p.table.Resolve(id.Name)
	if err != nil {
		p.diagnose(tok.Line, err)
		typ = types.Unknown
	}
	sub, next, err := p.subscript(next)
	if err != nil {
		return nil, c, err
	}
	if sub != nil {
		id.Subscript = sub
		typ = types.Unknown
	}
	p.info.Record(id, known(typ))
	return id, next, nil
}

// subscript parses an optional trailing "[" Value "]".
func (p *Parser) subscript(c cursor) (ast.Expr, cursor, error) {
	if p.at(c).Type != token.STARTARRAY {
		return nil, c, nil
	}
	x, next, err := p.value(c + 1)
	if err != nil {
		return nil, c, err
	}
	if _, next, err = p.expect(next, token.ENDARRAY, `"]"`); err != nil {
		return nil, c, err
	}
	return x, next, nil
}

// MethodCall := METHODNAME "(" [ ValueOrLogical { "," ValueOrLogical } ] ")"
func (p *Parser) methodCall(c cursor) (*ast.MethodCall, cursor, error) {
	name, next, err := p.expect(c, token.METHODNAME, "method name")
	if err != nil {
		return nil, c, err
	}
	if _, next, err = p.expect(next, token.OPENARGUMENTS, `"("`); err != nil {
		return nil, c, err
	}
	call := &ast.MethodCall{Line: name.Line, Name: name.Literal}
	next, err = p.list(next, token.CLOSEARGUMENTS, `")"`, func(c cursor) (cursor, error) {
		arg, next, err := p.valueOrLogical(c)
		if err != nil {
			return c, err
		}
		call.Args = append(call.Args, arg)
		return next, nil
	})
	if err != nil {
		return nil, c, err
	}
	typ := types.Unknown
	if sig, ok := builtins.Lookup(call.Name); ok {
		typ = known(sig.Returns)
	}
	p.info.Record(call, typ)
	return call, next, nil
}

func (p *Parser) methodCallExpr(c cursor) (ast.Expr, cursor, error) {
	call, next, err := p.methodCall(c)
	if err != nil {
		return nil, c, err
	}
	return call, next, nil
}

// list parses comma separated items up to the closing token. Newlines
// between items are skipped.
func (p *Parser) list(c cursor, close token.Type, want string, item func(cursor) (cursor, error)) (cursor, error) {
	c = p.skipNewlines(c)
	if p.at(c).Type == close {
		return c + 1, nil
	}
	for {
		next, err := item(c)
		if err != nil {
			return c, err
		}
		c = p.skipNewlines(next)
		switch p.at(c).Type {
		case token.ARGUMENTSEPARATOR:
			c = p.skipNewlines(c + 1)
		case close:
			return c + 1, nil
		default:
			return c, p.noMatch(c, `"," or `+want)
		}
	}
}

// known maps Any to Unknown: a value whose type is only known at run time.
func known(t types.Type) types.Type {
	if t == types.Any {
		return types.Unknown
	}
	return t
}
