package parser

import (
	"image/color"
	"strconv"

	"github.com/deepnoodle-ai/screenscript/ast"
	"github.com/deepnoodle-ai/screenscript/internal/token"
	"github.com/deepnoodle-ai/screenscript/types"
)

func (p *Parser) integerLit(c cursor) (ast.Expr, cursor, error) {
	tok := p.at(c)
	value, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		return nil, c, p.syntaxError(tok, "invalid integer literal %q", tok.Literal)
	}
	lit := &ast.IntegerLit{Line: tok.Line, Value: value}
	p.info.Record(lit, types.Integer)
	return lit, c + 1, nil
}

func (p *Parser) floatLit(c cursor) (ast.Expr, cursor, error) {
	tok := p.at(c)
	value, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return nil, c, p.syntaxError(tok, "invalid float literal %q", tok.Literal)
	}
	lit := &ast.FloatLit{Line: tok.Line, Value: value}
	p.info.Record(lit, types.Float)
	return lit, c + 1, nil
}

func (p *Parser) stringLit(c cursor) (ast.Expr, cursor, error) {
	tok, next, err := p.expect(c, token.STRING, "string")
	if err != nil {
		return nil, c, err
	}
	lit := &ast.StringLit{Line: tok.Line, Value: tok.Literal}
	p.info.Record(lit, types.String)
	return lit, next, nil
}

// Array := "[" [ ValueOrLogical { "," ValueOrLogical } ] "]" [ Subscript ]
func (p *Parser) array(c cursor) (ast.Expr, cursor, error) {
	open, next, err := p.expect(c, token.STARTARRAY, `"["`)
	if err != nil {
		return nil, c, err
	}
	arr := &ast.Array{Line: open.Line}
	next, err = p.list(next, token.ENDARRAY, `"]"`, func(c cursor) (cursor, error) {
		item, next, err := p.valueOrLogical(c)
		if err != nil {
			return c, err
		}
		arr.Items = append(arr.Items, item)
		return next, nil
	})
	if err != nil {
		return nil, c, err
	}
	if arr.Subscript, next, err = p.subscript(next); err != nil {
		return nil, c, err
	}
	p.info.Record(arr, containerType(types.Array, arr.Subscript))
	return arr, next, nil
}

// Dictionary := "{" [ Value ":" Value { "," Value ":" Value } ] "}" [ Subscript ]
func (p *Parser) dictionary(c cursor) (ast.Expr, cursor, error) {
	open, next, err := p.expect(c, token.OPENBRACE, `"{"`)
	if err != nil {
		return nil, c, err
	}
	dict := &ast.Dictionary{Line: open.Line}
	next, err = p.list(next, token.CLOSEBRACE, `"}"`, func(c cursor) (cursor, error) {
		key, next, err := p.value(c)
		if err != nil {
			return c, err
		}
		if _, next, err = p.expect(next, token.KEYVALUESEPARATOR, `":"`); err != nil {
			return c, err
		}
		value, next, err := p.value(p.skipNewlines(next))
		if err != nil {
			return c, err
		}
		dict.Pairs = append(dict.Pairs, ast.Pair{Key: key, Value: value})
		return next, nil
	})
	if err != nil {
		return nil, c, err
	}
	if dict.Subscript, next, err = p.subscript(next); err != nil {
		return nil, c, err
	}
	p.info.Record(dict, containerType(types.Dictionary, dict.Subscript))
	return dict, next, nil
}

func containerType(t types.Type, subscript ast.Expr) types.Type {
	if subscript != nil {
		return types.Unknown
	}
	return t
}

// color parses a #RRGGBB or #RRGGBBAA literal. Any other length is fatal.
func (p *Parser) color(c cursor) (ast.Expr, cursor, error) {
	tok, next, err := p.expect(c, token.COLOR, "color")
	if err != nil {
		return nil, c, err
	}
	rgba, ok := parseColor(tok.Literal)
	if !ok {
		return nil, c, p.syntaxError(tok, "invalid color literal %q", tok.Literal)
	}
	lit := &ast.ColorLit{Line: tok.Line, Value: rgba}
	p.info.Record(lit, types.Color)
	return lit, next, nil
}

func parseColor(text string) (color.RGBA, bool) {
	if len(text) != 7 && len(text) != 9 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(text[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	if len(text) == 7 {
		v = v<<8 | 0xff
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}
