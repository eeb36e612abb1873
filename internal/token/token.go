// Package token defines language keywords and tokens used when lexing source code.
package token

import "fmt"

// Type describes the type of a token as a string.
type Type string

// Token represents one token lexed from the input source code.
type Token struct {
	Type    Type
	Literal string
	Line    int // 0-indexed line number
}

// LineNumber returns the 1-indexed line number of the token.
func (t Token) LineNumber() int {
	return t.Line + 1
}

func (t Token) String() string {
	switch t.Type {
	case NEWLINE:
		return "newline"
	case EOF:
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Literal)
}

// Token types
const (
	// Literals
	INTEGER Type = "INTEGER"
	FLOAT   Type = "FLOAT"
	STRING  Type = "STRING"
	TRUE    Type = "TRUE"
	FALSE   Type = "FALSE"
	COLOR   Type = "COLOR"

	// Identifiers and keywords
	IDENTIFIER Type = "IDENTIFIER"
	METHODNAME Type = "METHODNAME"
	FOR        Type = "FOR"
	IN         Type = "IN"
	WHILE      Type = "WHILE"
	IF         Type = "IF"
	AND        Type = "AND"
	OR         Type = "OR"
	NOT        Type = "NOT"
	CAST       Type = "CAST"
	RETURN     Type = "RETURN"

	// Built-in type names
	INTEGERTYPE    Type = "INTEGERTYPE"
	FLOATTYPE      Type = "FLOATTYPE"
	STRINGTYPE     Type = "STRINGTYPE"
	BOOLEANTYPE    Type = "BOOLEANTYPE"
	ARRAYTYPE      Type = "ARRAYTYPE"
	DICTIONARYTYPE Type = "DICTIONARYTYPE"

	// Operators
	PLUS               Type = "+"
	MINUS              Type = "-"
	MULTIPLY           Type = "*"
	DIVIDE             Type = "/"
	MOD                Type = "%"
	EQUALS             Type = "=="
	DOESNOTEQUAL       Type = "!="
	LESSTHAN           Type = "<"
	LESSTHANOREQUAL    Type = "<="
	GREATERTHAN        Type = ">"
	GREATERTHANOREQUAL Type = ">="
	ASSIGNMENT         Type = "="

	// Punctuation
	OPENBRACE         Type = "{"
	CLOSEBRACE        Type = "}"
	OPENARGUMENTS     Type = "("
	CLOSEARGUMENTS    Type = ")"
	STARTARRAY        Type = "["
	ENDARRAY          Type = "]"
	ARGUMENTSEPARATOR Type = ","
	KEYVALUESEPARATOR Type = ":"
	NEWLINE           Type = "EOL"

	EOF   Type = "EOF"
	ERROR Type = "ERROR"
)

// Reserved keywords
var keywords = map[string]Type{
	"and":    AND,
	"as":     CAST,
	"false":  FALSE,
	"for":    FOR,
	"if":     IF,
	"in":     IN,
	"not":    NOT,
	"or":     OR,
	"return": RETURN,
	"true":   TRUE,
	"while":  WHILE,

	"Array":      ARRAYTYPE,
	"Boolean":    BOOLEANTYPE,
	"Dictionary": DICTIONARYTYPE,
	"Float":      FLOATTYPE,
	"Integer":    INTEGERTYPE,
	"String":     STRINGTYPE,
}

// typeNames are the token types that name a castable built-in type.
var typeNames = map[Type]bool{
	INTEGERTYPE:    true,
	FLOATTYPE:      true,
	STRINGTYPE:     true,
	BOOLEANTYPE:    true,
	ARRAYTYPE:      true,
	DICTIONARYTYPE: true,
}

// punctuation maps the characters that force a token boundary to the single
// character token they produce.
var punctuation = map[rune]Type{
	'(': OPENARGUMENTS,
	')': CLOSEARGUMENTS,
	'[': STARTARRAY,
	']': ENDARRAY,
	',': ARGUMENTSEPARATOR,
	':': KEYVALUESEPARATOR,
	'{': OPENBRACE,
	'}': CLOSEBRACE,
}

// LookupIdentifier returns the keyword type for the given identifier text, or
// IDENTIFIER when it is not a keyword.
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[identifier]; ok {
		return tok
	}
	return IDENTIFIER
}

// LookupPunctuation returns the token type for a boundary-forcing character.
func LookupPunctuation(ch rune) (Type, bool) {
	t, ok := punctuation[ch]
	return t, ok
}

// IsTypeName returns true if the token type names one of the built-in types.
func IsTypeName(t Type) bool {
	return typeNames[t]
}

// IsComparison returns true for the operators allowed in a logical expression.
func IsComparison(t Type) bool {
	switch t {
	case EQUALS, DOESNOTEQUAL, LESSTHAN, LESSTHANOREQUAL,
		GREATERTHAN, GREATERTHANOREQUAL, AND, OR:
		return true
	}
	return false
}

// IsArithmetic returns true for the operators allowed in a math expression.
func IsArithmetic(t Type) bool {
	switch t {
	case PLUS, MINUS, MULTIPLY, DIVIDE, MOD:
		return true
	}
	return false
}
