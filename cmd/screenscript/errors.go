package main

import (
	"errors"

	"github.com/deepnoodle-ai/screenscript/builtins"
	"github.com/deepnoodle-ai/screenscript/checker"
	"github.com/deepnoodle-ai/screenscript/errz"
	"github.com/deepnoodle-ai/screenscript/internal/lexer"
	"github.com/deepnoodle-ai/screenscript/internal/token"
	"github.com/fatih/color"
)

// describeError renders a script error with its source line and, where one
// can be found, a suggestion.
func describeError(src source, err error) string {
	e, ok := errz.As(err)
	if !ok {
		return src.name + ": " + err.Error() + "\n"
	}
	return errz.NewFormatter(!color.NoColor).Format(errz.Report{
		Err:      e,
		Filename: src.name,
		Source:   src.code,
		Hint:     hintFor(e, src.code),
	})
}

func hintFor(e *errz.Error, code string) string {
	var unknown *checker.UnknownMethodError
	if errors.As(e, &unknown) {
		return errz.DidYouMean(errz.Suggest(unknown.Name, builtins.Names()))
	}
	var undeclared *checker.NotDeclaredError
	if errors.As(e, &undeclared) {
		var names []string
		for _, tok := range lexer.Tokenize(code, nil) {
			if tok.Type == token.IDENTIFIER {
				names = append(names, tok.Literal)
			}
		}
		return errz.DidYouMean(errz.Suggest(undeclared.Name, names))
	}
	return ""
}
