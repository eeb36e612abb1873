package errz

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Formatter renders an Error with the source line it points at.
type Formatter struct {
	useColor bool

	kind     *color.Color
	location *color.Color
	gutter   *color.Color
	hint     *color.Color
}

// NewFormatter returns a Formatter. Colors are only emitted if useColor is
// true, regardless of the global color setting.
func NewFormatter(useColor bool) *Formatter {
	f := &Formatter{
		useColor: useColor,
		kind:     color.New(color.FgHiRed, color.Bold),
		location: color.New(color.FgCyan),
		gutter:   color.New(color.FgHiBlack),
		hint:     color.New(color.FgHiYellow),
	}
	for _, c := range []*color.Color{f.kind, f.location, f.gutter, f.hint} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return f
}

// Report is an Error ready for display.
type Report struct {
	Err      *Error
	Filename string
	Source   string
	Hint     string
}

// Format renders the report:
//
//	semantic error: unknown method "prnt"
//	 --> app.ss:2
//	  |
//	2 | prnt(total)
//	  |
//	  = hint: did you mean "print"?
func (f *Formatter) Format(r Report) string {
	var b strings.Builder
	b.WriteString(f.kind.Sprint(r.Err.Kind.String()))
	b.WriteString(": ")
	b.WriteString(r.Err.Message)
	b.WriteString("\n")

	number := r.Err.LineNumber()
	text, ok := sourceLine(r.Source, r.Err.Line)
	width := len(fmt.Sprint(number))
	pad := strings.Repeat(" ", width)

	if r.Filename != "" || number > 0 {
		loc := r.Filename
		if number > 0 {
			if loc != "" {
				loc += ":"
			}
			loc += fmt.Sprint(number)
		}
		fmt.Fprintf(&b, "%s%s %s\n", pad, f.location.Sprint("-->"), f.location.Sprint(loc))
	}
	if ok {
		fmt.Fprintf(&b, "%s%s\n", pad, f.gutter.Sprint(" |"))
		fmt.Fprintf(&b, "%s%s%s\n", f.gutter.Sprint(number), f.gutter.Sprint(" | "), text)
	}
	if r.Hint != "" {
		fmt.Fprintf(&b, "%s%s\n", pad, f.gutter.Sprint(" |"))
		fmt.Fprintf(&b, "%s%s%s%s\n", pad, f.gutter.Sprint(" = "), f.hint.Sprint("hint: "), r.Hint)
	}
	return b.String()
}

func sourceLine(source string, line int) (string, bool) {
	if line < 0 || source == "" {
		return "", false
	}
	lines := strings.Split(source, "\n")
	if line >= len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[line], "\r"), true
}
