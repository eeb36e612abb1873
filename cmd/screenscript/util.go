package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var red = color.New(color.FgRed).SprintFunc()

func fatal(w io.Writer, msg interface{}) {
	var s string
	switch msg := msg.(type) {
	case string:
		s = msg
	case error:
		s = msg.Error()
	default:
		s = fmt.Sprintf("%v", msg)
	}
	fmt.Fprintf(w, "%s\n", red(s))
	os.Exit(1)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// source is one script to process.
type source struct {
	name string
	code string
}

// getSources determines which scripts the command works on. There are three
// possibilities, which are mutually exclusive:
// 1. --code <code>
// 2. --stdin
// 3. one or more paths as args
func (a *app) getSources(cmd *cobra.Command, args []string) ([]source, error) {
	codeSet := cmd.Flags().Changed("code")
	stdinSet, _ := cmd.Flags().GetBool("stdin")

	count := 0
	for _, set := range []bool{codeSet, stdinSet, len(args) > 0} {
		if set {
			count++
		}
	}
	switch {
	case count > 1:
		return nil, errors.New("multiple input sources specified")
	case count == 0:
		return nil, errors.New("no input: pass files, --code or --stdin")
	case codeSet:
		code, _ := cmd.Flags().GetString("code")
		return []source{{name: "<code>", code: code}}, nil
	case stdinSet:
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, err
		}
		return []source{{name: "<stdin>", code: string(data)}}, nil
	}
	sources := make([]source, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source{name: path, code: string(data)})
	}
	return sources, nil
}

func (a *app) logger() (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
	}
	out := zerolog.ConsoleWriter{Out: a.stderr, NoColor: color.NoColor}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
