package main

import (
	"strconv"

	"github.com/deepnoodle-ai/screenscript/errz"
	"github.com/deepnoodle-ai/screenscript/internal/lexer"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func (a *app) tokensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Display the token stream of a script",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.tokensHandler,
	}
	a.addSourceFlags(cmd)
	return cmd
}

type tokenJSON struct {
	Type    string `json:"type"`
	Literal string `json:"literal"`
	Line    int    `json:"line"`
}

func (a *app) tokensHandler(cmd *cobra.Command, args []string) error {
	sources, err := a.getSources(cmd, args)
	if err != nil {
		return err
	}
	reporter := errz.NewReporter(nil)
	tokens := lexer.Tokenize(sources[0].code, reporter)

	if a.v.GetString("output") == "json" {
		out := make([]tokenJSON, 0, len(tokens))
		for _, tok := range tokens {
			out = append(out, tokenJSON{Type: string(tok.Type), Literal: tok.Literal, Line: tok.LineNumber()})
		}
		if err := writeJSON(a.stdout, out); err != nil {
			return err
		}
	} else {
		table := tablewriter.NewWriter(a.stdout)
		table.SetBorder(false)
		table.SetAutoWrapText(false)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.SetCenterSeparator("")
		table.SetColumnSeparator("")
		table.SetRowSeparator("")
		table.SetTablePadding("  ")
		table.SetNoWhiteSpace(true)
		for _, tok := range tokens {
			table.Append([]string{strconv.Itoa(tok.LineNumber()), string(tok.Type), tok.String()})
		}
		table.Render()
	}
	if err := reporter.Err(); err != nil {
		return err
	}
	return nil
}
