package main

import (
	"context"
	"fmt"

	"github.com/deepnoodle-ai/screenscript"
	"github.com/deepnoodle-ai/screenscript/errz"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

func (a *app) checkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Report the first error in each script without running it",
		RunE:  a.checkHandler,
	}
	a.addSourceFlags(cmd)
	return cmd
}

// checkReport is the JSON output of one checked script.
type checkReport struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Kind  string `json:"kind,omitempty"`
	Line  int    `json:"line,omitempty"`
	Error string `json:"error,omitempty"`
}

func (a *app) checkHandler(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	sources, err := a.getSources(cmd, args)
	if err != nil {
		return err
	}
	var result *multierror.Error
	var reports []checkReport
	errs := make([]error, len(sources))
	for i, src := range sources {
		report := checkReport{Name: src.name, OK: true}
		if err := screenscript.Check(ctx, src.code); err != nil {
			errs[i] = err
			result = multierror.Append(result, fmt.Errorf("%s: %w", src.name, err))
			report.OK = false
			report.Error = err.Error()
			if e, ok := errz.As(err); ok {
				report.Kind = e.Kind.String()
				report.Line = e.LineNumber()
			}
		}
		reports = append(reports, report)
	}
	if a.v.GetString("output") == "json" {
		if err := writeJSON(a.stdout, reports); err != nil {
			return err
		}
	} else {
		for i, r := range reports {
			if r.OK {
				fmt.Fprintf(a.stdout, "%s: ok\n", r.Name)
			} else {
				fmt.Fprint(a.stderr, describeError(sources[i], errs[i]))
			}
		}
	}
	return result.ErrorOrNil()
}
