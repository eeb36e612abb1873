package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/deepnoodle-ai/screenscript"
	"github.com/deepnoodle-ai/screenscript/host"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

func (a *app) runCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [files...]",
		Short: "Run one or more scripts in order",
		Long: "Run one or more scripts in order. Scripts share the app variable store, " +
			"so a variable set by one script can be read by the next.",
		RunE: a.runHandler,
	}
	a.addSourceFlags(cmd)
	cmd.Flags().String("store", "memory", "variable store backend (memory or postgres)")
	cmd.Flags().String("postgres-dsn", "", "Postgres connection string for --store postgres")
	cmd.Flags().String("screen", "main", "name of the screen the scripts run on")
	cmd.Flags().Bool("vars", false, "print the variables in memory after each script")
	cmd.Flags().Int("fetch-cache", 0, "number of fetched documents to share between scripts (0 disables)")
	a.v.BindPFlag("store", cmd.Flags().Lookup("store"))
	a.v.BindPFlag("postgres-dsn", cmd.Flags().Lookup("postgres-dsn"))
	a.v.BindPFlag("screen", cmd.Flags().Lookup("screen"))
	a.v.BindPFlag("fetch-cache", cmd.Flags().Lookup("fetch-cache"))
	return cmd
}

// openStore returns the configured variable store and a function that
// releases it.
func (a *app) openStore(ctx context.Context) (host.Store, func(), error) {
	switch backend := a.v.GetString("store"); backend {
	case "memory":
		return host.NewMemoryStore(), func() {}, nil
	case "postgres":
		dsn := a.v.GetString("postgres-dsn")
		if dsn == "" {
			return nil, nil, errors.New("--postgres-dsn is required with --store postgres")
		}
		store, err := host.NewPostgresStore(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store: %s", backend)
	}
}

// fetcher returns the fetcher shared by every script of a run, or nil to
// let each script use its own.
func (a *app) fetcher() (host.Fetcher, error) {
	size := a.v.GetInt("fetch-cache")
	if size <= 0 {
		return nil, nil
	}
	return host.NewCachingFetcher(host.NewSourceFetcher(), size)
}

// runReport is the JSON output of one script.
type runReport struct {
	Name   string                     `json:"name"`
	RunID  string                     `json:"run_id"`
	Output string                     `json:"output"`
	Value  json.RawMessage            `json:"value"`
	Vars   map[string]json.RawMessage `json:"vars"`
	Error  string                     `json:"error,omitempty"`
}

func (a *app) runHandler(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	sources, err := a.getSources(cmd, args)
	if err != nil {
		return err
	}
	logger, err := a.logger()
	if err != nil {
		return err
	}
	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer closeStore()
	fetcher, err := a.fetcher()
	if err != nil {
		return err
	}

	jsonOutput := a.v.GetString("output") == "json"
	showVars, _ := cmd.Flags().GetBool("vars")

	var result *multierror.Error
	var reports []runReport
	for _, src := range sources {
		opts := []screenscript.Option{
			screenscript.WithLogger(logger.With().Str("script", src.name).Logger()),
			screenscript.WithStore(store),
			screenscript.WithScreen(a.v.GetString("screen")),
		}
		if fetcher != nil {
			opts = append(opts, screenscript.WithFetcher(fetcher))
		}
		if !jsonOutput {
			opts = append(opts, screenscript.WithOutput(a.stdout))
		}
		sc := screenscript.NewContext(opts...)
		res, err := sc.Run(ctx, src.code)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", src.name, err))
			if !jsonOutput {
				fmt.Fprint(a.stderr, describeError(src, err))
			}
		}
		if res == nil {
			continue
		}
		if jsonOutput {
			report, err := newRunReport(src.name, sc, res)
			if err != nil {
				return err
			}
			reports = append(reports, report)
			continue
		}
		if res.Value != nil {
			fmt.Fprintln(a.stdout, res.Value.Inspect())
		}
		if showVars {
			if err := writeVars(a.stdout, res.Vars); err != nil {
				return err
			}
		}
	}
	if jsonOutput {
		if err := writeJSON(a.stdout, reports); err != nil {
			return err
		}
	}
	return result.ErrorOrNil()
}

func newRunReport(name string, sc *screenscript.Context, res *screenscript.Result) (runReport, error) {
	value, err := objectJSON(res.Value)
	if err != nil {
		return runReport{}, err
	}
	vars, err := varsJSON(res.Vars)
	if err != nil {
		return runReport{}, err
	}
	report := runReport{
		Name:   name,
		RunID:  sc.ID.String(),
		Output: res.Output,
		Value:  value,
		Vars:   vars,
	}
	if res.Err != nil {
		report.Error = res.Err.Error()
	}
	return report, nil
}
