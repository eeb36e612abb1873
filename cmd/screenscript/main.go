package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// app holds the configuration and streams shared by every command.
type app struct {
	v      *viper.Viper
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newApp() *app {
	v := viper.New()
	v.SetEnvPrefix("SCREENSCRIPT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return &app{v: v, stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "screenscript",
		Short:         "Run and inspect screen scripts",
		Version:       fmt.Sprintf("%s (%s, %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (yaml, json or toml)")
	flags.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	flags.Bool("no-color", false, "disable colored output")
	flags.StringP("output", "o", "text", "output format (text or json)")
	a.v.BindPFlags(flags)

	root.AddCommand(
		a.runCommand(),
		a.checkCommand(),
		a.astCommand(),
		a.tokensCommand(),
	)
	return root
}

func (a *app) initConfig() error {
	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}
	if a.v.GetBool("no-color") || !isTerminal(a.stdout) {
		color.NoColor = true
	}
	switch format := a.v.GetString("output"); format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	return nil
}

// addSourceFlags registers the flags selecting where scripts are read from.
func (a *app) addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("code", "c", "", "script source to use instead of files")
	cmd.Flags().Bool("stdin", false, "read the script from stdin")
}

func main() {
	a := newApp()
	if err := a.rootCommand().Execute(); err != nil {
		// Script errors have already been reported in detail.
		var scriptErrs *multierror.Error
		if errors.As(err, &scriptErrs) {
			os.Exit(1)
		}
		fatal(a.stderr, err)
	}
}
