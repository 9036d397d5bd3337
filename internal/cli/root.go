// Package cli wires the invoicer commands to the use cases and adapters.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/invoicer/internal/domain"
	"github.com/aalvaropc/invoicer/internal/ui/tui"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// globalFlags are shared by every command.
type globalFlags struct {
	workspace string
	debug     bool
}

func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and maps the outcome to an exit status:
// usage errors exit 2, every other failure exits 1.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	executed, err := cmd.ExecuteC()
	if err == nil {
		return exitOK
	}

	theme := tui.DefaultTheme()
	fmt.Fprintln(stderr, theme.Error.Render("Error:")+" "+err.Error())

	if domain.IsKind(err, domain.KindUsage) || isFlagError(err) {
		fmt.Fprintln(stderr)
		if executed == nil {
			executed = cmd
		}
		fmt.Fprint(stderr, executed.UsageString())
		return exitUsage
	}

	if hint := tui.UserMessage(err); hint != "" && hint != "Unexpected error (see logs)" {
		fmt.Fprintln(stderr, theme.Help.Render(hint))
	}
	return exitError
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "invoicer <year> <month> <clientKey> [seq] [customHours] [items]",
		Short: "Generate a monthly invoice PDF from a timesheet and a config file",
		Long: `Generate a monthly invoice for a client.

  year         e.g. 2024
  month        1-12
  clientKey    key of the client in the config file
  seq          invoice sequence number (default 1; "" keeps the default)
  customHours  per-day hour overrides, e.g. 2024-01-15:4,2024-01-16:0
  items        explicit line items, e.g. Consulting:10,Support:5`,
		Example:       "  invoicer 2024 3 acme\n  invoicer 2024 3 acme 2 \"2024-03-15:4\" \"Design:10,Build:20\"",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, args []string) error {
			return runGenerate(c, g, args)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &flagError{err: err}
	})

	pf := cmd.PersistentFlags()
	pf.StringVarP(&g.workspace, "workspace", "w", "", "Workspace root (optional; autodetected from invoicer.yaml)")
	pf.BoolVar(&g.debug, "debug", false, "Enable verbose logging to .invoicer/logs/invoicer.log")
	pf.String("config", "", "Data config file with clients and company (default config.yaml)")
	pf.StringP("output", "o", "", "Output directory (default dist)")
	pf.String("renderer", "", "PDF backend: chrome|native (default chrome)")
	pf.String("template-dir", "", "Directory with invoice.html and style.css (default built-in)")
	pf.String("chrome-path", "", "Chrome/Chromium executable for the chrome renderer")
	pf.Bool("publish", false, "Upload the artifacts to the configured S3 bucket")

	cmd.AddCommand(initCmd(g))
	cmd.AddCommand(timesheetCmd(g))
	cmd.AddCommand(clientsCmd(g))
	cmd.AddCommand(validateCmd(g))
	cmd.AddCommand(versionCmd())

	return cmd
}

// usageArgs is cobra.RangeArgs reporting a usage error.
func usageArgs(min, max int) cobra.PositionalArgs {
	return func(c *cobra.Command, args []string) error {
		if len(args) < min || len(args) > max {
			return &domain.OpError{
				Op:   c.Name() + ".args",
				Kind: domain.KindUsage,
				Err:  fmt.Errorf("%w: accepts between %d and %d arg(s), received %d", domain.ErrMissingArgs, min, max, len(args)),
			}
		}
		return nil
	}
}

type flagError struct{ err error }

func (e *flagError) Error() string { return e.err.Error() }
func (e *flagError) Unwrap() error { return e.err }

func isFlagError(err error) bool {
	var fe *flagError
	return errors.As(err, &fe)
}
