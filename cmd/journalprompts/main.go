// Command journalprompts serves batches of journal-writing prompts over HTTP.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matiasleandrokruk/journalprompts/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// exitError carries a process exit code through cobra's error return.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func run(args []string, out io.Writer) int {
	root := newRootCmd(out)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(os.Stderr, "Error:", ee.err) //nolint:errcheck
		}
		return ee.code
	}
	fmt.Fprintln(os.Stderr, "Error:", err) //nolint:errcheck
	return 1
}

type rootOptions struct {
	logMode string
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "journalprompts",
		Short: "Journal prompt generator microservice",
		Long: `journalprompts asks a generative-language model for three journal-writing
prompts, rejects batches that repeat the previous one, and falls back to a
static batch whenever the model fails.

Run without a subcommand to start the HTTP server.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetVersionTemplate(version.String() + "\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &exitError{code: 2, err: err}
	})
	root.PersistentFlags().StringVar(&opts.logMode, "log-mode", "", "log mode: dev or prod (overrides LOG_MODE)")

	serve := newServeCmd(opts)
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve, newGenerateCmd(opts), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String()) //nolint:errcheck
		},
	}
}
