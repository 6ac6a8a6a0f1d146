// Package cmd implements the codetabs command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
	metaFile = "file"
)

type statusFunc func(format string, args ...interface{})

type options struct {
	config string
	quiet  bool
	lang   []string
	meta   map[string]string
	filter filterFunc
	dir    string
	keep   bool
	status statusFunc
}

func (o *options) createStatus(w io.Writer) {
	if o.quiet {
		o.status = func(string, ...interface{}) {}

		return
	}

	o.status = func(format string, args ...interface{}) {
		fmt.Fprintf(w, format, args...)
	}
}

func rootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:   "codetabs",
		Short: "Multi-language code tabs for Markdown articles",
		Long: "codetabs rewrites multi-language code regions of Markdown articles into tabbed\n" +
			"code blocks, renders them, and serves a local preview of the site.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	cmd.PersistentFlags().StringVar(&opts.config, "config", "", "config file (default ./codetabs.yaml)")
	cmd.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress status messages")

	cmd.AddCommand(
		preprocessCmd(opts),
		renderCmd(opts),
		tabsCmd(opts),
		execCmd(opts),
		serveCmd(opts),
	)

	return cmd
}

// Run executes the command line and returns its error.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts := &options{status: func(string, ...interface{}) {}}

	root := rootCmd(opts)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	return root.Execute()
}

// Execute runs the command line and exits non-zero on failure.
func Execute(args []string, stdout, stderr io.Writer) {
	if err := Run(args, os.Stdin, stdout, stderr); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		os.Exit(1)
	}
}

func checkargs(cmd *cobra.Command, args []string) error {
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		args = args[:dash]
	}

	if len(args) > 1 {
		return errTooManyArgs
	}

	return nil
}

// source returns the input file name, or "-" for stdin.
func source(args []string) string {
	if len(args) == 0 {
		return "-"
	}

	return args[0]
}

// script returns the command after "--" and the arguments before it.
func script(cmd *cobra.Command, args []string) (string, []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return "", args
	}

	return strings.Join(args[dash:], " "), args[:dash]
}

func readSource(cmd *cobra.Command, filename string) ([]byte, error) {
	if filename == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}

	return os.ReadFile(filename)
}

func dirFlag(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVarP(&opts.dir, "dir", "d", ".", "working directory for code sample files")
}

func langFlag(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringSliceVarP(&opts.lang, "lang", "l", []string{"*"}, "language glob filter, may be repeated")
	cmd.Flags().StringToStringVarP(&opts.meta, "meta", "m", nil, "metadata glob filter as key=pattern")
}

var errTooManyArgs = errors.New("at most one input file is accepted")
