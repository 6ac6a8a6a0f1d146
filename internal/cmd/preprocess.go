package cmd

import (
	"io"
	"os"

	"github.com/ezerfernandes/codetabs/internal/multilang"
	"github.com/spf13/cobra"
)

func preprocessCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "preprocess [flags] [filename]",
		Aliases: []string{"p"},
		Short:   "Rewrite multi-language regions into multilang code blocks",
		Long: "Rewrite every <!-- MULTILANG_START --> ... <!-- MULTILANG_END --> region of a\n" +
			"Markdown document into a single ```multilang fenced block carrying its code\n" +
			"samples as JSON. Everything else is copied unchanged.",
		Args:    cobra.MaximumNArgs(1),
		PreRun:  func(cmd *cobra.Command, _ []string) { opts.createStatus(cmd.ErrOrStderr()) },
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, source(args))
			if err != nil {
				return err
			}

			content := string(src)
			out := multilang.Preprocess(content)

			opts.status("%d region(s) rewritten\n", len(multilang.Extract(content)))

			if len(output) == 0 || output == "-" {
				_, err = io.WriteString(cmd.OutOrStdout(), out)

				return err
			}

			return os.WriteFile(output, []byte(out), fileMode)
		},

		DisableAutoGenTag: true,
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}
