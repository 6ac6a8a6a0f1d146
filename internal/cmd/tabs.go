package cmd

import (
	"fmt"

	"github.com/ezerfernandes/codetabs/internal/multilang"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"
)

const (
	kindTab   = "tab"
	kindBlock = "block"
)

func tabsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "tabs [flags] [filename]",
		Aliases: []string{"t", "ls"},
		Short:   "List the code samples of a Markdown article",
		Long: "List every code sample of a Markdown article after preprocessing. Each\n" +
			"language of a multi-language region is listed as its own tab.",
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			opts.createStatus(cmd.ErrOrStderr())

			var err error

			opts.filter, err = filter(opts.lang, opts.meta)

			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(cmd, source(args))
			if err != nil {
				return err
			}

			tbl := table.New("#", "Line", "Kind", "Lang", "Label").WithWriter(cmd.OutOrStdout())

			var rows int

			err = walkSamples(src, opts, func(s *sample) error {
				kind := kindBlock
				if s.block.IsMultilang() {
					kind = kindTab
				}

				tbl.AddRow(s.index, s.line, kind, s.Language, multilang.DisplayName(s.Language))
				rows++

				return nil
			})
			if err != nil {
				return err
			}

			if rows == 0 {
				opts.status("no code samples found\n")

				return nil
			}

			tbl.Print()
			opts.status("%s\n", plural(rows, "sample"))

			return nil
		},

		DisableAutoGenTag: true,
	}

	langFlag(cmd, opts)

	return cmd
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}

	return fmt.Sprintf("%d %ss", n, noun)
}
