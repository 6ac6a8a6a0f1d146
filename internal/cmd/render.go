package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/ezerfernandes/codetabs/internal/config"
	"github.com/ezerfernandes/codetabs/internal/logging"
	"github.com/ezerfernandes/codetabs/internal/multilang"
	"github.com/ezerfernandes/codetabs/internal/render"
	"github.com/spf13/cobra"
)

const (
	formatHTML = "html"
	formatTerm = "term"
)

var errUnknownFormat = errors.New("unknown output format")

func renderCmd(opts *options) *cobra.Command {
	var (
		format string
		style  string
		width  int
	)

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "render [flags] [filename]",
		Aliases: []string{"r"},
		Short:   "Render a Markdown article with tabbed code samples",
		Long: "Preprocess a Markdown article and render it, either as an HTML fragment with\n" +
			"tabbed, highlighted code samples or for the terminal, where every language\n" +
			"of a tab group is printed under its own heading.\n\n" +
			"Style and width default to the render section of the config file.",
		Args:   cobra.MaximumNArgs(1),
		PreRun: func(cmd *cobra.Command, _ []string) { opts.createStatus(cmd.ErrOrStderr()) },
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.config)
			if err != nil {
				return err
			}

			if !cmd.Flag("width").Changed {
				width = cfg.Render.Width
			}

			if !cmd.Flag("style").Changed {
				style = cfg.Render.Style
				if format == formatTerm {
					style = cfg.Render.TermStyle
				}
			}

			src, err := readSource(cmd, source(args))
			if err != nil {
				return err
			}

			content := multilang.Preprocess(string(src))

			var out string

			switch format {
			case formatHTML:
				logger, err := logging.New(cfg.Logging.Level)
				if err != nil {
					return err
				}
				defer logger.Sync() //nolint:errcheck

				out, err = render.NewHTML(logger, render.WithStyle(style)).Article(content)
				if err != nil {
					return err
				}
			case formatTerm:
				term, err := render.NewTerminal(width, style)
				if err != nil {
					return err
				}

				out, err = term.Render([]byte(content))
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("%w: %q", errUnknownFormat, format)
			}

			_, err = io.WriteString(cmd.OutOrStdout(), out)

			return err
		},

		DisableAutoGenTag: true,
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatHTML, "output format: html or term")
	cmd.Flags().StringVar(&style, "style", "", "highlight style (html) or glamour style (term), overrides config")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "word wrap width for term output, overrides config")

	return cmd
}
