package cmd

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

//go:embed help/exec.md
var execHelp string

type sampleInfo struct {
	index     int
	lang      string
	file      string
	tempPath  string
	startLine int
}

func execCmd(opts *options) *cobra.Command {
	var batch bool

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:     "exec [flags] [filename] [-- command]",
		Aliases: []string{"e"},
		Short:   "Execute shell commands on individual code samples",
		Long:    execHelp,
		Args:    checkargs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			opts.createStatus(cmd.ErrOrStderr())

			var err error

			opts.filter, err = filter(opts.lang, opts.meta)

			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			scr, args := script(cmd, args)
			if len(scr) == 0 {
				return errMissingCommand
			}

			if !cmd.Flag("dir").Changed {
				dir, err := os.MkdirTemp(".", "codetabs-exec-")
				if err != nil {
					return err
				}

				opts.dir = dir

				if !opts.keep {
					defer os.RemoveAll(dir)
				}
			}

			src, err := readSource(cmd, source(args))
			if err != nil {
				return err
			}

			absDir, err := filepath.Abs(opts.dir)
			if err != nil {
				return err
			}

			run := &runner{stdin: cmd.InOrStdin(), stdout: cmd.OutOrStdout(), stderr: cmd.ErrOrStderr()}

			if batch {
				return execBatch(src, absDir, opts, scr, run)
			}

			return execPerSample(src, absDir, opts, scr, run)
		},

		DisableAutoGenTag: true,
	}

	dirFlag(cmd, opts)
	langFlag(cmd, opts)

	cmd.Flags().BoolVar(&batch, "batch", false, "run command once for all files instead of once per sample")
	cmd.Flags().BoolVarP(&opts.keep, "keep", "k", false, "don't remove temporary directory")

	return cmd
}

func execPerSample(src []byte, dir string, opts *options, scr string, run *runner) error {
	var failures int

	err := walkSamples(src, opts, func(s *sample) error {
		info := writeSampleToTemp(s, dir, opts.status)
		if info == nil {
			return nil
		}

		opts.status("--- sample %d (%s%s) : L%d ---\n", info.index, info.lang, fileLabel(info.file), info.startLine)

		exitCode, err := run.command(expandCommand(scr, info, dir), dir)
		if err != nil {
			return err
		}

		if exitCode != 0 {
			failures++
		}

		return nil
	})
	if err != nil {
		return err
	}

	if failures > 0 {
		return fmt.Errorf("%d sample(s) failed", failures)
	}

	return nil
}

func execBatch(src []byte, dir string, opts *options, scr string, run *runner) error {
	var paths []string

	err := walkSamples(src, opts, func(s *sample) error {
		if info := writeSampleToTemp(s, dir, opts.status); info != nil {
			paths = append(paths, info.tempPath)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		return nil
	}

	expanded := strings.ReplaceAll(scr, "{}", strings.Join(paths, " "))
	expanded = strings.ReplaceAll(expanded, "{dir}", dir)

	opts.status("--- batch (%d samples) ---\n", len(paths))

	exitCode, err := run.command(expanded, dir)
	if err != nil {
		return err
	}

	if exitCode != 0 {
		return fmt.Errorf("command exited with %d", exitCode)
	}

	return nil
}

func writeSampleToTemp(s *sample, dir string, status statusFunc) *sampleInfo {
	info := &sampleInfo{
		index:     s.index,
		lang:      s.Language,
		file:      s.block.Meta.Get(metaFile),
		startLine: s.line,
	}

	info.tempPath = filepath.Join(dir, tempFilename(info))

	if err := os.MkdirAll(filepath.Dir(info.tempPath), dirMode); err != nil {
		status("warning: failed to create directory for sample %d: %v\n", s.index, err)

		return nil
	}

	if err := os.WriteFile(info.tempPath, []byte(s.Code), fileMode); err != nil {
		status("warning: failed to write sample %d: %v\n", s.index, err)

		return nil
	}

	return info
}

func tempFilename(info *sampleInfo) string {
	if len(info.file) != 0 {
		return fmt.Sprintf("%d_%s", info.index, filepath.Base(filepath.FromSlash(info.file)))
	}

	return fmt.Sprintf("sample_%d%s", info.index, langExtension(info.lang))
}

var extensions = map[string]string{
	"python":     ".py",
	"javascript": ".js",
	"typescript": ".ts",
	"golang":     ".go",
	"bash":       ".sh",
	"shell":      ".sh",
	"csharp":     ".cs",
	"rust":       ".rs",
	"ruby":       ".rb",
	"kotlin":     ".kt",
}

func langExtension(lang string) string {
	if len(lang) == 0 {
		return ".txt"
	}

	lang = strings.ToLower(lang)
	if ext, ok := extensions[lang]; ok {
		return ext
	}

	return "." + lang
}

func expandCommand(scr string, info *sampleInfo, dir string) string {
	expanded := strings.ReplaceAll(scr, "{}", info.tempPath)
	expanded = strings.ReplaceAll(expanded, "{lang}", info.lang)
	expanded = strings.ReplaceAll(expanded, "{index}", fmt.Sprint(info.index))
	expanded = strings.ReplaceAll(expanded, "{dir}", dir)

	return expanded
}

type runner struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// command runs a shell command in dir and returns its exit code. A non-nil
// error means the command could not be run at all.
func (r *runner) command(command, dir string) (int, error) {
	file, err := syntax.NewParser().Parse(strings.NewReader(command), "")
	if err != nil {
		return -1, err
	}

	shell, err := interp.New(interp.Dir(dir), interp.StdIO(r.stdin, r.stdout, r.stderr))
	if err != nil {
		return -1, err
	}

	if err := shell.Run(context.TODO(), file); err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return int(status), nil
		}

		return -1, err
	}

	return 0, nil
}

func fileLabel(file string) string {
	if len(file) != 0 {
		return ", file=" + file
	}

	return ""
}

var errMissingCommand = fmt.Errorf("command is required after '--'")
