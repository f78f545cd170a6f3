package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/quill-lang/quill/internal/analyzer"
	"github.com/quill-lang/quill/internal/config"
	"github.com/quill-lang/quill/internal/evaluator"
	"github.com/quill-lang/quill/internal/lexer"
	"github.com/quill-lang/quill/internal/parser"
	"github.com/quill-lang/quill/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:          "run ./folder|file.ql",
	Short:        "Type check and run a quill program",
	RunE:         runRun,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
}

func runRun(cmd *cobra.Command, args []string) error {
	return runPipeline(args[0], false)
}

func runPipeline(target string, checkOnly bool) error {
	path, project, err := resolveTarget(target)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	source := string(data)

	ctx := &pipeline.PipelineContext{
		FilePath:  path,
		Source:    source,
		CheckOnly: checkOnly || project.Check,
	}
	ctx = pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
		&evaluator.EvaluatorProcessor{},
	).Run(ctx)

	if ctx.HasErrors() {
		color := useColor(project.Color)
		for _, diag := range ctx.Errors {
			msg := diag.Format(source)
			if color {
				msg = strings.Replace(msg, "error:", "\x1b[31merror:\x1b[0m", 1)
			}
			fmt.Fprintln(os.Stderr, msg)
		}
		return fmt.Errorf("%d error(s)", len(ctx.Errors))
	}

	if !ctx.CheckOnly && ctx.Result != "" {
		fmt.Println(ctx.Result)
	}
	return nil
}

// resolveTarget maps the CLI argument to a source file and the project
// configuration in effect for it. A directory argument needs a quill.yaml
// with an entry; a file argument picks up quill.yaml from its directory
// when present.
func resolveTarget(target string) (string, *config.Project, error) {
	info, err := os.Stat(target)
	if err != nil {
		return "", nil, err
	}

	if info.IsDir() {
		project, err := config.LoadProject(target)
		if err != nil {
			return "", nil, err
		}
		if project.Entry == "" {
			return "", nil, fmt.Errorf("%s: no entry in %s", target, config.ProjectFileName)
		}
		return filepath.Join(target, project.Entry), project, nil
	}

	if !isSourceFile(target) {
		return "", nil, fmt.Errorf("%s is not a quill source file", target)
	}
	project, err := config.LoadProject(filepath.Dir(target))
	if err != nil {
		return "", nil, err
	}
	return target, project, nil
}

func isSourceFile(path string) bool {
	ext := filepath.Ext(path)
	for _, known := range config.SourceFileExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		fd := os.Stderr.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
}
