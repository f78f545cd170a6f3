package evaluator

import (
	"io"

	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/pipeline"
	"github.com/quill-lang/quill/internal/token"
)

// EvaluatorProcessor runs the program after a clean analysis pass.
type EvaluatorProcessor struct {
	// Out receives program output; defaults to os.Stdout.
	Out io.Writer
	// In supplies the stdin resource; defaults to os.Stdin.
	In io.Reader
}

func (ep *EvaluatorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil || ctx.HasErrors() || ctx.CheckOnly {
		return ctx
	}
	program, ok := ctx.AstRoot.(*ast.Program)
	if !ok {
		return ctx
	}

	eval := New()
	if ep.Out != nil {
		eval.Out = ep.Out
	}
	if ep.In != nil {
		eval.In = ep.In
	}

	result := eval.Run(program)
	if err, ok := result.(*Error); ok {
		diag := diagnostics.NewError(diagnostics.CodeRuntime,
			token.Token{Line: err.Line, Column: err.Column}, "%s", err.Message)
		diag.File = ctx.FilePath
		ctx.Errors = append(ctx.Errors, diag)
		return ctx
	}
	ctx.Result = result.Inspect()
	return ctx
}
