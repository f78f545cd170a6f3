package pipeline

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/token"
)

// PipelineContext carries the artifacts of each stage through the pipeline.
type PipelineContext struct {
	FilePath string
	Source   string

	TokenStream []token.Token
	AstRoot     ast.Node

	// CheckOnly stops the pipeline after semantic analysis.
	CheckOnly bool

	// Result is the inspectable value of the final evaluated declaration,
	// set by the evaluator stage.
	Result string

	Errors []*diagnostics.DiagnosticError
}

// HasErrors reports whether any stage failed so far.
func (ctx *PipelineContext) HasErrors() bool { return len(ctx.Errors) > 0 }

// Processor is a single pipeline stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}
