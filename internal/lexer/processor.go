package lexer

import (
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/pipeline"
	"github.com/quill-lang/quill/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	tokens := New(ctx.Source).Tokenize()

	for _, tok := range tokens {
		if tok.Type == token.ILLEGAL {
			err := diagnostics.NewError(diagnostics.CodeLex, tok, "unexpected character %q", tok.Lexeme)
			err.File = ctx.FilePath
			ctx.Errors = append(ctx.Errors, err)
			return ctx
		}
	}

	ctx.TokenStream = tokens
	return ctx
}
