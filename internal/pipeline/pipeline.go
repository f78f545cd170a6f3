package pipeline

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages after the first failure are skipped:
// type inference is all-or-nothing, and the evaluator's contract assumes a
// program the analyzer accepted.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		if ctx.HasErrors() {
			break
		}
		ctx = processor.Process(ctx)
	}
	return ctx
}
