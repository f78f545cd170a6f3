package analyzer

import (
	"fmt"

	"github.com/quill-lang/quill/internal/token"
	"github.com/quill-lang/quill/internal/typesystem"
)

// Constraint is a deferred equality obligation between two types. The token
// records the source position that produced it and is used only for
// diagnostics; it has no effect on solving order.
type Constraint struct {
	Left  typesystem.Type
	Right typesystem.Type
	Token token.Token
}

func (c Constraint) String() string {
	return fmt.Sprintf("%s = %s", c.Left, c.Right)
}

// InferenceContext holds the state of a single inference run: the fresh
// variable counter, the constructor registry, and the accumulating list of
// deferred constraints. A run is single-threaded and failable; the first
// error aborts it.
type InferenceContext struct {
	counter     int
	sig         *Registry
	constraints []Constraint
}

func NewInferenceContext(sig *Registry) *InferenceContext {
	return &InferenceContext{sig: sig}
}

// FreshVar mints a new type variable carrying the given constraint set.
// Names are derived from the monotonic counter; the lexer never produces
// `$`, so they cannot collide with user identifiers.
func (ctx *InferenceContext) FreshVar(classes typesystem.ClassSet) typesystem.TVar {
	ctx.counter++
	return typesystem.TVar{Name: fmt.Sprintf("$t%d", ctx.counter), Classes: classes}
}

// Defer queues an equality constraint for the end-of-run solver instead of
// unifying eagerly. Generators never read the queue.
func (ctx *InferenceContext) Defer(left, right typesystem.Type, tok token.Token) {
	ctx.constraints = append(ctx.constraints, Constraint{Left: left, Right: right, Token: tok})
}
