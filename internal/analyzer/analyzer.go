package analyzer

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/typesystem"
)

// Analyzer runs type inference over a whole program: it bootstraps the
// constructor registry from the type declarations, generates constraints
// for every top-level binding, and solves them in one batch at the end.
// Inference is all-or-nothing; the first error aborts the run.
type Analyzer struct {
	registry *Registry
	ctx      *InferenceContext
}

func New() *Analyzer {
	registry := NewRegistry()
	return &Analyzer{
		registry: registry,
		ctx:      NewInferenceContext(registry),
	}
}

// Analyze checks the program and returns the first diagnostic, or nil on
// success. Success is the only externally visible result; inferred types
// are never handed to the evaluator.
func (a *Analyzer) Analyze(program *ast.Program) *diagnostics.DiagnosticError {
	if err := a.declareTypes(program); err != nil {
		err.File = program.File
		return err
	}

	env, err := a.declareVariables(program)
	if err != nil {
		err.File = program.File
		return err
	}

	if err := a.inferDeclarations(env, program); err != nil {
		err.File = program.File
		return err
	}

	if _, err := a.ctx.Solve(); err != nil {
		err.File = program.File
		return err
	}
	return nil
}

// declareTypes is the two-phase registry bootstrap: all type names and
// parameter lists first, then every constructor, so mutually recursive
// declarations resolve by name and arity.
func (a *Analyzer) declareTypes(program *ast.Program) *diagnostics.DiagnosticError {
	for _, decl := range program.Declarations {
		td, ok := decl.(*ast.TypeDeclaration)
		if !ok {
			continue
		}
		if err := a.registry.DeclareType(td); err != nil {
			return err
		}
	}
	for _, decl := range program.Declarations {
		td, ok := decl.(*ast.TypeDeclaration)
		if !ok {
			continue
		}
		if err := a.registry.DeclareConstructors(td); err != nil {
			return err
		}
	}
	return nil
}

// declareVariables pre-binds every top-level variable as a Lazy scheme over
// the builtin environment, so forward and mutual references resolve. A name
// declared twice at the top level is a redefinition error.
func (a *Analyzer) declareVariables(program *ast.Program) (*TypeEnv, *diagnostics.DiagnosticError) {
	env := NewTopLevelEnv()
	seen := map[string]bool{}
	for _, decl := range program.Declarations {
		vd, ok := decl.(*ast.VarDeclaration)
		if !ok {
			continue
		}
		if seen[vd.Name] {
			return nil, diagnostics.NewError(diagnostics.CodeVariableRedefined, vd.Token,
				"variable %s redefined", vd.Name)
		}
		seen[vd.Name] = true
		env = env.Extend(vd.Name, &Lazy{Expr: vd.Value})
	}
	return env, nil
}

// inferDeclarations forces every top-level binding in declaration order.
// Bindings re-exported by one declaration (spent unique resources) are
// threaded into the environment seen by the next.
func (a *Analyzer) inferDeclarations(env *TypeEnv, program *ast.Program) *diagnostics.DiagnosticError {
	for _, decl := range program.Declarations {
		vd, ok := decl.(*ast.VarDeclaration)
		if !ok {
			continue
		}
		_, bindings, err := a.ctx.forceLazy(env, vd.Name, vd.Value, vd.Token)
		if err != nil {
			return err
		}
		env = env.ExtendAll(bindings)
	}
	return nil
}

// InferType exposes single-expression inference for tests and tooling: it
// infers expr under env, solves the accumulated constraints, and applies
// the resulting substitution.
func (a *Analyzer) InferType(env *TypeEnv, expr ast.Expression) (typesystem.Type, *diagnostics.DiagnosticError) {
	t, _, err := a.ctx.InferExpression(env, expr)
	if err != nil {
		return nil, err
	}
	s, err := a.ctx.Solve()
	if err != nil {
		return nil, err
	}
	return t.Apply(s), nil
}
