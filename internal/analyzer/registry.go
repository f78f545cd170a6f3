package analyzer

import (
	"github.com/quill-lang/quill/internal/ast"
	"github.com/quill-lang/quill/internal/diagnostics"
	"github.com/quill-lang/quill/internal/token"
	"github.com/quill-lang/quill/internal/typesystem"
)

// TermConstructor is one registered constructor: its name, the algebraic
// type that owns it (instantiated with the owner's declared parameter
// variables), and its full signature. A nullary constructor's signature is
// the owner type itself; a unary constructor's is arg -> owner.
type TermConstructor struct {
	Name      string
	Owner     typesystem.TData
	Signature typesystem.Type
}

// Registry is the two-phase constructor signature store. LazySig (type name
// to declared parameter names) is built in a first pass over every type
// declaration so that mutually recursive declarations resolve by name and
// arity before any sibling constructor body exists; Sig (constructor name to
// TermConstructor) is filled in the second pass. Both grow monotonically
// during the declaration phase and are read-only afterwards.
type Registry struct {
	lazy  map[string][]string
	ctors map[string]TermConstructor
}

func NewRegistry() *Registry {
	return &Registry{
		lazy:  make(map[string][]string),
		ctors: make(map[string]TermConstructor),
	}
}

func (r *Registry) DeclareType(decl *ast.TypeDeclaration) *diagnostics.DiagnosticError {
	if typesystem.IsPrimitiveName(decl.Name) {
		return diagnostics.NewError(diagnostics.CodeTypeRedefined, decl.GetToken(),
			"type %s redefined: %s is a built-in type", decl.Name, decl.Name)
	}
	if _, ok := r.lazy[decl.Name]; ok {
		return diagnostics.NewError(diagnostics.CodeTypeRedefined, decl.GetToken(),
			"type %s redefined", decl.Name)
	}
	r.lazy[decl.Name] = decl.Params
	return nil
}

// DeclareConstructors elaborates and registers every constructor of decl.
// DeclareType must already have run for all type declarations in the
// program, so argument types may reference sibling types freely.
func (r *Registry) DeclareConstructors(decl *ast.TypeDeclaration) *diagnostics.DiagnosticError {
	owner := typesystem.TData{Name: decl.Name}
	for _, p := range decl.Params {
		owner.Args = append(owner.Args, typesystem.TVar{Name: p})
	}

	for _, c := range decl.Constructors {
		if _, ok := r.ctors[c.Name]; ok {
			return diagnostics.NewError(diagnostics.CodeConstructorRedefined, c.Token,
				"constructor %s redefined", c.Name)
		}
		sig := typesystem.Type(owner)
		if c.Arg != nil {
			argType, err := r.resolveTypeExpr(decl.Params, c.Arg)
			if err != nil {
				return err
			}
			sig = typesystem.TFunc{Param: argType, Return: owner}
		}
		r.ctors[c.Name] = TermConstructor{Name: c.Name, Owner: owner, Signature: sig}
	}
	return nil
}

// HasType reports whether name is a declared algebraic type.
func (r *Registry) HasType(name string) bool {
	_, ok := r.lazy[name]
	return ok
}

// TypeParams returns the declared parameter names of an algebraic type.
func (r *Registry) TypeParams(name string) ([]string, bool) {
	params, ok := r.lazy[name]
	return params, ok
}

// Constructor is a total query; absence is reported to the caller, which
// decides the appropriate error.
func (r *Registry) Constructor(name string) (TermConstructor, bool) {
	ctor, ok := r.ctors[name]
	return ctor, ok
}

// resolveTypeExpr elaborates a syntactic type reference from a constructor
// signature into a Type, against LazySig. ownerParams are the parameter
// names declared by the owning type; lowercase names outside that list are
// a parameter-misuse error.
func (r *Registry) resolveTypeExpr(ownerParams []string, expr ast.TypeExpression) (typesystem.Type, *diagnostics.DiagnosticError) {
	switch e := expr.(type) {
	case *ast.TypeName:
		base, err := r.resolveNamed(ownerParams, e.GetToken(), e.Name, nil)
		if err != nil {
			return nil, err
		}
		if e.Unique {
			return typesystem.TUnique{Inner: base, Valid: true}, nil
		}
		return base, nil

	case *ast.TypeApp:
		args := make([]typesystem.Type, len(e.Args))
		for i, a := range e.Args {
			arg, err := r.resolveTypeExpr(ownerParams, a)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		base, err := r.resolveNamed(ownerParams, e.GetToken(), e.Name, args)
		if err != nil {
			return nil, err
		}
		if e.Unique {
			return typesystem.TUnique{Inner: base, Valid: true}, nil
		}
		return base, nil

	case *ast.TupleType:
		elems := make([]typesystem.Type, len(e.Elements))
		for i, el := range e.Elements {
			t, err := r.resolveTypeExpr(ownerParams, el)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return typesystem.TTuple{Elements: elems}, nil

	case *ast.ListType:
		el, err := r.resolveTypeExpr(ownerParams, e.Element)
		if err != nil {
			return nil, err
		}
		return typesystem.TList{Element: el}, nil

	case *ast.FuncType:
		param, err := r.resolveTypeExpr(ownerParams, e.Param)
		if err != nil {
			return nil, err
		}
		ret, err := r.resolveTypeExpr(ownerParams, e.Return)
		if err != nil {
			return nil, err
		}
		return typesystem.TFunc{Param: param, Return: ret}, nil
	}

	return nil, diagnostics.NewError(diagnostics.CodeUndefinedType, expr.GetToken(),
		"unsupported type expression %s", expr.String())
}

func (r *Registry) resolveNamed(ownerParams []string, tok token.Token, name string, args []typesystem.Type) (typesystem.Type, *diagnostics.DiagnosticError) {
	if isLowerName(name) {
		if len(args) > 0 {
			return nil, diagnostics.NewError(diagnostics.CodeNonAlgebraicApplied, tok,
				"type parameter %s cannot take type arguments", name)
		}
		for _, p := range ownerParams {
			if p == name {
				return typesystem.TVar{Name: name}, nil
			}
		}
		return nil, diagnostics.NewError(diagnostics.CodeParamMisuse, tok,
			"type parameter %s is not declared by the owning type", name)
	}

	if typesystem.IsPrimitiveName(name) {
		if len(args) > 0 {
			return nil, diagnostics.NewError(diagnostics.CodeNonAlgebraicApplied, tok,
				"%s is not an algebraic type and takes no type arguments", name)
		}
		return typesystem.TCon{Name: name}, nil
	}

	params, ok := r.lazy[name]
	if !ok {
		return nil, diagnostics.NewError(diagnostics.CodeUndefinedType, tok,
			"undefined type %s", name)
	}
	if len(params) != len(args) {
		return nil, diagnostics.NewError(diagnostics.CodeUndefinedType, tok,
			"undefined type: %s takes %d type arguments, got %d", name, len(params), len(args))
	}
	return typesystem.TData{Name: name, Args: args}, nil
}

func isLowerName(name string) bool {
	return len(name) > 0 && name[0] >= 'a' && name[0] <= 'z'
}
