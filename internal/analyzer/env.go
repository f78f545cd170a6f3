package analyzer

import "github.com/quill-lang/quill/internal/typesystem"

// Binding pairs a name with the scheme it should be bound to. The inference
// functions return new bindings instead of mutating a shared environment;
// callers thread them to subsequent siblings in left-to-right order.
type Binding struct {
	Name   string
	Scheme Scheme
}

// TypeEnv maps identifiers to schemes. It is a persistent linked structure:
// Extend returns a new frame and never mutates the receiver, so shadowing a
// name simply inserts a mapping that supersedes the old one.
type TypeEnv struct {
	name   string
	scheme Scheme
	parent *TypeEnv
}

func (e *TypeEnv) Extend(name string, s Scheme) *TypeEnv {
	return &TypeEnv{name: name, scheme: s, parent: e}
}

func (e *TypeEnv) ExtendAll(bindings []Binding) *TypeEnv {
	out := e
	for _, b := range bindings {
		out = out.Extend(b.Name, b.Scheme)
	}
	return out
}

func (e *TypeEnv) Lookup(name string) (Scheme, bool) {
	for frame := e; frame != nil; frame = frame.parent {
		if frame.name == name {
			return frame.scheme, true
		}
	}
	return nil, false
}

// FreeTypeVariables collects the free variables of every ForAll scheme in
// scope. Lazy schemes have no type yet and contribute nothing. Shadowed
// frames still contribute; the result is a conservative over-approximation
// used only to limit generalization.
func (e *TypeEnv) FreeTypeVariables() []typesystem.TVar {
	seen := map[string]bool{}
	var out []typesystem.TVar
	for frame := e; frame != nil; frame = frame.parent {
		f, ok := frame.scheme.(*ForAll)
		if !ok {
			continue
		}
		bound := map[string]bool{}
		for _, v := range f.Vars {
			bound[v.Name] = true
		}
		for _, v := range f.Body.FreeTypeVariables() {
			if !bound[v.Name] && !seen[v.Name] {
				seen[v.Name] = true
				out = append(out, v)
			}
		}
	}
	return out
}
