package analyzer

import (
	"github.com/quill-lang/quill/internal/config"
	"github.com/quill-lang/quill/internal/typesystem"
)

// NewTopLevelEnv builds the initial type environment: the pre-bound
// operator identifiers with their constrained schemes, the built-in
// functions, and the ambient resource tokens stdin/stdout typed as valid
// unique File handles.
func NewTopLevelEnv() *TypeEnv {
	var env *TypeEnv

	a := typesystem.TVar{Name: "a"}
	num := typesystem.TVar{Name: "a", Classes: typesystem.NewClassSet(typesystem.ClassNum)}
	eq := typesystem.TVar{Name: "a", Classes: typesystem.NewClassSet(typesystem.ClassEq)}
	ord := typesystem.TVar{Name: "a", Classes: typesystem.NewClassSet(typesystem.ClassOrd)}
	show := typesystem.TVar{Name: "a", Classes: typesystem.NewClassSet(typesystem.ClassShow)}
	bi := typesystem.TVar{Name: "a", Classes: typesystem.NewClassSet(typesystem.ClassBi)}

	bind := func(name string, vars []typesystem.TVar, body typesystem.Type) {
		env = env.Extend(name, &ForAll{Vars: vars, Body: body})
	}
	binop := func(v typesystem.TVar, result typesystem.Type) typesystem.Type {
		return typesystem.TFunc{Param: v, Return: typesystem.TFunc{Param: v, Return: result}}
	}

	for _, op := range []string{"+", "-", "*", "/"} {
		bind(op, []typesystem.TVar{num}, binop(num, num))
	}
	for _, op := range []string{"==", "!="} {
		bind(op, []typesystem.TVar{eq}, binop(eq, typesystem.BoolType))
	}
	for _, op := range []string{"<", ">", "<=", ">="} {
		bind(op, []typesystem.TVar{ord}, binop(ord, typesystem.BoolType))
	}
	for _, op := range []string{".&.", ".|.", ".^."} {
		bind(op, []typesystem.TVar{bi}, binop(bi, bi))
	}
	boolOp := typesystem.TFunc{
		Param:  typesystem.BoolType,
		Return: typesystem.TFunc{Param: typesystem.BoolType, Return: typesystem.BoolType},
	}
	bind("&&", nil, boolOp)
	bind("||", nil, boolOp)

	listA := typesystem.TList{Element: a}
	bind(":", []typesystem.TVar{a}, typesystem.TFunc{
		Param:  a,
		Return: typesystem.TFunc{Param: listA, Return: listA},
	})
	bind("++", []typesystem.TVar{a}, typesystem.TFunc{
		Param:  listA,
		Return: typesystem.TFunc{Param: listA, Return: listA},
	})

	stringType := typesystem.TList{Element: typesystem.CharType}
	file := typesystem.TUnique{Inner: typesystem.FileType, Valid: true}

	bind(config.ShowFuncName, []typesystem.TVar{show},
		typesystem.TFunc{Param: show, Return: stringType})
	bind(config.PrintFuncName, []typesystem.TVar{show},
		typesystem.TFunc{Param: show, Return: typesystem.BoolType})
	bind(config.OpenFileFuncName, nil,
		typesystem.TFunc{Param: stringType, Return: file})
	bind(config.ReadLineFuncName, nil,
		typesystem.TFunc{Param: file, Return: stringType})
	bind(config.WriteLineFuncName, nil,
		typesystem.TFunc{Param: stringType, Return: typesystem.TFunc{Param: file, Return: typesystem.BoolType}})
	bind(config.CloseFileFuncName, nil,
		typesystem.TFunc{Param: file, Return: typesystem.BoolType})
	bind(config.IsTTYFuncName, nil,
		typesystem.TFunc{Param: file, Return: typesystem.BoolType})

	bind(config.StdinName, nil, file)
	bind(config.StdoutName, nil, file)

	return env
}
