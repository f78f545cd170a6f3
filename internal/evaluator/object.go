package evaluator

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/quill-lang/quill/internal/ast"
)

type ObjectType string

const (
	INTEGER_OBJ  = "INTEGER"
	FLOAT_OBJ    = "FLOAT"
	CHAR_OBJ     = "CHAR"
	BOOLEAN_OBJ  = "BOOLEAN"
	LIST_OBJ     = "LIST"
	TUPLE_OBJ    = "TUPLE"
	FUNCTION_OBJ = "FUNCTION"
	BUILTIN_OBJ  = "BUILTIN"
	DATA_OBJ     = "DATA"
	FILE_OBJ     = "FILE"
	THUNK_OBJ    = "THUNK"
	ERROR_OBJ    = "ERROR"
)

// Object is a runtime value.
type Object interface {
	Type() ObjectType
	Inspect() string
}

type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return strconv.FormatInt(i.Value, 10) }

type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect() string {
	s := strconv.FormatFloat(f.Value, 'g', -1, 64)
	// Keep floats visually distinct from integers.
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

type Char struct {
	Value rune
}

func (c *Char) Type() ObjectType { return CHAR_OBJ }
func (c *Char) Inspect() string  { return "'" + string(c.Value) + "'" }

type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string {
	if b.Value {
		return "True"
	}
	return "False"
}

// List is a homogeneous sequence. A list whose elements are all chars is
// rendered as a string literal, matching how string literals enter the
// language in the first place.
type List struct {
	Elements []Object
}

func (l *List) Type() ObjectType { return LIST_OBJ }
func (l *List) Inspect() string {
	if s, ok := charListString(l); ok && len(l.Elements) > 0 {
		return strconv.Quote(s)
	}
	var out bytes.Buffer
	out.WriteString("[")
	for i, el := range l.Elements {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(el.Inspect())
	}
	out.WriteString("]")
	return out.String()
}

type Tuple struct {
	Elements []Object
}

func (t *Tuple) Type() ObjectType { return TUPLE_OBJ }
func (t *Tuple) Inspect() string {
	var out bytes.Buffer
	out.WriteString("(")
	for i, el := range t.Elements {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(el.Inspect())
	}
	out.WriteString(")")
	return out.String()
}

// Function is a closure over a single parameter.
type Function struct {
	Param string
	Body  ast.Expression
	Env   *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string  { return "\\" + f.Param + " -> ..." }

type BuiltinFunction func(e *Evaluator, args ...Object) Object

// Builtin is a host function. Arity counts the total parameters; applying
// fewer yields a partially applied copy, so builtins curry like everything
// else.
type Builtin struct {
	Name  string
	Arity int
	Fn    BuiltinFunction
	args  []Object
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "<builtin " + b.Name + ">" }

// DataInstance is a value of a user-declared algebraic type. Arg is nil for
// nullary constructors.
type DataInstance struct {
	Ctor string
	Arg  Object
}

func (d *DataInstance) Type() ObjectType { return DATA_OBJ }
func (d *DataInstance) Inspect() string {
	if d.Arg == nil {
		return d.Ctor
	}
	arg := d.Arg.Inspect()
	if nested, ok := d.Arg.(*DataInstance); ok && nested.Arg != nil {
		arg = "(" + arg + ")"
	}
	return d.Ctor + " " + arg
}

// FileHandle is the runtime side of the unique File type. The analyzer has
// already ruled out use-after-consume, so the handle only tracks enough
// state to perform I/O.
type FileHandle struct {
	Name   string
	file   *os.File
	reader *bufio.Reader
	std    bool
	closed bool
}

func (fh *FileHandle) Type() ObjectType { return FILE_OBJ }
func (fh *FileHandle) Inspect() string  { return "<file " + fh.Name + ">" }

// Thunk delays a top-level binding so declarations may reference each other
// regardless of order. It is forced anew on every reference, mirroring how
// the type checker re-infers lazy bindings per use site.
type Thunk struct {
	Name string
	Expr ast.Expression
	Env  *Environment
}

func (t *Thunk) Type() ObjectType { return THUNK_OBJ }
func (t *Thunk) Inspect() string  { return "<thunk " + t.Name + ">" }

type Error struct {
	Message string
	Line    int
	Column  int
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string  { return "runtime error: " + e.Message }

var (
	TRUE  = &Boolean{Value: true}
	FALSE = &Boolean{Value: false}
)

func nativeBool(v bool) *Boolean {
	if v {
		return TRUE
	}
	return FALSE
}

func newError(format string, a ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, a...)}
}

func newErrorAt(line, column int, format string, a ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, a...), Line: line, Column: column}
}

func isError(obj Object) bool {
	if obj != nil {
		return obj.Type() == ERROR_OBJ
	}
	return false
}

// charListString converts a char list to a Go string. The second result is
// false when any element is not a char.
func charListString(l *List) (string, bool) {
	var out strings.Builder
	for _, el := range l.Elements {
		c, ok := el.(*Char)
		if !ok {
			return "", false
		}
		out.WriteRune(c.Value)
	}
	return out.String(), true
}

// stringToList builds the char-list representation of s.
func stringToList(s string) *List {
	elements := make([]Object, 0, len(s))
	for _, r := range s {
		elements = append(elements, &Char{Value: r})
	}
	return &List{Elements: elements}
}
