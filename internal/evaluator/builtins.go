package evaluator

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/quill-lang/quill/internal/config"
)

// RegisterBuiltins installs the built-in functions and the pre-bound
// resource tokens into env. The signatures mirror the operator environment
// the type checker starts from.
func RegisterBuiltins(env *Environment) {
	builtins := []*Builtin{
		{Name: config.ShowFuncName, Arity: 1, Fn: builtinShow},
		{Name: config.PrintFuncName, Arity: 1, Fn: builtinPrint},
		{Name: config.OpenFileFuncName, Arity: 1, Fn: builtinOpenFile},
		{Name: config.ReadLineFuncName, Arity: 1, Fn: builtinReadLine},
		{Name: config.WriteLineFuncName, Arity: 2, Fn: builtinWriteLine},
		{Name: config.CloseFileFuncName, Arity: 1, Fn: builtinCloseFile},
		{Name: config.IsTTYFuncName, Arity: 1, Fn: builtinIsTTY},
	}
	for _, b := range builtins {
		env.Set(b.Name, b)
	}

	env.Set(config.StdinName, &FileHandle{Name: config.StdinName, std: true})
	env.Set(config.StdoutName, &FileHandle{Name: config.StdoutName, std: true})
}

func builtinShow(_ *Evaluator, args ...Object) Object {
	return stringToList(args[0].Inspect())
}

func builtinPrint(e *Evaluator, args ...Object) Object {
	fmt.Fprintln(e.Out, displayString(args[0]))
	return TRUE
}

// displayString is Inspect except that char lists print their raw
// characters, so show-then-print round trips text without extra quoting.
func displayString(obj Object) string {
	if l, ok := obj.(*List); ok {
		if s, ok := charListString(l); ok && len(l.Elements) > 0 {
			return s
		}
	}
	return obj.Inspect()
}

func builtinOpenFile(_ *Evaluator, args ...Object) Object {
	name, err := pathArg(args[0])
	if err != nil {
		return err
	}
	file, osErr := os.OpenFile(name, os.O_RDWR|os.O_CREATE, 0o644)
	if osErr != nil {
		return newError("cannot open %s: %s", name, osErr)
	}
	return &FileHandle{Name: name, file: file, reader: bufio.NewReader(file)}
}

func builtinReadLine(e *Evaluator, args ...Object) Object {
	fh, err := handleArg(args[0])
	if err != nil {
		return err
	}
	reader := fh.reader
	if fh.std {
		if fh.Name != config.StdinName {
			return newError("cannot read from %s", fh.Name)
		}
		if fh.reader == nil {
			fh.reader = bufio.NewReader(e.In)
		}
		reader = fh.reader
	}
	if reader == nil {
		return newError("file %s is not open for reading", fh.Name)
	}
	line, osErr := reader.ReadString('\n')
	if osErr != nil && osErr != io.EOF {
		return newError("cannot read from %s: %s", fh.Name, osErr)
	}
	return stringToList(strings.TrimSuffix(line, "\n"))
}

func builtinWriteLine(e *Evaluator, args ...Object) Object {
	text, ok := args[0].(*List)
	if !ok {
		return newError("writeLine expects a string, got %s", args[0].Type())
	}
	s, ok := charListString(text)
	if !ok {
		return newError("writeLine expects a string")
	}
	fh, err := handleArg(args[1])
	if err != nil {
		return err
	}
	var w io.Writer
	switch {
	case fh.std:
		if fh.Name != config.StdoutName {
			return newError("cannot write to %s", fh.Name)
		}
		w = e.Out
	case fh.file != nil && !fh.closed:
		w = fh.file
	default:
		return newError("file %s is not open for writing", fh.Name)
	}
	if _, osErr := fmt.Fprintln(w, s); osErr != nil {
		return newError("cannot write to %s: %s", fh.Name, osErr)
	}
	return TRUE
}

func builtinCloseFile(_ *Evaluator, args ...Object) Object {
	fh, err := handleArg(args[0])
	if err != nil {
		return err
	}
	if fh.std || fh.file == nil || fh.closed {
		return TRUE
	}
	fh.closed = true
	if osErr := fh.file.Close(); osErr != nil {
		return newError("cannot close %s: %s", fh.Name, osErr)
	}
	return TRUE
}

func builtinIsTTY(_ *Evaluator, args ...Object) Object {
	fh, err := handleArg(args[0])
	if err != nil {
		return err
	}
	var fd uintptr
	switch {
	case fh.std && fh.Name == config.StdinName:
		fd = os.Stdin.Fd()
	case fh.std:
		fd = os.Stdout.Fd()
	case fh.file != nil:
		fd = fh.file.Fd()
	default:
		return FALSE
	}
	return nativeBool(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

func pathArg(obj Object) (string, *Error) {
	l, ok := obj.(*List)
	if !ok {
		return "", newError("expected a file path, got %s", obj.Type())
	}
	s, ok := charListString(l)
	if !ok {
		return "", newError("expected a file path")
	}
	return s, nil
}

func handleArg(obj Object) (*FileHandle, *Error) {
	fh, ok := obj.(*FileHandle)
	if !ok {
		return nil, newError("expected a file handle, got %s", obj.Type())
	}
	return fh, nil
}
