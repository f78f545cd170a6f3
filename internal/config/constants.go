package config

const SourceFileExt = ".ql"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".ql", ".quill"}

// ProjectFileName is the optional per-project configuration file.
const ProjectFileName = "quill.yaml"

// Built-in function names
const (
	ShowFuncName      = "show"
	PrintFuncName     = "print"
	OpenFileFuncName  = "openFile"
	ReadLineFuncName  = "readLine"
	WriteLineFuncName = "writeLine"
	CloseFileFuncName = "closeFile"
	IsTTYFuncName     = "isTTY"
)

// Pre-bound resource token names
const (
	StdinName  = "stdin"
	StdoutName = "stdout"
)

// EntryPointName is the binding evaluated when a program is run.
const EntryPointName = "main"

// Built-in type names
const (
	IntTypeName    = "Int"
	FloatTypeName  = "Float"
	BoolTypeName   = "Bool"
	CharTypeName   = "Char"
	FileTypeName   = "File"
	SystemTypeName = "System"
)
