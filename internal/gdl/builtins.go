package gdl

import (
	"path/filepath"
	"strings"
)

// BuiltinGrammar describes the expression nodes of the lox tree-walking
// interpreter. It is the grammar the tool generates from when invoked with
// no targets.
const BuiltinGrammar = `
Binary : Expr left, Token operator, Expr right;
Grouping : Expr expression;
Literal : Object value;
Unary : Token operator, Expr right;
`

// DefaultOutput is where the generated declarations land when no --output
// is given. The path is relative to the tool's working directory inside the
// interpreter source tree.
const DefaultOutput = "../lox/Expr.java"

// DefaultBaseName names the generated base type when no name can be derived
// from the output target, such as when writing to STDOUT.
const DefaultBaseName = "Expr"

// BaseNameFromTarget derives the generated base type's name from an output
// target: the final path element with its extension stripped. Targets with no
// usable final element ("-", "", "/") fall back to DefaultBaseName.
func BaseNameFromTarget(target string) string {
	base := filepath.Base(target)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	switch base {
	case "-", ".", string(filepath.Separator):
		return DefaultBaseName
	}
	return base
}
