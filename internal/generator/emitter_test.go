package generator

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/astgen/internal/exc"
	"gopkg.microglot.org/astgen/internal/fs"
	"gopkg.microglot.org/astgen/internal/gdl"
)

func parseGrammarString(t *testing.T, input string) *astGrammar {
	t.Helper()

	ctx := context.Background()
	rep := exc.NewReporter(nil)
	lexer := NewLexerGrammar(rep)
	lexerFile, err := lexer.Lex(ctx, fs.NewFileString("/test.grammar", input, gdl.FileKindGrammar))
	require.Nil(t, err)
	parser := NewParserGrammar(rep)
	grammar, err := parser.Parse(ctx, lexerFile)
	require.Nil(t, err)
	require.NotNil(t, grammar)
	require.Empty(t, rep.Reported())
	return grammar
}

func TestEmitterRoundTrip(t *testing.T) {
	t.Parallel()

	grammar := parseGrammarString(t, "Binary : Expr left, Token operator, Expr right; Unary : Token operator, Expr right;")
	emitter := &Emitter{BaseName: "Expr"}

	expected := strings.Join([]string{
		"package com.craftinginterpreters.lox;",
		"",
		"import java.util.List;",
		"",
		"class Expr {",
		"\tstatic class Binary extends Expr {",
		"\t\tpublic Binary(Expr left, Token operator, Expr right) {",
		"\t\t\tthis.left = left;",
		"\t\t\tthis.operator = operator;",
		"\t\t\tthis.right = right;",
		"\t\t}",
		"\t\tpublic Expr left;",
		"\t\tpublic Token operator;",
		"\t\tpublic Expr right;",
		"\t}",
		"\tstatic class Unary extends Expr {",
		"\t\tpublic Unary(Token operator, Expr right) {",
		"\t\t\tthis.operator = operator;",
		"\t\t\tthis.right = right;",
		"\t\t}",
		"\t\tpublic Token operator;",
		"\t\tpublic Expr right;",
		"\t}",
		"}",
	}, "\n")
	require.Equal(t, expected, emitter.Emit(grammar))
}

func TestEmitterEmptyGrammar(t *testing.T) {
	t.Parallel()

	grammar := parseGrammarString(t, "")
	emitter := &Emitter{BaseName: "Expr"}

	expected := strings.Join([]string{
		"package com.craftinginterpreters.lox;",
		"",
		"import java.util.List;",
		"",
		"class Expr {",
		"}",
	}, "\n")
	require.Equal(t, expected, emitter.Emit(grammar))
}

func TestEmitterBaseName(t *testing.T) {
	t.Parallel()

	grammar := parseGrammarString(t, "Expression : Expr expression;")
	emitter := &Emitter{BaseName: "Stmt"}

	out := emitter.Emit(grammar)
	require.Contains(t, out, "class Stmt {")
	require.Contains(t, out, "static class Expression extends Stmt {")
}

func TestEmitterDeterminism(t *testing.T) {
	t.Parallel()

	grammar := parseGrammarString(t, "Binary : Expr left, Token operator, Expr right;")
	emitter := &Emitter{BaseName: "Expr"}
	first := emitter.Emit(grammar)
	for x := 0; x < 10; x = x + 1 {
		require.Equal(t, first, emitter.Emit(grammar))
	}
}

func TestEmitterAssignmentCompleteness(t *testing.T) {
	t.Parallel()

	grammar := parseGrammarString(t, "Binary : Expr left, Token operator, Expr right; Unary : Token operator, Expr right;")
	emitter := &Emitter{BaseName: "Expr"}
	out := emitter.Emit(grammar)

	// one assignment per declared field, no more
	require.Equal(t, strings.Count(out, "this."), strings.Count(out, "public ")-2) // minus the two constructors
	for _, name := range []string{"left", "operator", "right"} {
		require.Contains(t, out, "this."+name+" = "+name+";")
	}
}
