package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"gopkg.microglot.org/astgen/internal/exc"
	"gopkg.microglot.org/astgen/internal/fs"
	"gopkg.microglot.org/astgen/internal/gdl"
)

// testFS serves string content keyed by normalized target path.
type testFS map[string]string

func (self testFS) Open(ctx context.Context, uri string) ([]gdl.File, error) {
	content, ok := self[uri]
	if !ok {
		return nil, exc.New(exc.Location{URI: uri}, exc.CodeFileNotFound, "not found")
	}
	return []gdl.File{fs.NewFileString(uri, content, gdl.FileKindGrammar)}, nil
}

func (self testFS) Write(ctx context.Context, uri string, content string) error {
	return exc.New(exc.Location{URI: uri}, exc.CodeUnsuportedFileSystemOperation, "read-only file system")
}

func newTestGenerator(t *testing.T, files testFS) gdl.Generator {
	t.Helper()

	g, err := New(OptionWithFS(files))
	require.Nil(t, err)
	return g
}

func TestGenerateBuiltinGrammar(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := newTestGenerator(t, testFS{})
	out, err := g.Generate(ctx, &gdl.GenerateRequest{})
	require.Nil(t, err)
	require.Len(t, out.Files, 1)
	require.Equal(t, gdl.DefaultOutput, out.Files[0].Name)

	ar, err := txtar.ParseFile("testdata/expr.txtar")
	require.Nil(t, err)
	require.Len(t, ar.Files, 1)
	// txtar file bodies always end in a newline; the emitted file does not.
	expected := strings.TrimSuffix(string(ar.Files[0].Data), "\n")
	require.Equal(t, expected, out.Files[0].Content)
}

func TestGenerateDeterminism(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	first, err := newTestGenerator(t, testFS{}).Generate(ctx, &gdl.GenerateRequest{})
	require.Nil(t, err)
	second, err := newTestGenerator(t, testFS{}).Generate(ctx, &gdl.GenerateRequest{})
	require.Nil(t, err)
	require.Equal(t, first, second)
}

func TestGenerateRuleCount(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := newTestGenerator(t, testFS{
		"/stmt.grammar": "Expression : Expr expression;\nPrint : Expr expression;\nVar : Token name;\n",
	})
	out, err := g.Generate(ctx, &gdl.GenerateRequest{
		Targets: []string{"stmt.grammar"},
		Output:  "Stmt.java",
	})
	require.Nil(t, err)
	require.Len(t, out.Files, 1)
	require.Equal(t, 3, strings.Count(out.Files[0].Content, "static class "))
	require.True(t, strings.HasPrefix(out.Files[0].Content, "package com.craftinginterpreters.lox;"))
	require.True(t, strings.HasSuffix(out.Files[0].Content, "}"))
	require.Contains(t, out.Files[0].Content, "class Stmt {")
}

func TestGenerateBaseNameOverride(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := newTestGenerator(t, testFS{})
	out, err := g.Generate(ctx, &gdl.GenerateRequest{BaseName: "Node"})
	require.Nil(t, err)
	require.Contains(t, out.Files[0].Content, "class Node {")
	require.Contains(t, out.Files[0].Content, "static class Binary extends Node {")
}

func TestGenerateStdoutBaseName(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := newTestGenerator(t, testFS{})
	out, err := g.Generate(ctx, &gdl.GenerateRequest{Output: "-"})
	require.Nil(t, err)
	require.Equal(t, "-", out.Files[0].Name)
	require.Contains(t, out.Files[0].Content, "class Expr {")
	require.NotContains(t, out.Files[0].Content, "class - {")
}

func TestGenerateNulByteFaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := newTestGenerator(t, testFS{
		"/nul.grammar": "Binary : Expr left;\x00Unary : Token operator;",
	})
	out, err := g.Generate(ctx, &gdl.GenerateRequest{
		Targets: []string{"nul.grammar"},
		Output:  "Expr.java",
	})
	require.Nil(t, out)
	require.NotNil(t, err)

	me := MultiException{}
	require.True(t, errors.As(err, &me))
	require.Equal(t, exc.CodeUnexpectedToken, me[0].Code())
}

func TestGenerateMergesTargetsInOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := newTestGenerator(t, testFS{
		"/a.grammar": "Binary : Expr left, Token operator, Expr right;",
		"/b.grammar": "Unary : Token operator, Expr right;",
	})
	out, err := g.Generate(ctx, &gdl.GenerateRequest{
		Targets: []string{"a.grammar", "b.grammar"},
		Output:  "Expr.java",
	})
	require.Nil(t, err)
	content := out.Files[0].Content
	require.Less(t, strings.Index(content, "class Binary"), strings.Index(content, "class Unary"))
}

func TestGenerateMalformedRule(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := newTestGenerator(t, testFS{
		"/bad.grammar": "Bad Expr x;",
	})
	out, err := g.Generate(ctx, &gdl.GenerateRequest{
		Targets: []string{"bad.grammar"},
		Output:  "Expr.java",
	})
	require.Nil(t, out)
	require.NotNil(t, err)

	me := MultiException{}
	require.True(t, errors.As(err, &me))
	require.Len(t, me, 1)
	require.Equal(t, exc.CodeMalformedRule, me[0].Code())
}

func TestGenerateDuplicateField(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := newTestGenerator(t, testFS{
		"/dup.grammar": "Binary : Expr left, Expr left;",
	})
	out, err := g.Generate(ctx, &gdl.GenerateRequest{
		Targets: []string{"dup.grammar"},
		Output:  "Expr.java",
	})
	require.Nil(t, out)
	require.NotNil(t, err)

	me := MultiException{}
	require.True(t, errors.As(err, &me))
	require.Equal(t, exc.CodeDuplicateName, me[0].Code())
}

func TestGenerateMissingTarget(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := newTestGenerator(t, testFS{})
	out, err := g.Generate(ctx, &gdl.GenerateRequest{
		Targets: []string{"missing.grammar"},
	})
	require.Nil(t, out)
	require.NotNil(t, err)

	me := MultiException{}
	require.True(t, errors.As(err, &me))
	require.Equal(t, exc.CodeFileNotFound, me[0].Code())
}

func TestGenerateEmptyGrammarFile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	g := newTestGenerator(t, testFS{
		"/empty.grammar": " \n;\n",
	})
	out, err := g.Generate(ctx, &gdl.GenerateRequest{
		Targets: []string{"empty.grammar"},
		Output:  "Expr.java",
	})
	require.Nil(t, err)
	expected := strings.Join([]string{
		"package com.craftinginterpreters.lox;",
		"",
		"import java.util.List;",
		"",
		"class Expr {",
		"}",
	}, "\n")
	require.Equal(t, expected, out.Files[0].Content)
}
