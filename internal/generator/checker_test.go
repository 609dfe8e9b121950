package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/astgen/internal/exc"
	"gopkg.microglot.org/astgen/internal/fs"
	"gopkg.microglot.org/astgen/internal/gdl"
)

func TestChecker(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		input        string
		expectedErrs int
	}{
		{
			name:         "unique names",
			input:        "Binary : Expr left, Token operator, Expr right;\nUnary : Token operator, Expr right;\n",
			expectedErrs: 0,
		},
		{
			name:         "duplicate field name in a rule",
			input:        "Binary : Expr left, Expr left;",
			expectedErrs: 1,
		},
		{
			name:         "duplicate rule name",
			input:        "Unary : Token operator;\nUnary : Expr right;\n",
			expectedErrs: 1,
		},
		{
			name:         "same field name in different rules is fine",
			input:        "Binary : Expr right;\nUnary : Expr right;\n",
			expectedErrs: 0,
		},
		{
			name:         "multiple duplicates are all reported",
			input:        "Binary : Expr left, Expr left;\nBinary : Expr x;\n",
			expectedErrs: 2,
		},
	}
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			input := fs.NewFileString("/test.grammar", testCase.input, gdl.FileKindGrammar)
			parseReporter := exc.NewReporter(nil)
			lexer := NewLexerGrammar(parseReporter)
			lexerFile, err := lexer.Lex(ctx, input)
			require.Nil(t, err)
			parser := NewParserGrammar(parseReporter)
			grammar, err := parser.Parse(ctx, lexerFile)
			require.Nil(t, err)
			require.NotNil(t, grammar)
			require.Empty(t, parseReporter.Reported())

			rep := exc.NewReporter(nil)
			check(grammar, rep)
			reported := rep.Reported()
			require.Len(t, reported, testCase.expectedErrs)
			for _, e := range reported {
				require.Equal(t, exc.CodeDuplicateName, e.Code())
			}
		})
	}
}
