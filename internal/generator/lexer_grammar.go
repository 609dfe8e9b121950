// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package generator

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"gopkg.microglot.org/astgen/internal/exc"
	"gopkg.microglot.org/astgen/internal/gdl"
	"gopkg.microglot.org/astgen/internal/iter"
	"gopkg.microglot.org/astgen/internal/optional"
)

const (
	lexerGrammarLookahead = 2
)

// LexerGrammar implements a tokenizer for the flat rule notation.
type LexerGrammar struct {
	reporter exc.Reporter
}

func NewLexerGrammar(reporter exc.Reporter) *LexerGrammar {
	return &LexerGrammar{reporter: reporter}
}

func (self *LexerGrammar) Lex(ctx context.Context, f gdl.File) (gdl.LexerFile, error) {
	return &lexerFileGrammar{
		File:     f,
		reporter: self.reporter,
	}, nil
}

type lexerFileGrammar struct {
	gdl.File
	reporter exc.Reporter
}

func (self *lexerFileGrammar) Tokens(ctx context.Context) (gdl.Iterator[*gdl.Token], error) {
	b, err := self.File.Body(ctx)
	if err != nil {
		return nil, err
	}
	points := iter.NewLookahead(iter.NewUnicodeFileBodyCtx(ctx, b), lexerGrammarLookahead)
	return &lexerFileGrammarTokens{
		uri:      self.File.Path(ctx),
		body:     points,
		reporter: self.reporter,
		line:     1,
		col:      0,
		offset:   -1,
	}, nil
}

type lexerFileGrammarTokens struct {
	uri      string
	body     gdl.Lookahead[gdl.CodePoint]
	reporter exc.Reporter
	line     int32
	col      int32
	offset   int64
	sentEOF  bool
}

func (self *lexerFileGrammarTokens) Next(ctx context.Context) optional.Optional[*gdl.Token] {
	for point := self.next(ctx); point.IsPresent(); point = self.next(ctx) {
		r := rune(point.Value())
		switch r {
		case 0x00:
			// A NUL byte is never valid input; reporting keeps a truncated
			// stream from emitting declarations for only part of the grammar.
			_ = self.reporter.Report(self.exc(exc.CodeUnexpectedToken, "unexpected NUL byte"))
			return optional.None[*gdl.Token]()
		case 0x0009, 0x0020:
			continue // Generally ignore space and tab.
		case '\n':
			return self.newLineToken("\n", 1)
		case '\r':
			if n := self.body.Lookahead(ctx, 1); n.IsPresent() && n.Value() == '\n' {
				_ = self.next(ctx)
				return self.newLineToken("\r\n", 2)
			}
			return self.newLineToken("\r", 1)
		case ':':
			t := newToken(self.line, self.col-1, self.offset, self.line, self.col, self.offset+1, gdl.TokenTypeColon, ":")
			return optional.Some(t)
		case ',':
			t := newToken(self.line, self.col-1, self.offset, self.line, self.col, self.offset+1, gdl.TokenTypeComma, ",")
			return optional.Some(t)
		case ';':
			t := newToken(self.line, self.col-1, self.offset, self.line, self.col, self.offset+1, gdl.TokenTypeSemicolon, ";")
			return optional.Some(t)
		case '/':
			n := self.body.Lookahead(ctx, 1)
			if n.IsPresent() && n.Value() == '/' {
				_ = self.next(ctx)
				return self.readCommentLine(ctx)
			}
			_ = self.reporter.Report(self.exc(exc.CodeUnexpectedToken, "unexpected character '/'"))
			return optional.None[*gdl.Token]()
		default:
			if r == '_' || unicode.IsLetter(r) {
				return self.readIdentifier(ctx, string(r))
			}
			_ = self.reporter.Report(self.exc(exc.CodeUnexpectedToken, fmt.Sprintf("unexpected character %q", r)))
			return optional.None[*gdl.Token]()
		}
	}
	if !self.sentEOF {
		self.sentEOF = true
		t := newTokenLineSpan(self.line, self.col, self.offset, 0, gdl.TokenTypeEOF, "")
		return optional.Some(t)
	}
	return optional.None[*gdl.Token]()
}

func (self *lexerFileGrammarTokens) readIdentifier(ctx context.Context, prefix string) optional.Optional[*gdl.Token] {
	var builder strings.Builder
	_, _ = builder.WriteString(prefix)
	for {
		n := self.body.Lookahead(ctx, 1)
		if !n.IsPresent() {
			t := newTokenLineSpan(self.line, self.col, self.offset, builder.Len(), gdl.TokenTypeIdentifier, builder.String())
			return optional.Some(t)
		}
		r := rune(n.Value())
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			_ = self.next(ctx)
			_, _ = builder.WriteRune(r)
			continue
		}
		t := newTokenLineSpan(self.line, self.col, self.offset, builder.Len(), gdl.TokenTypeIdentifier, builder.String())
		return optional.Some(t)
	}
}

func (self *lexerFileGrammarTokens) readCommentLine(ctx context.Context) optional.Optional[*gdl.Token] {
	var builder strings.Builder
	for {
		n := self.body.Lookahead(ctx, 1)
		if !n.IsPresent() || n.Value() == '\n' || n.Value() == '\r' {
			// The token value is the comment text without the leading slashes.
			t := newTokenLineSpan(self.line, self.col, self.offset, builder.Len()+2, gdl.TokenTypeComment, builder.String())
			return optional.Some(t)
		}
		_ = self.next(ctx)
		_, _ = builder.WriteRune(rune(n.Value()))
	}
}

func (self *lexerFileGrammarTokens) next(ctx context.Context) optional.Optional[gdl.CodePoint] {
	n := self.body.Next(ctx)
	if n.IsPresent() {
		self.addCol(rune(n.Value()))
	}
	return n
}

func (self *lexerFileGrammarTokens) exc(code string, message string) exc.Exception {
	return exc.New(exc.Location{URI: self.uri, Location: gdl.Location{Line: self.line, Column: self.col, Offset: self.offset}}, code, message)
}

func (self *lexerFileGrammarTokens) newLine() {
	self.line = self.line + 1
	self.col = 0
	self.offset = self.offset + 1
}

func (self *lexerFileGrammarTokens) newLineToken(v string, size int) optional.Optional[*gdl.Token] {
	t := newToken(self.line, self.col-int32(size-1), self.offset-int64(size), self.line+1, 1, self.offset, gdl.TokenTypeNewline, v)
	self.newLine()
	return optional.Some(t)
}

func (self *lexerFileGrammarTokens) addCol(r rune) {
	self.col = self.col + 1
	self.offset = self.offset + int64(len(string(r)))
}

func (self *lexerFileGrammarTokens) Close(ctx context.Context) error {
	return self.body.Close(ctx)
}

func newTokenLineSpan(line int32, col int32, offset int64, size int, kind gdl.TokenType, value string) *gdl.Token {
	return &gdl.Token{
		Span: &gdl.Span{
			Start: &gdl.Location{
				Line:   line,
				Column: col - int32(size),
				Offset: offset - int64(size),
			},
			End: &gdl.Location{
				Line:   line,
				Column: col,
				Offset: offset,
			},
		},
		Type:  kind,
		Value: value,
	}
}

func newToken(startLine int32, startCol int32, startOffset int64, endLine int32, endCol int32, endOffset int64, kind gdl.TokenType, value string) *gdl.Token {
	return &gdl.Token{
		Span: &gdl.Span{
			Start: &gdl.Location{
				Line:   startLine,
				Column: startCol,
				Offset: startOffset,
			},
			End: &gdl.Location{
				Line:   endLine,
				Column: endCol,
				Offset: endOffset,
			},
		},
		Type:  kind,
		Value: value,
	}
}
