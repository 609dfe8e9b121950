// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package gdl

import (
	"context"
	"fmt"

	"gopkg.microglot.org/astgen/internal/optional"
)

type Closer interface {
	Close(ctx context.Context) error
}

type CodePoint uint32

type Iterator[T any] interface {
	Next(ctx context.Context) optional.Optional[T]
	Closer
}

type Lookahead[T any] interface {
	Iterator[T]
	Lookahead(ctx context.Context, n uint8) optional.Optional[T]
}

type Filter[T any] interface {
	Keep(ctx context.Context, v T) bool
}

type Reader interface {
	Read(ctx context.Context, size int32) ([]byte, error)
}

type FileBody interface {
	Reader
	Closer
}

type FileKind uint32

const (
	FileKindNone FileKind = iota
	FileKindGrammar
)

func (k FileKind) String() string {
	switch k {
	case FileKindGrammar:
		return "grammar"
	case FileKindNone:
		return "none"
	default:
		return fmt.Sprintf("unknown-%d", k)
	}
}

type File interface {
	Path(ctx context.Context) string
	Kind(ctx context.Context) FileKind
	Body(ctx context.Context) (FileBody, error)
}

type FileSystem interface {
	Open(ctx context.Context, uri string) ([]File, error)
	Write(ctx context.Context, uri string, content string) error
}

// Generator turns grammar files into generated source files. Note that the
// response carries content only. Writing the content to its destination is
// the caller's job.
type Generator interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
}

type GenerateRequest struct {
	// Targets are the grammar files to read. An empty set selects the
	// builtin grammar.
	Targets []string
	// Output is the path of the file to generate. Empty selects
	// DefaultOutput.
	Output string
	// BaseName is the name of the generated base type. Empty derives the
	// name from the output path.
	BaseName   string
	DumpTokens bool
	DumpTree   bool
}

type GenerateResponse struct {
	Files []GeneratedFile
}

type GeneratedFile struct {
	Name    string
	Content string
}

type Location struct {
	Line   int32
	Column int32
	Offset int64
}

type Span struct {
	Start *Location
	End   *Location
}

type LexerFile interface {
	File
	Tokens(ctx context.Context) (Iterator[*Token], error)
}

type Lexer interface {
	Lex(ctx context.Context, f File) (LexerFile, error)
}

type Token struct {
	Span  *Span
	Type  TokenType
	Value string
}

type TokenType uint16

const (
	TokenTypeUnknown    TokenType = 0
	TokenTypeIdentifier TokenType = 1
	TokenTypeColon      TokenType = 2
	TokenTypeComma      TokenType = 3
	TokenTypeSemicolon  TokenType = 4
	TokenTypeComment    TokenType = 5
	TokenTypeNewline    TokenType = 6
	TokenTypeEOF        TokenType = 7
)

func (t TokenType) String() string {
	switch t {
	case TokenTypeIdentifier:
		return "TokenTypeIdentifier"
	case TokenTypeColon:
		return "TokenTypeColon"
	case TokenTypeComma:
		return "TokenTypeComma"
	case TokenTypeSemicolon:
		return "TokenTypeSemicolon"
	case TokenTypeComment:
		return "TokenTypeComment"
	case TokenTypeNewline:
		return "TokenTypeNewline"
	case TokenTypeEOF:
		return "TokenTypeEOF"
	case TokenTypeUnknown:
		return "TokenTypeUnknown"
	default:
		return fmt.Sprintf("TokenType(%d)", uint16(t))
	}
}
