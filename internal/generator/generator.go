package generator

import (
	"context"
	"fmt"
	"strings"

	"gopkg.microglot.org/astgen/internal/exc"
	"gopkg.microglot.org/astgen/internal/fs"
	"gopkg.microglot.org/astgen/internal/gdl"
	"gopkg.microglot.org/astgen/internal/target"
)

type Option func(g *generator) error

func OptionWithFS(f gdl.FileSystem) Option {
	return func(g *generator) error {
		g.FS = f
		return nil
	}
}

func OptionWithExcReporter(reporter exc.Reporter) Option {
	return func(g *generator) error {
		g.Reporter = reporter
		return nil
	}
}

func New(opts ...Option) (gdl.Generator, error) {
	g := &generator{}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	if g.FS == nil {
		dfs, err := fs.NewFileSystemLocal("/")
		if err != nil {
			return nil, err
		}
		g.FS = dfs
	}
	if g.Reporter == nil {
		g.Reporter = exc.NewReporter(nil)
	}
	return g, nil
}

type generator struct {
	FS       gdl.FileSystem
	Reporter exc.Reporter
}

// builtinTarget is the path reported for the builtin grammar in diagnostics.
const builtinTarget = "/builtin.grammar"

func (self *generator) Generate(ctx context.Context, req *gdl.GenerateRequest) (*gdl.GenerateResponse, error) {
	output := req.Output
	if output == "" {
		output = gdl.DefaultOutput
	}
	baseName := req.BaseName
	if baseName == "" {
		baseName = gdl.BaseNameFromTarget(output)
	}

	files := make([]gdl.File, 0, len(req.Targets)+1)
	if len(req.Targets) == 0 {
		files = append(files, fs.NewFileString(builtinTarget, gdl.BuiltinGrammar, gdl.FileKindGrammar))
	}
	for _, t := range req.Targets {
		in, err := self.FS.Open(ctx, target.Normalize(t))
		if err != nil {
			if e, ok := err.(exc.Exception); ok {
				_ = self.Reporter.Report(e)
				return nil, MultiException(self.Reporter.Reported())
			}
			return nil, err
		}
		for _, inf := range in {
			if inf.Kind(ctx) == gdl.FileKindNone {
				continue
			}
			files = append(files, inf)
		}
	}

	// Rules from every target are merged into one grammar, in argument
	// order, so multiple grammar files behave like one concatenated file.
	grammar := &astGrammar{}
	for _, file := range files {
		parsed, err := self.parseFile(ctx, file, req.DumpTokens)
		if err != nil {
			return nil, err
		}
		if parsed == nil {
			break
		}
		if grammar.uri == "" {
			grammar.uri = parsed.uri
		}
		grammar.rules = append(grammar.rules, parsed.rules...)
	}

	if len(self.Reporter.Reported()) == 0 {
		check(grammar, self.Reporter)
	}
	caught := self.Reporter.Reported()
	if len(caught) > 0 {
		return nil, MultiException(caught)
	}

	if req.DumpTree {
		fmt.Print(grammar)
	}

	emitter := &Emitter{BaseName: baseName}
	return &gdl.GenerateResponse{
		Files: []gdl.GeneratedFile{
			{Name: output, Content: emitter.Emit(grammar)},
		},
	}, nil
}

func (self *generator) parseFile(ctx context.Context, file gdl.File, dumpTokens bool) (*astGrammar, error) {
	lexer := NewLexerGrammar(self.Reporter)
	parser := NewParserGrammar(self.Reporter)
	lf, err := lexer.Lex(ctx, file)
	if err != nil {
		return nil, err
	}
	if dumpTokens {
		// Tokens() hands back a fresh stream each call, so dumping does not
		// consume the stream the parser sees.
		stream, err := lf.Tokens(ctx)
		if err != nil {
			return nil, err
		}
		for tok := stream.Next(ctx); tok.IsPresent(); tok = stream.Next(ctx) {
			token := tok.Value()
			fmt.Printf("%-24s", token.Type)
			if token.Type != gdl.TokenTypeNewline {
				fmt.Printf("'%s'", token.Value)
			}
			fmt.Println()
		}
	}
	return parser.Parse(ctx, lf)
}

type MultiException []exc.Exception

func (self MultiException) Error() string {
	var b strings.Builder
	for _, err := range self[:len(self)-1] {
		b.WriteString(err.Error())
		b.WriteString("; ")
	}
	b.WriteString(self[len(self)-1].Error())
	return b.String()
}
