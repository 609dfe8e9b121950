package generator

import (
	"context"
	"fmt"

	"gopkg.microglot.org/astgen/internal/exc"
	"gopkg.microglot.org/astgen/internal/gdl"
	"gopkg.microglot.org/astgen/internal/iter"
)

// ParserGrammar turns a token stream into typed rule records. A rule is an
// identifier, a colon, and one or more comma-separated fields terminated by
// a semicolon. A field is a type identifier followed by a name identifier.
type ParserGrammar struct {
	reporter exc.Reporter
}

func NewParserGrammar(reporter exc.Reporter) *ParserGrammar {
	return &ParserGrammar{reporter: reporter}
}

func (self *ParserGrammar) PrepareParse(ctx context.Context, f gdl.LexerFile) (*parserGrammarTokens, error) {
	ft, err := f.Tokens(ctx)
	if err != nil {
		return nil, err
	}

	// newlines and comments carry no meaning in the rule notation, so the
	// parser never sees them.
	filteredTokens := iter.NewIteratorFilter(ft, gdl.Filter[*gdl.Token](iter.FilterFunc[*gdl.Token](func(ctx context.Context, t *gdl.Token) bool {
		switch t.Type {
		case gdl.TokenTypeNewline, gdl.TokenTypeComment:
			return false
		default:
			return true
		}
	})))

	tokens := iter.NewLookahead(filteredTokens, 2)

	return &parserGrammarTokens{
		reporter: self.reporter,
		ctx:      ctx,
		tokens:   tokens,
		uri:      f.Path(ctx),
	}, nil
}

// Parse consumes the entire token stream and returns the grammar's rule
// records in source order. A nil grammar means at least one fault was
// reported and generation must not proceed.
func (self *ParserGrammar) Parse(ctx context.Context, f gdl.LexerFile) (*astGrammar, error) {
	pt, err := self.PrepareParse(ctx, f)
	if err != nil {
		return nil, err
	}
	return pt.parseGrammar(), nil
}

type parserGrammarTokens struct {
	reporter exc.Reporter
	ctx      context.Context
	uri      string
	// this is the .Span.End of the last successfully parsed token; we keep track of it
	// so that we can give a meaningful location to "unexpected EOF" errors.
	loc    gdl.Location
	tokens gdl.Lookahead[*gdl.Token]
}

func (p *parserGrammarTokens) report(code string, message string) {
	_ = p.reporter.Report(exc.New(exc.Location{
		URI:      p.uri,
		Location: p.loc,
	}, code, message))
}

func (p *parserGrammarTokens) advance() {
	maybeToken := p.tokens.Lookahead(p.ctx, 0)
	if maybeToken.IsPresent() {
		p.loc = *maybeToken.Value().Span.End
	}
	_ = p.tokens.Next(p.ctx)
}

func (p *parserGrammarTokens) peekN(n uint8) *gdl.Token {
	maybeToken := p.tokens.Lookahead(p.ctx, n)
	if !maybeToken.IsPresent() {
		return nil
	}
	return maybeToken.Value()
}

func (p *parserGrammarTokens) peek() *gdl.Token {
	return p.peekN(0)
}

// grammar := rule* EOF
func (p *parserGrammarTokens) parseGrammar() *astGrammar {
	this := astGrammar{uri: p.uri}
	for {
		maybeToken := p.peek()
		if maybeToken == nil || maybeToken.Type == gdl.TokenTypeEOF {
			break
		}
		// an empty clause contributes no rule
		if maybeToken.Type == gdl.TokenTypeSemicolon {
			p.advance()
			continue
		}
		maybeRule := p.parseRule()
		if maybeRule == nil {
			return nil
		}
		this.rules = append(this.rules, *maybeRule)
	}
	return &this
}

// rule := IDENTIFIER ':' field (',' field)* ';'
func (p *parserGrammarTokens) parseRule() *astRule {
	maybeName := p.peek()
	if maybeName == nil || maybeName.Type == gdl.TokenTypeEOF {
		p.report(exc.CodeUnexpectedEOF, "unexpected EOF (expecting a rule name)")
		return nil
	}
	if maybeName.Type != gdl.TokenTypeIdentifier {
		p.report(exc.CodeMalformedRule, fmt.Sprintf("unexpected %s (expecting a rule name)", maybeName.Value))
		return nil
	}
	p.advance()
	this := astRule{name: *maybeName}

	maybeToken := p.peek()
	if maybeToken == nil || maybeToken.Type == gdl.TokenTypeEOF {
		p.report(exc.CodeUnexpectedEOF, fmt.Sprintf("unexpected EOF in rule %s (expecting ':')", this.name.Value))
		return nil
	}
	if maybeToken.Type != gdl.TokenTypeColon {
		p.report(exc.CodeMalformedRule, fmt.Sprintf("missing ':' after rule name %s", this.name.Value))
		return nil
	}
	p.advance()

	for {
		maybeField := p.parseField(this.name.Value)
		if maybeField == nil {
			return nil
		}
		this.fields = append(this.fields, *maybeField)

		maybeToken = p.peek()
		if maybeToken == nil || maybeToken.Type == gdl.TokenTypeEOF {
			p.report(exc.CodeUnexpectedEOF, fmt.Sprintf("unexpected EOF in rule %s (expecting ',' or ';')", this.name.Value))
			return nil
		}
		if maybeToken.Type == gdl.TokenTypeSemicolon {
			p.advance()
			break
		}
		if maybeToken.Type != gdl.TokenTypeComma {
			p.report(exc.CodeMalformedRule, fmt.Sprintf("unexpected %s in rule %s (expecting ',' or ';')", maybeToken.Value, this.name.Value))
			return nil
		}
		p.advance()
	}
	return &this
}

// field := IDENTIFIER IDENTIFIER
func (p *parserGrammarTokens) parseField(ruleName string) *astField {
	maybeType := p.peek()
	if maybeType == nil || maybeType.Type == gdl.TokenTypeEOF {
		p.report(exc.CodeUnexpectedEOF, fmt.Sprintf("unexpected EOF in rule %s (expecting a field type)", ruleName))
		return nil
	}
	if maybeType.Type != gdl.TokenTypeIdentifier {
		p.report(exc.CodeMalformedField, fmt.Sprintf("unexpected %s in rule %s (expecting a field type)", maybeType.Value, ruleName))
		return nil
	}
	p.advance()

	maybeName := p.peek()
	if maybeName == nil || maybeName.Type == gdl.TokenTypeEOF {
		p.report(exc.CodeUnexpectedEOF, fmt.Sprintf("unexpected EOF in rule %s (expecting a field name)", ruleName))
		return nil
	}
	if maybeName.Type == gdl.TokenTypeColon {
		// A second ':' means the clause holds two name/field separators.
		p.report(exc.CodeMalformedRule, fmt.Sprintf("unexpected ':' in rule %s", ruleName))
		return nil
	}
	if maybeName.Type != gdl.TokenTypeIdentifier {
		p.report(exc.CodeMalformedField, fmt.Sprintf("field %s in rule %s is missing a name", maybeType.Value, ruleName))
		return nil
	}
	p.advance()

	return &astField{typeName: *maybeType, name: *maybeName}
}
