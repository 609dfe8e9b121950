package generator

import (
	"fmt"

	"gopkg.microglot.org/astgen/internal/exc"
	"gopkg.microglot.org/astgen/internal/gdl"
)

// check() applies name validation to a parsed grammar.
// reports: duplicate rule names, duplicate field names within a rule
func check(grammar *astGrammar, reporter exc.Reporter) {
	checker := grammarChecker{
		grammar:  grammar,
		reporter: reporter,
	}
	checker.check()
}

type grammarChecker struct {
	grammar  *astGrammar
	reporter exc.Reporter
}

func (c *grammarChecker) check() {
	ruleNames := make(map[string]bool, len(c.grammar.rules))
	for _, rule := range c.grammar.rules {
		if ruleNames[rule.name.Value] {
			c.report(rule.name, fmt.Sprintf("duplicate rule name %s", rule.name.Value))
		}
		ruleNames[rule.name.Value] = true

		fieldNames := make(map[string]bool, len(rule.fields))
		for _, field := range rule.fields {
			if fieldNames[field.name.Value] {
				c.report(field.name, fmt.Sprintf("duplicate field name %s in rule %s", field.name.Value, rule.name.Value))
			}
			fieldNames[field.name.Value] = true
		}
	}
}

func (c *grammarChecker) report(tok gdl.Token, message string) {
	loc := gdl.Location{}
	if tok.Span != nil && tok.Span.Start != nil {
		loc = *tok.Span.Start
	}
	_ = c.reporter.Report(exc.New(exc.Location{
		URI:      c.grammar.uri,
		Location: loc,
	}, exc.CodeDuplicateName, message))
}
