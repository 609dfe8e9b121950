package generator

import (
	"fmt"
	"strings"

	"gopkg.microglot.org/astgen/internal/gdl"
)

// interface for all grammar nodes
type node interface {
	node()
}

type astGrammar struct {
	uri   string
	rules []astRule
}

func (astGrammar) node() {}

func (self astGrammar) String() string {
	var b strings.Builder
	for _, rule := range self.rules {
		fmt.Fprintf(&b, "%s\n", rule)
	}
	return b.String()
}

type astRule struct {
	name   gdl.Token
	fields []astField
}

func (astRule) node() {}

func (self astRule) String() string {
	fields := make([]string, 0, len(self.fields))
	for _, field := range self.fields {
		fields = append(fields, field.String())
	}
	return fmt.Sprintf("%s : %s;", self.name.Value, strings.Join(fields, ", "))
}

type astField struct {
	typeName gdl.Token
	name     gdl.Token
}

func (astField) node() {}

func (self astField) String() string {
	return self.typeName.Value + " " + self.name.Value
}
