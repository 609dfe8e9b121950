package generator

import (
	"fmt"
	"strings"
)

// The generated declarations always land in the interpreter's package and
// always see the same imports. Both are fixed by the layout of the
// interpreter source tree, not by the grammar.
const (
	javaPackage = "com.craftinginterpreters.lox"
	javaImport  = "java.util.List"
)

// Emitter renders a parsed grammar as Java declarations: a base class, one
// nested subclass per rule, a constructor that assigns every field, and one
// public field per constructor parameter. Emission is a pure function of the
// base name and the rule sequence.
type Emitter struct {
	BaseName string
}

func (self *Emitter) Emit(grammar *astGrammar) string {
	var b strings.Builder
	fmt.Fprintf(&b, "package %s;\n\n", javaPackage)
	fmt.Fprintf(&b, "import %s;\n\n", javaImport)
	fmt.Fprintf(&b, "class %s {\n", self.BaseName)
	for _, rule := range grammar.rules {
		self.emitRule(&b, rule)
	}
	b.WriteString("}")
	return b.String()
}

func (self *Emitter) emitRule(b *strings.Builder, rule astRule) {
	fmt.Fprintf(b, "\tstatic class %s extends %s {\n", rule.name.Value, self.BaseName)

	params := make([]string, 0, len(rule.fields))
	for _, field := range rule.fields {
		params = append(params, field.typeName.Value+" "+field.name.Value)
	}
	fmt.Fprintf(b, "\t\tpublic %s(%s) {\n", rule.name.Value, strings.Join(params, ", "))
	for _, field := range rule.fields {
		fmt.Fprintf(b, "\t\t\tthis.%s = %s;\n", field.name.Value, field.name.Value)
	}
	b.WriteString("\t\t}\n")

	for _, field := range rule.fields {
		fmt.Fprintf(b, "\t\tpublic %s %s;\n", field.typeName.Value, field.name.Value)
	}
	b.WriteString("\t}\n")
}
