// SPDX-License-Identifier: MIT
//
// File: grammar.go
// Role: participle grammar of term formulas, e.g.
//
//	edges + sum(pow = 2) + greaterthan(2) + equalto(1, tolerance = 0.5)

package formula

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var formulaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Number", Pattern: `(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Punct", Pattern: `[-+(),=]`},
	{Name: "whitespace", Pattern: `\s+`},
})

var parseFormula = participle.MustBuild[Formula](
	participle.Lexer(formulaLexer),
	participle.Unquote("String"),
)

// Formula is a parsed "term + term + ..." expression.
type Formula struct {
	Terms []*Call `parser:"@@ ( \"+\" @@ )*"`
}

// Call is one term reference with optional arguments.
type Call struct {
	Pos  lexer.Position
	Name string `parser:"@Ident"`
	Args []*Arg `parser:"( \"(\" ( @@ ( \",\" @@ )* )? \")\" )?"`
}

// Arg is a positional or named (key = value) argument.
type Arg struct {
	Key   string `parser:"( @Ident \"=\" )?"`
	Value *Value `parser:"@@"`
}

// Value is a number or a double-quoted string.
type Value struct {
	Number *Number `parser:"  @@"`
	String *string `parser:"| @String"`
}

// Number is a possibly negated numeric literal.
type Number struct {
	Neg   bool    `parser:"@\"-\"?"`
	Value float64 `parser:"@Number"`
}

// Float returns the signed value.
func (n *Number) Float() float64 {
	if n.Neg {
		return -n.Value
	}

	return n.Value
}

// String renders f in canonical spacing.
func (f *Formula) String() string {
	parts := make([]string, len(f.Terms))
	for i, c := range f.Terms {
		parts[i] = c.String()
	}

	return strings.Join(parts, " + ")
}

// String renders c as name or name(arg, ...).
func (c *Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		var v string
		if a.Value.String != nil {
			v = strconv.Quote(*a.Value.String)
		} else {
			v = strconv.FormatFloat(a.Value.Number.Float(), 'g', -1, 64)
		}
		if a.Key != "" {
			v = a.Key + " = " + v
		}
		args[i] = v
	}

	return c.Name + "(" + strings.Join(args, ", ") + ")"
}
