// SPDX-License-Identifier: MIT

// Package formula parses term formulas such as "edges + greaterthan(2)" and
// compiles them into fresh term instances bound to a network.
package formula

import (
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/katalvlaran/wtsan/network"
	"github.com/katalvlaran/wtsan/term"
)

// ErrSyntax indicates a formula that does not parse or repeats a named argument.
var ErrSyntax = errors.New("formula: syntax error")

// Parse parses src.
func Parse(src string) (*Formula, error) {
	f, err := parseFormula.ParseString("", src)
	if err != nil {
		return nil, pkgerrors.Wrapf(ErrSyntax, "%v", err)
	}

	return f, nil
}

// Compile instantiates every term of f for net, in formula order, followed by
// the auxiliary terms they require that f does not declare. Each call returns
// new instances.
func Compile(f *Formula, net *network.Network) ([]term.Term, error) {
	terms := make([]term.Term, 0, len(f.Terms))
	for _, c := range f.Terms {
		t, err := instantiate(c, net)
		if err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}

	return withAuxiliaries(terms, net)
}

// Build parses and compiles src.
func Build(src string, net *network.Network) ([]term.Term, error) {
	f, err := Parse(src)
	if err != nil {
		return nil, err
	}

	return Compile(f, net)
}

func instantiate(c *Call, net *network.Network) (term.Term, error) {
	factory, err := term.Lookup(c.Name)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "%s", c.Pos)
	}
	args, err := convertArgs(c)
	if err != nil {
		return nil, err
	}
	t, err := factory(net, args)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "%s", c.Pos)
	}

	return t, nil
}

func convertArgs(c *Call) (term.Args, error) {
	var args term.Args
	for _, a := range c.Args {
		v := term.Value{}
		if a.Value.String != nil {
			v = term.Value{Str: *a.Value.String, IsStr: true}
		} else {
			v.Num = a.Value.Number.Float()
		}
		if a.Key == "" {
			args.Pos = append(args.Pos, v)
			continue
		}
		if args.Named == nil {
			args.Named = make(map[string]term.Value)
		}
		if _, dup := args.Named[a.Key]; dup {
			return term.Args{}, pkgerrors.Wrapf(ErrSyntax, "%s: %s: argument %q repeated", c.Pos, c.Name, a.Key)
		}
		args.Named[a.Key] = v
	}

	return args, nil
}

// withAuxiliaries appends one registry instance per required but undeclared
// auxiliary key, resolving the requirements of appended terms as well.
func withAuxiliaries(terms []term.Term, net *network.Network) ([]term.Term, error) {
	provided := make(map[string]bool)
	for _, t := range terms {
		if p, ok := t.(term.AuxProvider); ok {
			provided[p.AuxKey()] = true
		}
	}

	for i := 0; i < len(terms); i++ {
		c, ok := terms[i].(term.AuxConsumer)
		if !ok {
			continue
		}
		for _, key := range c.Requires() {
			if provided[key] {
				continue
			}
			factory, err := term.Lookup(key)
			if err != nil {
				return nil, pkgerrors.Wrapf(term.ErrConfiguration, "%s requires aux %q: %v", terms[i].Name(), key, err)
			}
			aux, err := factory(net, term.Args{})
			if err != nil {
				return nil, pkgerrors.Wrapf(err, "aux %q", key)
			}
			provided[key] = true
			terms = append(terms, aux)
		}
	}

	return terms, nil
}
