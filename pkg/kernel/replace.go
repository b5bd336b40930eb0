// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package kernel

import (
	"github.com/consensys/go-deduce/pkg/term"
)

// Path identifies a position within a proposition as a sequence of child
// indices.  Within a relation, the first index selects an argument and any
// further indices select sub-terms of that argument.  Quantifiers do not
// consume an index: paths pass straight through to their inner proposition.
type Path []int

// Replace every occurrence of old with new in this proposition.  If one or more
// paths are given, then only the occurrences at those positions are replaced.
// The result is always unproven, since substitution is not itself a sound
// inference.  Variables bound by a quantifier are never replaced.
func (p *Proposition) Replace(old term.Term, new term.Term, paths ...Path) *Proposition {
	return replace(p, old, new, paths)
}

func replace(p *Proposition, old term.Term, new term.Term, paths []Path) *Proposition {
	var all = replaceAll(paths)
	//
	switch p.kind {
	case RELATION:
		args := make([]term.Term, len(p.args))
		copy(args, p.args)
		//
		if all {
			for i, arg := range args {
				args[i] = arg.Replace(old, new)
			}
		} else {
			for _, path := range paths {
				if path[0] >= 0 && path[0] < len(args) {
					args[path[0]] = replaceTerm(args[path[0]], old, new, path[1:])
				}
			}
		}
		//
		return Rel(p.name, args...)
	case FORALL, FORALL_IN_SET, EXISTS, EXISTS_IN_SET:
		var (
			q   = p.Strip()
			set = p.set
		)
		// Bound variables are never a target of substitution.
		if old.Equal(p.variable) {
			return q
		} else if set != nil && all {
			set = set.Replace(old, new)
		}
		//
		q.set = set
		q.children = []*Proposition{replace(p.Inner(), old, new, paths)}
		//
		return q
	case CONTRADICTION:
		return p.Strip()
	}
	// Connectives partition paths by child.
	var (
		q        = p.Strip()
		children = make([]*Proposition, len(p.children))
	)
	//
	for i, child := range p.children {
		if all {
			children[i] = replace(child, old, new, nil)
		} else if ith := pathsFor(i, paths); len(ith) > 0 {
			children[i] = replace(child, old, new, ith)
		} else {
			children[i] = child
		}
	}
	//
	q.children = children
	//
	return q
}

// Paths are interpreted as "replace everything" when none are given, or when
// any path given is empty (i.e. identifies the whole proposition).
func replaceAll(paths []Path) bool {
	if len(paths) == 0 {
		return true
	}
	//
	for _, path := range paths {
		if len(path) == 0 {
			return true
		}
	}
	//
	return false
}

// Extract those paths which target the ith child, dropping the leading index.
func pathsFor(i int, paths []Path) []Path {
	var ith []Path
	//
	for _, path := range paths {
		if path[0] == i {
			ith = append(ith, path[1:])
		}
	}
	//
	return ith
}

func replaceTerm(t term.Term, old term.Term, new term.Term, path Path) term.Term {
	if len(path) == 0 {
		return t.Replace(old, new)
	} else if app, ok := t.(*term.Apply); ok {
		var args = make([]term.Term, len(app.Args()))
		//
		copy(args, app.Args())
		//
		if i := path[0]; i >= 0 && i < len(args) {
			args[i] = replaceTerm(args[i], old, new, path[1:])
		}
		//
		return term.NewApply(app.Head(), args...)
	}
	//
	return t
}

// Substitution is an ordered mapping from variables to terms.
type Substitution []Binding

// Binding associates a variable with the term it should be replaced by.
type Binding struct {
	Variable *term.Variable
	Term     term.Term
}

// Lookup the term bound to a given variable, if any.
func (s Substitution) Lookup(v *term.Variable) (term.Term, bool) {
	for _, b := range s {
		if b.Variable == v {
			return b.Term, true
		}
	}
	//
	return nil, false
}

// Apply this substitution to a given proposition, producing an unproven copy.
// All bindings are applied simultaneously, so a term introduced by one binding
// is never rewritten by another.  Variables bound by a quantifier are never
// replaced.
func (s Substitution) Apply(p *Proposition) *Proposition {
	switch p.kind {
	case RELATION:
		args := make([]term.Term, len(p.args))
		//
		for i, arg := range p.args {
			args[i] = s.ApplyTerm(arg)
		}
		//
		return Rel(p.name, args...)
	case FORALL, FORALL_IN_SET, EXISTS, EXISTS_IN_SET:
		q := p.Strip()
		// The set lies outside the scope of the bound variable.
		if p.set != nil {
			q.set = s.ApplyTerm(p.set)
		}
		//
		q.children = []*Proposition{s.without(p.variable).Apply(p.Inner())}
		//
		return q
	}
	//
	var (
		q        = p.Strip()
		children = make([]*Proposition, len(p.children))
	)
	//
	for i, child := range p.children {
		children[i] = s.Apply(child)
	}
	//
	q.children = children
	//
	return q
}

// ApplyTerm applies this substitution to a given term, again simultaneously.
func (s Substitution) ApplyTerm(t term.Term) term.Term {
	switch t := t.(type) {
	case *term.Variable:
		if r, ok := s.Lookup(t); ok {
			return r
		}
	case *term.Apply:
		args := make([]term.Term, len(t.Args()))
		//
		for i, arg := range t.Args() {
			args[i] = s.ApplyTerm(arg)
		}
		//
		return term.NewApply(t.Head(), args...)
	}
	//
	return t
}

// Drop any binding for a given variable.
func (s Substitution) without(v *term.Variable) Substitution {
	var r Substitution
	//
	for _, b := range s {
		if b.Variable != v {
			r = append(r, b)
		}
	}
	//
	return r
}
