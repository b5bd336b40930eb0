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
	"slices"

	"github.com/consensys/go-deduce/pkg/term"
)

// Kind identifies the variant of a proposition.
type Kind uint8

// RELATION is an atomic formula, such as "x < y" or "P(x)".
const RELATION Kind = 0

// NOT is a logical negation "¬A".
const NOT Kind = 1

// AND is a conjunction of two or more propositions.
const AND Kind = 2

// OR is a disjunction of two or more propositions.
const OR Kind = 3

// EXOR is an exclusive disjunction of two or more propositions, which holds
// when exactly one of them holds.
const EXOR Kind = 4

// IMPLIES is a logical implication "A → B".
const IMPLIES Kind = 5

// IFF is a biconditional "A ↔ B".
const IFF Kind = 6

// FORALL is a universal quantification "∀x. A".
const FORALL Kind = 7

// FORALL_IN_SET is a universal quantification restricted to the elements of
// a set, "∀x∈S. A".  This is equivalent to "∀x. x∈S → A".
const FORALL_IN_SET Kind = 8

// EXISTS is an existential quantification "∃x. A".
const EXISTS Kind = 9

// EXISTS_IN_SET is an existential quantification restricted to the elements
// of a set, "∃x∈S. A".  This is equivalent to "∃x. x∈S ∧ A".
const EXISTS_IN_SET Kind = 10

// CONTRADICTION is the sentinel "⊥" which can only arise from a set of
// conflicting assumptions.
const CONTRADICTION Kind = 11

func (k Kind) String() string {
	switch k {
	case RELATION:
		return "relation"
	case NOT:
		return "not"
	case AND:
		return "and"
	case OR:
		return "or"
	case EXOR:
		return "exor"
	case IMPLIES:
		return "implies"
	case IFF:
		return "iff"
	case FORALL:
		return "forall"
	case FORALL_IN_SET:
		return "forall-in-set"
	case EXISTS:
		return "exists"
	case EXISTS_IN_SET:
		return "exists-in-set"
	case CONTRADICTION:
		return "contradiction"
	default:
		return "unknown"
	}
}

// IsQuantifier checks whether this is one of the four quantifier kinds.
func (k Kind) IsQuantifier() bool {
	return k >= FORALL && k <= EXISTS_IN_SET
}

// IsJunction checks whether this is an n-ary connective.
func (k Kind) IsJunction() bool {
	return k == AND || k == OR || k == EXOR
}

// Proposition is a statement which can be true or false, represented as a
// tree of variants.  Propositions are immutable from outside this package:
// tactics always return fresh instances.  A proposition is considered proven
// only if it was produced by a session constructor which attached a validated
// inference, or if it was marked as an assumption.
type Proposition struct {
	kind Kind
	// Name of relation (for RELATION only).
	name string
	// Arguments of relation (for RELATION only).
	args []term.Term
	// Child propositions (connectives and quantifiers).
	children []*Proposition
	// Bound variable (quantifiers only).
	variable *term.Variable
	// Domain of quantification (in-set quantifiers only).
	set term.Term
	// Provenance
	assumption      bool
	proven          bool
	deducedFrom     *Inference
	fromAssumptions []*Proposition
}

// Kind returns the variant of this proposition.
func (p *Proposition) Kind() Kind {
	return p.kind
}

// Name returns the name of this relation, or the empty string for any other
// kind of proposition.
func (p *Proposition) Name() string {
	return p.name
}

// Args returns the arguments of this relation.
func (p *Proposition) Args() []term.Term {
	return p.args
}

// Lhs returns the left-hand side of a binary relation.
func (p *Proposition) Lhs() term.Term {
	if p.kind != RELATION || len(p.args) != 2 {
		panic("not a binary relation")
	}
	//
	return p.args[0]
}

// Rhs returns the right-hand side of a binary relation.
func (p *Proposition) Rhs() term.Term {
	if p.kind != RELATION || len(p.args) != 2 {
		panic("not a binary relation")
	}
	//
	return p.args[1]
}

// IsBinary checks whether this is a binary relation.
func (p *Proposition) IsBinary() bool {
	return p.kind == RELATION && len(p.args) == 2
}

// IsRelation checks whether this is a binary relation with the given name.
func (p *Proposition) IsRelation(name string) bool {
	return p.IsBinary() && p.name == name
}

// Children returns the immediate sub-propositions of this proposition.
func (p *Proposition) Children() []*Proposition {
	return p.children
}

// Left returns the antecedent of an implication, or the left-hand side of a
// biconditional.
func (p *Proposition) Left() *Proposition {
	return p.children[0]
}

// Right returns the consequent of an implication, or the right-hand side of a
// biconditional.
func (p *Proposition) Right() *Proposition {
	return p.children[1]
}

// Antecedent returns the left-hand side of an implication.
func (p *Proposition) Antecedent() *Proposition {
	if p.kind != IMPLIES {
		panic("not an implication")
	}
	//
	return p.children[0]
}

// Consequent returns the right-hand side of an implication.
func (p *Proposition) Consequent() *Proposition {
	if p.kind != IMPLIES {
		panic("not an implication")
	}
	//
	return p.children[1]
}

// Inner returns the negated proposition of a negation, or the body of a
// quantifier.
func (p *Proposition) Inner() *Proposition {
	return p.children[0]
}

// Variable returns the variable bound by a quantifier.
func (p *Proposition) Variable() *term.Variable {
	return p.variable
}

// Set returns the domain of an in-set quantifier.
func (p *Proposition) Set() term.Term {
	return p.set
}

// IsAssumption checks whether this proposition is currently assumed to hold.
func (p *Proposition) IsAssumption() bool {
	return p.assumption
}

// IsProven checks whether this proposition has been proven, or is currently
// assumed.
func (p *Proposition) IsProven() bool {
	return p.proven || p.assumption
}

// DeducedFrom returns the inference which justifies this proposition, or nil
// if it was not produced by a tactic.
func (p *Proposition) DeducedFrom() *Inference {
	return p.deducedFrom
}

// FromAssumptions returns the set of assumptions on which this proposition
// depends.
func (p *Proposition) FromAssumptions() []*Proposition {
	return p.fromAssumptions
}

// Equal checks whether this proposition is structurally equal to another.
func (p *Proposition) Equal(other *Proposition) bool {
	return Equal(p, other)
}

// Strip returns an unproven copy of this proposition.  The copy shares its
// children with the original.
func (p *Proposition) Strip() *Proposition {
	return &Proposition{
		kind:     p.kind,
		name:     p.name,
		args:     p.args,
		children: p.children,
		variable: p.variable,
		set:      p.set,
	}
}

// Contains checks whether a given term occurs (free) within this proposition.
func (p *Proposition) Contains(t term.Term) bool {
	switch p.kind {
	case RELATION:
		for _, arg := range p.args {
			if arg.Contains(t) {
				return true
			}
		}
		//
		return false
	case FORALL_IN_SET, EXISTS_IN_SET:
		if p.set.Contains(t) {
			return true
		}
	}
	//
	if p.variable != nil && t.Contains(p.variable) {
		// Occurrences of the bound variable are not free.
		return false
	}
	//
	for _, child := range p.children {
		if child.Contains(t) {
			return true
		}
	}
	//
	return false
}

// FreeVariables returns the variables which occur free in this proposition,
// in the order they are first encountered.
func (p *Proposition) FreeVariables() []*term.Variable {
	return freeVariables(nil, p, nil)
}

func freeVariables(vars []*term.Variable, p *Proposition, bound []*term.Variable) []*term.Variable {
	switch p.kind {
	case RELATION:
		for _, arg := range p.args {
			for _, v := range term.Variables(arg) {
				if !slices.Contains(bound, v) && !slices.Contains(vars, v) {
					vars = append(vars, v)
				}
			}
		}
		//
		return vars
	case FORALL_IN_SET, EXISTS_IN_SET:
		for _, v := range term.Variables(p.set) {
			if !slices.Contains(bound, v) && !slices.Contains(vars, v) {
				vars = append(vars, v)
			}
		}
	}
	//
	if p.variable != nil {
		bound = append(slices.Clone(bound), p.variable)
	}
	//
	for _, child := range p.children {
		vars = freeVariables(vars, child, bound)
	}
	//
	return vars
}

// Binds checks whether this proposition contains a quantifier which binds the
// given variable.
func (p *Proposition) Binds(v *term.Variable) bool {
	if p.variable == v {
		return true
	}
	//
	for _, child := range p.children {
		if child.Binds(v) {
			return true
		}
	}
	//
	return false
}

// Equal checks whether two propositions are structurally equal.  That is, they
// are the same variant and their children are equal, compared positionally.
// Provenance is ignored.  Quantifiers compare only their inner propositions
// (and domains), never the identity of their bound variables.
func Equal(lhs *Proposition, rhs *Proposition) bool {
	if lhs == rhs {
		return true
	} else if lhs == nil || rhs == nil || lhs.kind != rhs.kind || len(lhs.children) != len(rhs.children) {
		return false
	}
	//
	switch lhs.kind {
	case RELATION:
		return lhs.name == rhs.name && term.EqualAll(lhs.args, rhs.args)
	case FORALL_IN_SET, EXISTS_IN_SET:
		if !lhs.set.Equal(rhs.set) {
			return false
		}
	}
	//
	for i := range lhs.children {
		if !Equal(lhs.children[i], rhs.children[i]) {
			return false
		}
	}
	//
	return true
}

// IndexOf returns the index of the first proposition in a given array which is
// structurally equal to p, or -1 if none is.
func IndexOf(props []*Proposition, p *Proposition) int {
	for i, q := range props {
		if Equal(p, q) {
			return i
		}
	}
	//
	return -1
}
