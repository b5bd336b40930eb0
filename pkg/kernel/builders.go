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
	"fmt"

	"github.com/consensys/go-deduce/pkg/term"
)

// EQUALS is the name of the equality relation.
const EQUALS = "="

// NOT_EQUALS is the name of the non-equality relation.
const NOT_EQUALS = "≠"

// LESS_THAN is the name of the strict ordering relation.
const LESS_THAN = "<"

// LESS_THAN_EQUALS is the name of the non-strict ordering relation.
const LESS_THAN_EQUALS = "<="

// GREATER_THAN is the name of the (reversed) strict ordering relation.
const GREATER_THAN = ">"

// GREATER_THAN_EQUALS is the name of the (reversed) non-strict ordering
// relation.
const GREATER_THAN_EQUALS = ">="

// ELEMENT_OF is the name of the set membership relation.
const ELEMENT_OF = "∈"

// Rel constructs an atomic relation over zero or more terms (e.g. "P(x)").
// The result is unproven.
func Rel(name string, args ...term.Term) *Proposition {
	return &Proposition{kind: RELATION, name: name, args: args}
}

// Eq constructs the equality "lhs = rhs".
func Eq(lhs term.Term, rhs term.Term) *Proposition {
	return Rel(EQUALS, lhs, rhs)
}

// Neq constructs the non-equality "lhs ≠ rhs".
func Neq(lhs term.Term, rhs term.Term) *Proposition {
	return Rel(NOT_EQUALS, lhs, rhs)
}

// Lt constructs the strict inequality "lhs < rhs".
func Lt(lhs term.Term, rhs term.Term) *Proposition {
	return Rel(LESS_THAN, lhs, rhs)
}

// Le constructs the non-strict inequality "lhs <= rhs".
func Le(lhs term.Term, rhs term.Term) *Proposition {
	return Rel(LESS_THAN_EQUALS, lhs, rhs)
}

// Gt constructs the strict inequality "lhs > rhs".
func Gt(lhs term.Term, rhs term.Term) *Proposition {
	return Rel(GREATER_THAN, lhs, rhs)
}

// Ge constructs the non-strict inequality "lhs >= rhs".
func Ge(lhs term.Term, rhs term.Term) *Proposition {
	return Rel(GREATER_THAN_EQUALS, lhs, rhs)
}

// In constructs the set membership "element ∈ set".
func In(element term.Term, set term.Term) *Proposition {
	return Rel(ELEMENT_OF, element, set)
}

// Not constructs the negation of a proposition.
func Not(p *Proposition) *Proposition {
	return &Proposition{kind: NOT, children: []*Proposition{p}}
}

// And constructs the conjunction of two or more propositions.  This panics if
// fewer than two propositions are given, see Conjunction for a factory which
// accepts a single argument.
func And(props ...*Proposition) *Proposition {
	return junction(AND, props)
}

// Or constructs the disjunction of two or more propositions.  This panics if
// fewer than two propositions are given, see Disjunction for a factory which
// accepts a single argument.
func Or(props ...*Proposition) *Proposition {
	return junction(OR, props)
}

// ExOr constructs the exclusive disjunction of two or more propositions.  This
// panics if fewer than two propositions are given.
func ExOr(props ...*Proposition) *Proposition {
	return junction(EXOR, props)
}

// Conjunction returns the single proposition given, or the conjunction of all
// propositions given when there are two or more.
func Conjunction(props ...*Proposition) *Proposition {
	if len(props) == 1 {
		return props[0]
	}
	//
	return And(props...)
}

// Disjunction returns the single proposition given, or the disjunction of all
// propositions given when there are two or more.
func Disjunction(props ...*Proposition) *Proposition {
	if len(props) == 1 {
		return props[0]
	}
	//
	return Or(props...)
}

// Implies constructs the implication "antecedent → consequent".
func Implies(antecedent *Proposition, consequent *Proposition) *Proposition {
	return &Proposition{kind: IMPLIES, children: []*Proposition{antecedent, consequent}}
}

// Iff constructs the biconditional "lhs ↔ rhs".
func Iff(lhs *Proposition, rhs *Proposition) *Proposition {
	return &Proposition{kind: IFF, children: []*Proposition{lhs, rhs}}
}

// Forall constructs the universal quantification "∀v. inner".  This panics if
// inner already binds v.
func Forall(v *term.Variable, inner *Proposition) *Proposition {
	return quantifier(FORALL, v, nil, inner)
}

// ForallIn constructs the universal quantification "∀v∈set. inner".  This
// panics if inner already binds v, or if the set mentions v.
func ForallIn(v *term.Variable, set term.Term, inner *Proposition) *Proposition {
	return quantifier(FORALL_IN_SET, v, set, inner)
}

// Exists constructs the existential quantification "∃v. inner".  This panics
// if inner already binds v.
func Exists(v *term.Variable, inner *Proposition) *Proposition {
	return quantifier(EXISTS, v, nil, inner)
}

// ExistsIn constructs the existential quantification "∃v∈set. inner".  This
// panics if inner already binds v, or if the set mentions v.
func ExistsIn(v *term.Variable, set term.Term, inner *Proposition) *Proposition {
	return quantifier(EXISTS_IN_SET, v, set, inner)
}

func junction(kind Kind, props []*Proposition) *Proposition {
	if len(props) < 2 {
		panic(&StructureError{kind, fmt.Sprintf("requires at least two children (found %d)", len(props))})
	}
	//
	for _, p := range props {
		if p == nil {
			panic(&StructureError{kind, "nil child"})
		}
	}
	//
	return &Proposition{kind: kind, children: props}
}

func quantifier(kind Kind, v *term.Variable, set term.Term, inner *Proposition) *Proposition {
	switch {
	case v == nil:
		panic(&StructureError{kind, "missing bound variable"})
	case inner.Binds(v):
		panic(&StructureError{kind, fmt.Sprintf("variable %s already bound in %s", v, inner)})
	case set != nil && set.Contains(v):
		panic(&StructureError{kind, fmt.Sprintf("domain %s mentions bound variable %s", set, v)})
	}
	//
	return &Proposition{kind: kind, variable: v, set: set, children: []*Proposition{inner}}
}

// Body returns the statement quantified over by an in-set quantifier when
// written without the domain sugar.  That is, "∀x∈S. A" gives "x∈S → A" and
// "∃x∈S. A" gives "x∈S ∧ A".  Any other proposition is returned unchanged.
func (p *Proposition) Body() *Proposition {
	switch p.kind {
	case FORALL_IN_SET:
		return Implies(In(p.variable, p.set), p.Inner())
	case EXISTS_IN_SET:
		return And(In(p.variable, p.set), p.Inner())
	case FORALL, EXISTS:
		return p.Inner()
	default:
		return p
	}
}
