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

// PROPER_SUBSET is the name of the strict subset relation.
const PROPER_SUBSET = "⊂"

// SUBSET is the name of the (non-strict) subset relation.
const SUBSET = "⊆"

// PROPER_SUPERSET is the name of the strict superset relation.
const PROPER_SUPERSET = "⊃"

// SUPERSET is the name of the (non-strict) superset relation.
const SUPERSET = "⊇"

// Order describes a family of relations which are transitive, and related by
// strictness and direction.  For example, "<" is the strict ascending
// relation of the numeric family, whilst ">=" is its non-strict descending
// relation.
type Order struct {
	Equals        string
	Less          string
	LessEquals    string
	Greater       string
	GreaterEquals string
}

// NumericOrder is the usual ordering of numbers.
var NumericOrder = Order{EQUALS, LESS_THAN, LESS_THAN_EQUALS, GREATER_THAN, GREATER_THAN_EQUALS}

// SubsetOrder is the inclusion ordering of sets.
var SubsetOrder = Order{EQUALS, PROPER_SUBSET, SUBSET, PROPER_SUPERSET, SUPERSET}

// link describes how a single relation participates in a chain.
type link struct {
	// Direction: 0 for equality, 1 for ascending and -1 for descending.
	direction int
	strict    bool
}

// Classify a relation name within this order.
func (o Order) classify(name string) (link, bool) {
	switch name {
	case o.Equals:
		return link{0, false}, true
	case o.Less:
		return link{1, true}, true
	case o.LessEquals:
		return link{1, false}, true
	case o.Greater:
		return link{-1, true}, true
	case o.GreaterEquals:
		return link{-1, false}, true
	default:
		return link{}, false
	}
}

// Contains checks whether a relation name belongs to this order.
func (o Order) Contains(name string) bool {
	_, ok := o.classify(name)
	return ok
}

// Flip returns the relation which holds with its arguments swapped.  For
// example, "<" becomes ">".  Equality flips to itself.
func (o Order) Flip(name string) (string, bool) {
	switch name {
	case o.Equals:
		return o.Equals, true
	case o.Less:
		return o.Greater, true
	case o.LessEquals:
		return o.GreaterEquals, true
	case o.Greater:
		return o.Less, true
	case o.GreaterEquals:
		return o.LessEquals, true
	default:
		return "", false
	}
}

// Transitive chains proven binary relations from the session's order, whose
// right and left sides match consecutively, to derive the relation "want"
// between the first left-hand side and the last right-hand side.
func (s *Session) Transitive(want string, chain ...*Proposition) (*Proposition, error) {
	return s.TransitiveIn(s.order, want, chain...)
}

// TransitiveIn chains relations drawn from a given order.  The result is
// strict if any link is strict.  Ascending and descending links cannot be
// mixed, although equalities can appear anywhere.  A strict conclusion
// requires at least one strict link, an equality requires every link to be an
// equality, and the conclusion's direction must agree with the chain's.
func (s *Session) TransitiveIn(order Order, want string, chain ...*Proposition) (*Proposition, error) {
	goal, ok := order.classify(want)
	//
	if !ok {
		return nil, failuref(TRANSITIVE, chain, "relation %s not in order", want)
	} else if len(chain) == 0 {
		return nil, failure(TRANSITIVE, "empty chain")
	} else if err := requireProven(TRANSITIVE, chain...); err != nil {
		return nil, err
	}
	//
	var (
		direction int
		strict    bool
	)
	//
	for i, r := range chain {
		if !r.IsBinary() {
			return nil, failure(TRANSITIVE, "expected binary relation", r)
		} else if i > 0 && !chain[i-1].Rhs().Equal(r.Lhs()) {
			return nil, failure(TRANSITIVE, "links are not consecutive", chain[i-1], r)
		}
		//
		l, ok := order.classify(r.name)
		//
		switch {
		case !ok:
			return nil, failuref(TRANSITIVE, []*Proposition{r}, "relation %s not in order", r.name)
		case l.direction != 0 && direction != 0 && l.direction != direction:
			return nil, failure(TRANSITIVE, "cannot mix ascending and descending links", chain...)
		case l.direction != 0:
			direction = l.direction
		}
		//
		strict = strict || l.strict
	}
	//
	switch {
	case goal.direction == 0 && direction != 0:
		return nil, failure(TRANSITIVE, "equality requires a chain of equalities", chain...)
	case goal.direction != 0 && direction != 0 && goal.direction != direction:
		return nil, failuref(TRANSITIVE, chain, "chain does not establish %s", want)
	case goal.strict && !strict:
		return nil, failuref(TRANSITIVE, chain, "%s requires at least one strict link", want)
	}
	//
	var (
		first  = chain[0]
		last   = chain[len(chain)-1]
		result = Rel(want, first.Lhs(), last.Rhs())
		others = make([]any, len(chain)-1)
	)
	//
	for i, r := range chain[1:] {
		others[i] = r
	}
	//
	return s.certify(result, inference(TRANSITIVE, first, others...), chain...), nil
}

// Reflexivity derives t = t.
func (s *Session) Reflexivity(t term.Term) *Proposition {
	return s.certify(Eq(t, t), inference(REFLEXIVITY, nil, t))
}

// Symmetry flips a proven binary relation from the session's order, or a
// proven disequality, by swapping its arguments.  For example, a < b becomes
// b > a and a = b becomes b = a.
func (s *Session) Symmetry(r *Proposition) (*Proposition, error) {
	if err := requireProven(SYMMETRY, r); err != nil {
		return nil, err
	} else if !r.IsBinary() {
		return nil, failure(SYMMETRY, "expected binary relation", r)
	}
	//
	name, ok := s.order.Flip(r.name)
	//
	if r.name == NOT_EQUALS {
		name, ok = NOT_EQUALS, true
	}
	//
	if !ok {
		return nil, failuref(SYMMETRY, []*Proposition{r}, "relation %s is not symmetric", r.name)
	}
	//
	return s.certify(Rel(name, r.Rhs(), r.Lhs()), inference(SYMMETRY, r), r), nil
}

// Substitute rewrites a proven proposition using a proven equality a = b,
// replacing occurrences of a with b.  When paths are given only the
// occurrences at those positions are rewritten.  This fails if nothing is
// rewritten.
func (s *Session) Substitute(eq *Proposition, p *Proposition, paths ...Path) (*Proposition, error) {
	if err := requireProven(SUBSTITUTE, eq, p); err != nil {
		return nil, err
	} else if !eq.IsRelation(EQUALS) {
		return nil, failure(SUBSTITUTE, "expected equality", eq)
	}
	//
	q := p.Replace(eq.Lhs(), eq.Rhs(), paths...)
	//
	if Equal(p, q) && !eq.Lhs().Equal(eq.Rhs()) {
		return nil, failure(SUBSTITUTE, "left-hand side does not occur", eq, p)
	}
	//
	return s.certify(q, inference(SUBSTITUTE, eq, p), eq, p), nil
}

// BySimplification proves a relation between two terms by normalising their
// difference.  This supports equalities, disequalities, negated equalities and
// the relations of the numeric order.  It fails if the simplifier cannot
// decide the relation, or decides that it does not hold.
func (s *Session) BySimplification(r *Proposition) (*Proposition, error) {
	var (
		target = r
		negate = false
	)
	//
	if r.kind == NOT {
		target, negate = r.Inner(), true
	}
	//
	if !target.IsBinary() {
		return nil, failure(BY_SIMPLIFICATION, "expected binary relation", r)
	}
	//
	holds, ok := decide(target)
	//
	switch {
	case !ok:
		return nil, failure(BY_SIMPLIFICATION, "cannot decide", r)
	case holds == negate:
		return nil, failure(BY_SIMPLIFICATION, "does not hold", r)
	}
	//
	return s.certify(r, inference(BY_SIMPLIFICATION, nil, target.Lhs(), target.Rhs())), nil
}

// Determine whether a binary relation holds using the term simplifier.
func decide(r *Proposition) (holds bool, ok bool) {
	switch r.name {
	case EQUALS, NOT_EQUALS:
		d := term.SimplifyEqual(r.Lhs(), r.Rhs())
		//
		if d == term.Unknown {
			return false, false
		}
		//
		return (d == term.True) == (r.name == EQUALS), true
	}
	//
	sign, ok := term.SimplifyCompare(r.Lhs(), r.Rhs())
	//
	if !ok {
		return false, false
	}
	//
	switch r.name {
	case LESS_THAN:
		return sign < 0, true
	case LESS_THAN_EQUALS:
		return sign <= 0, true
	case GREATER_THAN:
		return sign > 0, true
	case GREATER_THAN_EQUALS:
		return sign >= 0, true
	default:
		return false, false
	}
}
