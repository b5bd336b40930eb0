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

// Outcome classifies the result of unification.
type Outcome uint8

// FAIL indicates the two sides cannot be unified.
const FAIL Outcome = 0

// TRIVIAL indicates the two sides are already structurally equal, and no
// bindings were required.
const TRIVIAL Outcome = 1

// BOUND indicates the two sides unify under one or more bindings.
const BOUND Outcome = 2

func (o Outcome) String() string {
	switch o {
	case TRIVIAL:
		return "trivial"
	case BOUND:
		return "bound"
	default:
		return "fail"
	}
}

// Unifier is the result of unifying two propositions (or terms).  Failure is
// an ordinary outcome, not an error.
type Unifier struct {
	Outcome  Outcome
	Bindings Substitution
}

// Ok checks whether unification succeeded.
func (u Unifier) Ok() bool {
	return u.Outcome != FAIL
}

// Unify two propositions structurally.  The given variables are those which
// may be bound; if none are given then every free variable may be bound.  When
// both sides are bindable variables, the right-hand side is treated as the
// pattern (i.e. it is bound to the left-hand side).
func Unify(lhs *Proposition, rhs *Proposition, vars ...*term.Variable) Unifier {
	u := unifier{vars: vars}
	//
	if !u.props(lhs, rhs) {
		return Unifier{Outcome: FAIL}
	}
	//
	return u.result()
}

// UnifyTerms unifies two terms structurally, following the same rules as
// Unify.  Compound terms are decomposed argument by argument.
func UnifyTerms(lhs term.Term, rhs term.Term, vars ...*term.Variable) Unifier {
	u := unifier{vars: vars}
	//
	if !u.terms(lhs, rhs) {
		return Unifier{Outcome: FAIL}
	}
	//
	return u.result()
}

// Equivalent checks whether two propositions are equal up to the renaming of
// their bound variables.  No free variable is bound.
func Equivalent(lhs *Proposition, rhs *Proposition) bool {
	u := unifier{rigid: true}
	//
	return u.props(lhs, rhs)
}

type unifier struct {
	// Variables which may be bound (empty means all free variables).
	vars []*term.Variable
	// Set when no variable may be bound.
	rigid bool
	// Bindings accumulated so far.
	bindings Substitution
	// Bound variables of the quantifiers currently being traversed, paired
	// positionally (left-hand side, right-hand side).
	lbound []*term.Variable
	rbound []*term.Variable
}

func (u *unifier) result() Unifier {
	if len(u.bindings) == 0 {
		return Unifier{Outcome: TRIVIAL}
	}
	//
	return Unifier{BOUND, u.bindings}
}

func (u *unifier) props(lhs *Proposition, rhs *Proposition) bool {
	if lhs.kind != rhs.kind || len(lhs.children) != len(rhs.children) {
		return false
	}
	//
	switch lhs.kind {
	case RELATION:
		if lhs.name != rhs.name || len(lhs.args) != len(rhs.args) {
			return false
		}
		//
		for i := range lhs.args {
			if !u.terms(lhs.args[i], rhs.args[i]) {
				return false
			}
		}
		//
		return true
	case FORALL, FORALL_IN_SET, EXISTS, EXISTS_IN_SET:
		if lhs.set != nil && !u.terms(lhs.set, rhs.set) {
			return false
		}
		// Equate bound variables for the duration of the body
		u.lbound = append(u.lbound, lhs.variable)
		u.rbound = append(u.rbound, rhs.variable)
		ok := u.props(lhs.Inner(), rhs.Inner())
		u.lbound = u.lbound[:len(u.lbound)-1]
		u.rbound = u.rbound[:len(u.rbound)-1]
		//
		return ok
	}
	//
	for i := range lhs.children {
		if !u.props(lhs.children[i], rhs.children[i]) {
			return false
		}
	}
	//
	return true
}

func (u *unifier) terms(lhs term.Term, rhs term.Term) bool {
	var (
		lv, lvar = lhs.(*term.Variable)
		rv, rvar = rhs.(*term.Variable)
	)
	// Bound variables only match their positional counterpart.
	if li, ri := u.boundIndex(u.lbound, lv), u.boundIndex(u.rbound, rv); li >= 0 || ri >= 0 {
		return li == ri
	}
	//
	switch {
	case rvar && u.bindable(rv):
		return u.bind(rv, lhs)
	case lvar && u.bindable(lv):
		return u.bind(lv, rhs)
	}
	//
	lc, lok := lhs.(term.Compound)
	rc, rok := rhs.(term.Compound)
	//
	if lok && rok {
		if lc.Head() != rc.Head() || len(lc.Args()) != len(rc.Args()) {
			return false
		}
		//
		for i := range lc.Args() {
			if !u.terms(lc.Args()[i], rc.Args()[i]) {
				return false
			}
		}
		//
		return true
	}
	//
	return lhs.Equal(rhs)
}

func (u *unifier) boundIndex(bound []*term.Variable, v *term.Variable) int {
	if v == nil {
		return -1
	}
	// Search innermost first
	for i := len(bound) - 1; i >= 0; i-- {
		if bound[i] == v {
			return i
		}
	}
	//
	return -1
}

func (u *unifier) bindable(v *term.Variable) bool {
	return !u.rigid && (len(u.vars) == 0 || slices.Contains(u.vars, v))
}

func (u *unifier) bind(v *term.Variable, t term.Term) bool {
	if t.Equal(v) {
		return true
	} else if existing, ok := u.bindings.Lookup(v); ok {
		// Conflicting bindings for the same variable fail.
		return existing.Equal(t)
	} else if t.Contains(v) {
		// Occurs check
		return false
	}
	// A term mentioning a locally bound variable cannot escape its quantifier.
	for _, b := range append(slices.Clone(u.lbound), u.rbound...) {
		if t.Contains(b) {
			return false
		}
	}
	//
	u.bindings = append(u.bindings, Binding{v, t})
	//
	return true
}
