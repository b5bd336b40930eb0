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
	"testing"

	"github.com/consensys/go-deduce/pkg/term"
)

func Test_Transitive_01(t *testing.T) {
	s := NewSession()
	chain := []*Proposition{s.Axiom(Eq(a, b)), s.Axiom(Le(b, c)), s.Axiom(Lt(c, d))}
	//
	checkProp(t, checkOk(t)(s.Transitive(LESS_THAN, chain...)), "a < d")
	checkProp(t, checkOk(t)(s.Transitive(LESS_THAN_EQUALS, chain...)), "a ≤ d")
}

func Test_Transitive_02(t *testing.T) {
	s := NewSession()
	chain := []*Proposition{s.Axiom(Le(a, b)), s.Axiom(Le(b, c))}
	// No strict link
	checkFails(t, ErrPrecondition)(s.Transitive(LESS_THAN, chain...))
	checkProp(t, checkOk(t)(s.Transitive(LESS_THAN_EQUALS, chain...)), "a ≤ c")
	// Wrong direction
	checkFails(t, ErrPrecondition)(s.Transitive(GREATER_THAN_EQUALS, chain...))
	// Not an equality
	checkFails(t, ErrPrecondition)(s.Transitive(EQUALS, chain...))
}

func Test_Transitive_03(t *testing.T) {
	s := NewSession()
	// Mixed directions
	checkFails(t, ErrPrecondition)(s.Transitive(LESS_THAN, s.Axiom(Lt(a, b)), s.Axiom(Gt(b, c))))
	// Not consecutive
	checkFails(t, ErrPrecondition)(s.Transitive(LESS_THAN, s.Axiom(Lt(a, b)), s.Axiom(Lt(c, d))))
	// Descending chain
	chain := []*Proposition{s.Axiom(Gt(a, b)), s.Axiom(Eq(b, c)), s.Axiom(Ge(c, d))}
	checkProp(t, checkOk(t)(s.Transitive(GREATER_THAN, chain...)), "a > d")
	// Equalities
	checkProp(t, checkOk(t)(s.Transitive(EQUALS, s.Axiom(Eq(a, b)), s.Axiom(Eq(b, c)))), "a = c")
}

func Test_Transitive_04(t *testing.T) {
	s := NewSession()
	s.SetOrder(SubsetOrder)
	chain := []*Proposition{s.Axiom(Rel(SUBSET, a, b)), s.Axiom(Rel(PROPER_SUBSET, b, c))}
	//
	checkProp(t, checkOk(t)(s.Transitive(PROPER_SUBSET, chain...)), "a ⊂ c")
	// Numeric relations are not part of this order
	checkFails(t, ErrPrecondition)(s.Transitive(LESS_THAN, chain...))
	checkProp(t, checkOk(t)(s.TransitiveIn(NumericOrder, LESS_THAN, s.Axiom(Lt(a, b)))), "a < b")
}

func Test_Symmetry_01(t *testing.T) {
	s := NewSession()
	//
	checkProp(t, checkOk(t)(s.Symmetry(s.Axiom(Lt(a, b)))), "b > a")
	checkProp(t, checkOk(t)(s.Symmetry(s.Axiom(Eq(a, b)))), "b = a")
	checkProp(t, checkOk(t)(s.Symmetry(s.Axiom(Neq(a, b)))), "b ≠ a")
	checkFails(t, ErrPrecondition)(s.Symmetry(s.Axiom(In(a, b))))
}

func Test_Reflexivity_01(t *testing.T) {
	s := NewSession()
	r := s.Reflexivity(a)
	//
	checkProp(t, r, "a = a")
	//
	if err := Audit(r); err != nil {
		t.Error(err)
	}
}

func Test_Substitute_01(t *testing.T) {
	s := NewSession()
	eq := s.Axiom(Eq(a, b))
	p := s.Axiom(Rel("P", a, a))
	//
	checkProp(t, checkOk(t)(s.Substitute(eq, p)), "P(b, b)")
	checkProp(t, checkOk(t)(s.Substitute(eq, p, Path{0})), "P(b, a)")
	// Nothing to rewrite
	checkFails(t, ErrPrecondition)(s.Substitute(eq, s.Axiom(Rel("P", c))))
	// Not an equality
	checkFails(t, ErrPrecondition)(s.Substitute(s.Axiom(Lt(a, b)), p))
}

func Test_BySimplification_01(t *testing.T) {
	s := NewSession()
	x := s.Variable("x")
	//
	checkProp(t, checkOk(t)(s.BySimplification(Eq(term.Add(x, term.Int(1)), term.Add(term.Int(1), x)))),
		"(x+1) = (1+x)")
	checkOk(t)(s.BySimplification(Not(Eq(term.Add(x, term.Int(1)), x))))
	checkOk(t)(s.BySimplification(Neq(term.Add(x, term.Int(1)), x)))
	checkOk(t)(s.BySimplification(Lt(x, term.Add(x, term.Int(1)))))
	checkOk(t)(s.BySimplification(Ge(term.Mul(term.Int(2), x), term.Add(x, x))))
	// Does not hold
	checkFails(t, ErrPrecondition)(s.BySimplification(Gt(x, term.Add(x, term.Int(1)))))
	// Cannot decide
	checkFails(t, ErrPrecondition)(s.BySimplification(Eq(x, s.Variable("y"))))
}
