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
	"github.com/google/go-cmp/cmp"
)

func Test_Unify_01(t *testing.T) {
	x := term.NewVariable("x")
	u := Unify(Rel("P", a, b), Rel("P", x, b), x)
	//
	checkUnifier(t, u, BOUND, "x:=a")
}

func Test_Unify_02(t *testing.T) {
	// Structurally equal
	checkUnifier(t, Unify(Rel("P", a), Rel("P", a)), TRIVIAL)
	// Variant mismatch
	checkUnifier(t, Unify(Not(Rel("P", a)), Rel("P", a)), FAIL)
	// Name mismatch
	checkUnifier(t, Unify(Rel("P", a), Rel("Q", a)), FAIL)
	// Arity mismatch
	checkUnifier(t, Unify(Rel("P", a), Rel("P", a, b)), FAIL)
}

func Test_Unify_03(t *testing.T) {
	x := term.NewVariable("x")
	// Conflicting bindings for x
	checkUnifier(t, Unify(Rel("P", a, b), Rel("P", x, x), x), FAIL)
	checkUnifier(t, Unify(Rel("P", a, a), Rel("P", x, x), x), BOUND, "x:=a")
}

func Test_Unify_04(t *testing.T) {
	x, y := term.NewVariable("x"), term.NewVariable("y")
	// Right-hand side is the pattern
	checkUnifier(t, Unify(Rel("P", x), Rel("P", y)), BOUND, "y:=x")
	// Only the given variables are bindable
	checkUnifier(t, Unify(Rel("P", x), Rel("P", y), x), BOUND, "x:=y")
	checkUnifier(t, Unify(Rel("P", a), Rel("P", y), x), FAIL)
}

func Test_Unify_05(t *testing.T) {
	x, y := term.NewVariable("x"), term.NewVariable("y")
	// Compound terms are decomposed
	lhs := Eq(term.NewApply("f", a, term.NewApply("g", b)), c)
	rhs := Eq(term.NewApply("f", x, term.NewApply("g", y)), c)
	checkUnifier(t, Unify(lhs, rhs, x, y), BOUND, "x:=a", "y:=b")
	// Heads must agree
	checkUnifier(t, UnifyTerms(term.NewApply("f", a), term.NewApply("g", x), x), FAIL)
	// Occurs check
	checkUnifier(t, UnifyTerms(term.NewApply("f", x), x, x), FAIL)
}

func Test_Unify_06(t *testing.T) {
	x, y, z := term.NewVariable("x"), term.NewVariable("y"), term.NewVariable("z")
	// Bound variables are paired positionally
	lhs := Forall(x, Rel("P", x, a))
	rhs := Forall(y, Rel("P", y, z))
	checkUnifier(t, Unify(lhs, rhs, z), BOUND, "z:=a")
	// Bound variables cannot escape
	checkUnifier(t, Unify(Forall(x, Rel("P", x)), Forall(y, Rel("P", z)), z), FAIL)
	// Domains must unify
	checkUnifier(t, Unify(ForallIn(x, S, Rel("P", x)), ForallIn(y, z, Rel("P", y)), z), BOUND, "z:=S")
}

func Test_Unify_07(t *testing.T) {
	s := NewSession()
	x := s.Variable("x")
	all := s.Axiom(Forall(x, Implies(Rel("P", x), Rel("Q", x))))
	// Instance of the pattern beneath the quantifier
	u := Unify(Implies(Rel("P", a), Rel("Q", a)), all.Inner(), all.Variable())
	checkUnifier(t, u, BOUND, "x:=a")
	//
	inst := u.Bindings.Apply(all.Inner())
	checkProp(t, inst, "P(a) → Q(a)")
	//
	if inst.IsProven() {
		t.Errorf("substitution should not produce proven %s", inst)
	}
}

func Test_Equivalent_01(t *testing.T) {
	x, y, z := term.NewVariable("x"), term.NewVariable("y"), term.NewVariable("z")
	// Renaming bound variables is permitted
	if !Equivalent(ForallIn(x, S, Rel("P", x, z)), ForallIn(y, S, Rel("P", y, z))) {
		t.Errorf("alpha-equivalent quantifiers not equivalent")
	}
	// Free variables are never bound
	if Equivalent(Rel("P", x), Rel("P", y)) || Equivalent(Forall(x, Rel("P", z)), Forall(y, Rel("P", y))) {
		t.Errorf("distinct free variables considered equivalent")
	}
}

func checkUnifier(t *testing.T, u Unifier, outcome Outcome, bindings ...string) {
	t.Helper()
	//
	if u.Outcome != outcome {
		t.Errorf("expected %s, got %s", outcome, u.Outcome)
		return
	}
	//
	var actual []string
	//
	for _, b := range u.Bindings {
		actual = append(actual, b.Variable.String()+":="+b.Term.String())
	}
	//
	if diff := cmp.Diff(bindings, actual); diff != "" {
		t.Errorf("unexpected bindings (-want +got):\n%s", diff)
	}
}
