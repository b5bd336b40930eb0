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
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/consensys/go-deduce/pkg/term"
	"github.com/google/go-cmp/cmp"
)

func Test_Proposition_01(t *testing.T) {
	x, y := term.NewVariable("x"), term.NewVariable("y")
	p := Forall(x, Implies(Rel("P", x, y), Exists(y, Rel("Q", x, y))))
	//
	checkProp(t, p, "∀x. P(x, y) → (∃y. Q(x, y))")
	//
	if diff := cmp.Diff([]string{"y"}, variableNames(p.FreeVariables())); diff != "" {
		t.Errorf("unexpected free variables (-want +got):\n%s", diff)
	}
	//
	if p.Contains(x) || !p.Contains(y) {
		t.Errorf("incorrect occurrence check for %s", p)
	}
}

func Test_Proposition_02(t *testing.T) {
	x := term.NewVariable("x")
	p := ForallIn(x, S, Lt(x, b))
	//
	checkProp(t, p, "∀x∈S. x < b")
	checkProp(t, p.Body(), "x ∈ S → x < b")
	//
	if p.Markup() != "\\forall x \\in S.\\, x < b" {
		t.Errorf("unexpected markup %s", p.Markup())
	}
}

func Test_Proposition_03(t *testing.T) {
	// Factories collapse singletons
	if Conjunction(atom("P")).Kind() != RELATION || Disjunction(atom("P"), atom("Q")).Kind() != OR {
		t.Errorf("unexpected factory results")
	}
	//
	checkStructurePanic(t, func() { And(atom("P")) })
	checkStructurePanic(t, func() { Or() })
	//
	x := term.NewVariable("x")
	checkStructurePanic(t, func() { Forall(x, Exists(x, Rel("P", x))) })
}

func Test_Replace_01(t *testing.T) {
	s := NewSession()
	p := s.Axiom(And(Rel("P", a), Or(Rel("Q", a, b), Not(Rel("R", a)))))
	// No occurrence is an unproven, equal copy
	q := p.Replace(c, d)
	//
	if !Equal(p, q) || q.IsProven() {
		t.Errorf("replacing absent term should give unproven copy of %s", p)
	}
	//
	checkProp(t, p.Replace(a, c), "P(c) ∧ (Q(c, b) ∨ ¬R(c))")
	checkProp(t, p.Replace(a, c, Path{1, 0, 0}), "P(a) ∧ (Q(c, b) ∨ ¬R(a))")
	checkProp(t, p.Replace(a, c, Path{0}, Path{1, 1}), "P(c) ∧ (Q(a, b) ∨ ¬R(c))")
	// Original unchanged
	if !p.IsProven() || p.String() != "P(a) ∧ (Q(a, b) ∨ ¬R(a))" {
		t.Errorf("replacement mutated %s", p)
	}
}

func Test_Replace_02(t *testing.T) {
	x := term.NewVariable("x")
	p := And(Forall(x, Rel("P", x)), Rel("P", x))
	// Bound occurrences are untouched
	checkProp(t, p.Replace(x, a), "(∀x. P(x)) ∧ P(a)")
	// Paths pass through quantifiers, and into compound terms
	q := Forall(x, Eq(term.NewApply("f", a, a), x))
	checkProp(t, q.Replace(a, b, Path{0, 1}), "∀x. f(a,b) = x")
}

func Test_Substitution_01(t *testing.T) {
	x, y := term.NewVariable("x"), term.NewVariable("y")
	swap := Substitution{{x, y}, {y, x}}
	// Bindings are applied simultaneously
	checkProp(t, swap.Apply(Rel("P", x, y)), "P(y, x)")
	//
	if actual := swap.ApplyTerm(term.NewApply("f", x, y)); actual.String() != "f(y,x)" {
		t.Errorf("expected f(y,x), got %s", actual)
	}
	// Bound occurrences are untouched, though the set is not bound
	z := term.NewVariable("z")
	p := And(ForallIn(x, z, Rel("P", x, y)), Rel("Q", x))
	checkProp(t, Substitution{{x, a}, {y, b}, {z, c}}.Apply(p), "(∀x∈c. P(x, b)) ∧ Q(a)")
}

// Quantifier equality ignores the identity of bound variables entirely; it
// compares only their bodies.  These checks pin down that behaviour.
func Test_Equal_01(t *testing.T) {
	x, y := term.NewVariable("x"), term.NewVariable("y")
	// Alpha-equivalent quantifiers are not equal, since their bodies differ.
	if Equal(Forall(x, Rel("P", x)), Forall(y, Rel("P", y))) {
		t.Errorf("alpha-equivalent quantifiers compared equal")
	}
	// Quantifiers over different variables with the same body are equal.
	z := term.NewVariable("z")
	if !Equal(Forall(x, Rel("P", z)), Forall(y, Rel("P", z))) {
		t.Errorf("quantifiers with equal bodies compared unequal")
	}
	// Domains are compared
	if Equal(ForallIn(x, S, Rel("P", z)), ForallIn(x, T, Rel("P", z))) {
		t.Errorf("quantifiers with differing domains compared equal")
	}
}

// Randomised comparison of quantified statements, checking that equality
// agrees with the equality of the statements' bodies.
func Test_Equal_02(t *testing.T) {
	var (
		rng   = rand.New(rand.NewSource(1))
		vars  = []*term.Variable{term.NewVariable("x"), term.NewVariable("x"), term.NewVariable("y")}
		names = []string{"P", "Q"}
	)
	//
	for i := 0; i < 500; i++ {
		lb, rb := vars[rng.Intn(len(vars))], vars[rng.Intn(len(vars))]
		lhs := Rel(names[rng.Intn(2)], vars[rng.Intn(len(vars))])
		rhs := Rel(names[rng.Intn(2)], vars[rng.Intn(len(vars))])
		//
		expected := Equal(lhs, rhs)
		actual := Equal(Exists(lb, lhs), Exists(rb, rhs))
		//
		if expected != actual {
			t.Fatalf("%s vs %s: expected %t", Exists(lb, lhs), Exists(rb, rhs), expected)
		}
	}
}

func Test_Error_01(t *testing.T) {
	s := NewSession()
	_, err := s.ModusPonens(atom("P"), s.Axiom(Implies(atom("P"), atom("Q"))))
	//
	var terr *TacticError
	//
	if !errors.As(err, &terr) || terr.Rule != MODUS_PONENS {
		t.Fatalf("expected tactic error, got %v", err)
	} else if err.Error() != "modus_ponens: premise not proven [P]" {
		t.Errorf("unexpected error message %s", err)
	}
}

func checkStructurePanic(t *testing.T, fn func()) {
	t.Helper()
	//
	defer func() {
		t.Helper()
		//
		if r := recover(); r == nil {
			t.Errorf("expected panic")
		} else if _, ok := r.(*StructureError); !ok {
			t.Errorf("unexpected panic %s", fmt.Sprint(r))
		}
	}()
	//
	fn()
}

func variableNames(vars []*term.Variable) []string {
	var names []string
	//
	for _, v := range vars {
		names = append(names, v.Name())
	}
	//
	return names
}
