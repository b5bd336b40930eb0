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
	"testing"

	"github.com/consensys/go-deduce/pkg/term"
)

var (
	a = term.NewConstant("a")
	b = term.NewConstant("b")
	c = term.NewConstant("c")
	d = term.NewConstant("d")
)

func atom(name string) *Proposition {
	return Rel(name)
}

func Test_ModusPonens_01(t *testing.T) {
	s := NewSession()
	p := s.Axiom(atom("P"))
	imp := s.Axiom(Implies(atom("P"), atom("Q")))
	q := checkOk(t)(s.ModusPonens(p, imp))
	//
	checkProp(t, q, "Q")
	checkAssumptions(t, q)
}

func Test_ModusPonens_02(t *testing.T) {
	s := NewSession()
	r := s.Axiom(atom("R"))
	imp := s.Axiom(Implies(atom("P"), atom("Q")))
	// Antecedent mismatch
	checkFails(t, ErrPrecondition)(s.ModusPonens(r, imp))
}

func Test_ModusPonens_03(t *testing.T) {
	s := NewSession()
	imp := s.Axiom(Implies(atom("P"), atom("Q")))
	// Premise is not proven
	checkFails(t, ErrPrecondition)(s.ModusPonens(atom("P"), imp))
}

func Test_ModusTollens_01(t *testing.T) {
	s := NewSession()
	notq := s.Axiom(Not(atom("Q")))
	imp := s.Axiom(Implies(atom("P"), atom("Q")))
	checkProp(t, checkOk(t)(s.ModusTollens(notq, imp)), "¬P")
}

func Test_HypotheticalSyllogism_01(t *testing.T) {
	s := NewSession()
	ab := s.Axiom(Implies(atom("A"), atom("B")))
	bc := s.Axiom(Implies(atom("B"), atom("C")))
	checkProp(t, checkOk(t)(s.HypotheticalSyllogism(ab, bc)), "A → C")
	// Order matters
	checkFails(t, ErrPrecondition)(s.HypotheticalSyllogism(bc, ab))
}

func Test_FollowedFrom_01(t *testing.T) {
	s := NewSession()
	p, _ := s.Assume(atom("P"))
	imp := s.Axiom(Implies(atom("P"), atom("Q")))
	q := checkOk(t)(s.ModusPonens(p, imp))
	// Q depends on P
	checkAssumptions(t, q, p)
	//
	r := checkOk(t)(s.FollowedFrom(q, p))
	//
	checkProp(t, r, "P → Q")
	checkAssumptions(t, r)
	// Hypothesis is stripped
	if r.Antecedent().IsProven() || r.Antecedent().IsAssumption() {
		t.Errorf("antecedent of %s should be unproven", r)
	}
	// Round trip
	checkProp(t, checkOk(t)(s.ModusPonens(p, r)), "Q")
}

func Test_FollowedFrom_02(t *testing.T) {
	s := NewSession()
	p, _ := s.Assume(atom("P"))
	q, _ := s.Assume(atom("Q"))
	pq := checkOk(t)(s.Conjoin(p, q))
	r := checkOk(t)(s.FollowedFrom(pq, p, q))
	//
	checkProp(t, r, "(P ∧ Q) → (P ∧ Q)")
	// Not an assumption
	checkFails(t, ErrPrecondition)(s.FollowedFrom(pq, s.Axiom(atom("R"))))
}

func Test_Conjunction_01(t *testing.T) {
	s := NewSession()
	p := s.Axiom(atom("P"))
	q := s.Axiom(atom("Q"))
	pq := checkOk(t)(s.Conjoin(p, q))
	//
	checkProp(t, pq, "P ∧ Q")
	checkProp(t, checkOk(t)(s.Extract(pq, 1)), "Q")
	checkFails(t, ErrPrecondition)(s.Extract(pq, 2))
	//
	parts, err := s.Split(pq)
	//
	if err != nil || len(parts) != 2 {
		t.Fatalf("unexpected split %v (%v)", parts, err)
	}
	//
	checkProp(t, parts[0], "P")
	// A conjunction requires two operands
	checkFails(t, ErrPrecondition)(s.Conjoin(p))
}

func Test_Disjunction_01(t *testing.T) {
	s := NewSession()
	p := s.Axiom(atom("P"))
	checkProp(t, checkOk(t)(s.Disjoin(p, atom("Q"), atom("R"))), "P ∨ Q ∨ R")
}

func Test_Resolve_01(t *testing.T) {
	s := NewSession()
	or := s.Axiom(Or(atom("P"), atom("Q"), atom("R")))
	np := s.Axiom(Not(atom("P")))
	nr := s.Axiom(Not(atom("R")))
	//
	checkProp(t, checkOk(t)(s.Resolve(or, np, nr)), "Q")
	checkProp(t, checkOk(t)(s.UnitResolve(or, np)), "Q ∨ R")
	// Conjunction of negations
	both := checkOk(t)(s.Conjoin(np, nr))
	checkProp(t, checkOk(t)(s.Resolve(or, both)), "Q")
	// Refutation must match a disjunct
	checkFails(t, ErrPrecondition)(s.UnitResolve(or, s.Axiom(Not(atom("S")))))
}

func Test_Resolve_02(t *testing.T) {
	s := NewSession()
	or, _ := s.Assume(Or(atom("P"), atom("Q")))
	np, _ := s.Assume(Not(atom("P")))
	nq, _ := s.Assume(Not(atom("Q")))
	// Refuting everything yields a contradiction
	bot := checkOk(t)(s.Resolve(or, np, nq))
	//
	if bot.Kind() != CONTRADICTION {
		t.Errorf("expected contradiction, got %s", bot)
	}
	//
	checkAssumptions(t, bot, or, np, nq)
}

func Test_ResolveClauses_01(t *testing.T) {
	s := NewSession()
	lhs := s.Axiom(Or(atom("P"), atom("Q")))
	rhs := s.Axiom(Or(Not(atom("P")), atom("R")))
	//
	checkProp(t, checkOk(t)(s.ResolveClauses(lhs, rhs)), "Q ∨ R")
	checkFails(t, ErrPrecondition)(s.ResolveClauses(lhs, lhs))
}

func Test_ExOr_01(t *testing.T) {
	s := NewSession()
	exor := s.Axiom(ExOr(atom("P"), atom("Q"), atom("R")))
	q := s.Axiom(atom("Q"))
	//
	checkProp(t, checkOk(t)(s.ExOrEliminate(exor, q)), "¬P ∧ ¬R")
	//
	exor2 := s.Axiom(ExOr(atom("P"), atom("Q")))
	checkProp(t, checkOk(t)(s.ExOrEliminate(exor2, q)), "¬P")
}

func Test_Negation_01(t *testing.T) {
	s := NewSession()
	nnp := s.Axiom(Not(Not(atom("P"))))
	checkProp(t, checkOk(t)(s.DoubleNegation(nnp)), "P")
	checkFails(t, ErrPrecondition)(s.DoubleNegation(s.Axiom(Not(atom("P")))))
	//
	imp := s.Axiom(Implies(atom("P"), atom("Q")))
	checkProp(t, checkOk(t)(s.Contrapositive(imp)), "¬Q → ¬P")
}

func Test_Iff_01(t *testing.T) {
	s := NewSession()
	pq := s.Axiom(Implies(atom("P"), atom("Q")))
	qp := s.Axiom(Implies(atom("Q"), atom("P")))
	iff := checkOk(t)(s.IffIntro(pq, qp))
	//
	checkProp(t, iff, "P ↔ Q")
	checkProp(t, checkOk(t)(s.IffForward(iff)), "P → Q")
	checkProp(t, checkOk(t)(s.IffBackward(iff)), "Q → P")
	checkFails(t, ErrPrecondition)(s.IffIntro(pq, pq))
}

func Test_Contradiction_01(t *testing.T) {
	s := NewSession()
	p := s.Axiom(atom("P"))
	np := s.Axiom(Not(atom("P")))
	// No assumptions involved
	checkFails(t, ErrPrecondition)(s.Contradicts(p, np))
}

func Test_Contradiction_02(t *testing.T) {
	s := NewSession()
	p, _ := s.Assume(atom("P"))
	np := s.Axiom(Not(atom("P")))
	// Only one assumption involved
	checkFails(t, ErrPrecondition)(s.Contradicts(p, np))
}

func Test_Contradiction_03(t *testing.T) {
	s := NewSession()
	p, _ := s.Assume(atom("P"))
	q, _ := s.Assume(atom("Q"))
	imp := s.Axiom(Implies(atom("Q"), Not(atom("P"))))
	np := checkOk(t)(s.ModusPonens(q, imp))
	bot := checkOk(t)(s.Contradicts(np, p))
	//
	checkAssumptions(t, bot, q, p)
	//
	r := checkOk(t)(s.ThusAssumptionsCannotAllHold(bot))
	//
	checkProp(t, r, "¬Q ∨ ¬P")
	checkAssumptions(t, r)
}

func Test_Audit_01(t *testing.T) {
	s := NewSession()
	p, _ := s.Assume(atom("P"))
	imp := s.Axiom(Implies(atom("P"), atom("Q")))
	q := checkOk(t)(s.ModusPonens(p, imp))
	r := checkOk(t)(s.FollowedFrom(q, p))
	//
	if err := Audit(r); err != nil {
		t.Error(err)
	}
	// Alternatives introduced by a disjunction need not be proven
	if err := Audit(checkOk(t)(s.Disjoin(s.Axiom(atom("P")), atom("R")))); err != nil {
		t.Error(err)
	}
	// Unproven propositions cannot be audited
	if err := Audit(atom("P")); err == nil {
		t.Error("expected audit failure")
	}
}

func Test_Audit_02(t *testing.T) {
	s := NewSession()
	p := s.Axiom(atom("P"))
	pq := checkOk(t)(s.Disjoin(p, atom("Q")))
	// Every premise of a derivation must still hold
	p.proven = false
	//
	if err := Audit(pq); err == nil {
		t.Error("expected audit failure")
	}
}

func Test_Inference_01(t *testing.T) {
	if _, err := NewInference("modus_ponens", nil); err != nil {
		t.Error(err)
	}
	//
	_, err := NewInference("wishful_thinking", nil)
	//
	var inv *InvalidRuleError
	//
	if !errors.As(err, &inv) || !errors.Is(err, ErrInvalidRule) {
		t.Errorf("expected invalid rule error, got %v", err)
	}
	//
	for _, r := range Rules() {
		if _, err := ParseRule(string(r)); err != nil {
			t.Error(err)
		}
	}
}

func Test_Inference_02(t *testing.T) {
	s := NewSession()
	p := s.Axiom(atom("P"))
	imp := s.Axiom(Implies(atom("P"), atom("Q")))
	q := checkOk(t)(s.ModusPonens(p, imp))
	inf := q.DeducedFrom()
	//
	if inf.Rule() != MODUS_PONENS || len(inf.Premises()) != 2 {
		t.Errorf("unexpected inference %s", inf)
	}
	// Inputs are never mutated
	if p.DeducedFrom().Rule() != AXIOM || !Equal(imp, Implies(atom("P"), atom("Q"))) {
		t.Errorf("inputs were mutated")
	}
}

// ============================================================================
// Helpers
// ============================================================================

// Check a tactic succeeded, returning its result.
func checkOk(t *testing.T) func(*Proposition, error) *Proposition {
	t.Helper()
	//
	return func(p *Proposition, err error) *Proposition {
		t.Helper()
		//
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		} else if !p.IsProven() {
			t.Fatalf("result %s is not proven", p)
		}
		//
		return p
	}
}

// Check a tactic failed with a given class of error.
func checkFails(t *testing.T, expected error) func(*Proposition, error) {
	t.Helper()
	//
	return func(p *Proposition, err error) {
		t.Helper()
		//
		if err == nil {
			t.Errorf("expected failure, got %s", p)
		} else if !errors.Is(err, expected) {
			t.Errorf("expected %v, got %v", expected, err)
		} else if p != nil {
			t.Errorf("failing tactic returned %s", p)
		}
	}
}

func checkProp(t *testing.T, p *Proposition, expected string) {
	t.Helper()
	//
	if p.String() != expected {
		t.Errorf("expected %s, got %s", expected, p)
	}
}

// Check a proposition depends on exactly the given assumptions (in any order).
func checkAssumptions(t *testing.T, p *Proposition, expected ...*Proposition) {
	t.Helper()
	//
	actual := p.FromAssumptions()
	//
	if len(actual) != len(expected) {
		t.Errorf("%s: expected %d assumptions, got %v", p, len(expected), actual)
		return
	}
	//
	for _, a := range expected {
		found := false
		//
		for _, b := range actual {
			found = found || a == b
		}
		//
		if !found {
			t.Errorf("%s: missing assumption %s", p, a)
		}
	}
}
