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
	"slices"
	"strings"

	"github.com/consensys/go-deduce/pkg/term"
)

// Rule names an inference rule.  The set of legal rules is closed.
type Rule string

// AXIOM introduces a proposition which holds without justification.
const AXIOM Rule = "axiom"

// ASSUMPTION introduces a proposition which is temporarily assumed to hold.
const ASSUMPTION Rule = "assumption"

// MODUS_PONENS derives Q from P and P → Q.
const MODUS_PONENS Rule = "modus_ponens"

// MODUS_TOLLENS derives ¬P from ¬Q and P → Q.
const MODUS_TOLLENS Rule = "modus_tollens"

// HYPOTHETICAL_SYLLOGISM derives A → C from A → B and B → C.
const HYPOTHETICAL_SYLLOGISM Rule = "hypothetical_syllogism"

// FOLLOWED_FROM discharges assumptions, deriving (A₁ ∧ … ∧ Aₙ) → P.
const FOLLOWED_FROM Rule = "followed_from"

// CONJUNCTION_INTRO derives A ∧ B from A and B.
const CONJUNCTION_INTRO Rule = "conjunction_intro"

// CONJUNCTION_ELIM derives one conjunct from a conjunction.
const CONJUNCTION_ELIM Rule = "conjunction_elim"

// DISJUNCTION_INTRO derives A ∨ B from A.
const DISJUNCTION_INTRO Rule = "disjunction_intro"

// RESOLVE derives the remainder of a disjunction once some disjuncts are
// refuted.
const RESOLVE Rule = "resolve"

// UNIT_RESOLVE derives the remainder of a disjunction once one disjunct is
// refuted.
const UNIT_RESOLVE Rule = "unit_resolve"

// RESOLVE_CLAUSES derives the resolvent of two clauses containing
// complementary literals.
const RESOLVE_CLAUSES Rule = "resolve_clauses"

// EXOR_ELIM derives the negation of the other alternatives from one
// alternative of an exclusive disjunction.
const EXOR_ELIM Rule = "exor_elim"

// DOUBLE_NEGATION derives A from ¬¬A.
const DOUBLE_NEGATION Rule = "double_negation"

// CONTRAPOSITIVE derives ¬B → ¬A from A → B.
const CONTRAPOSITIVE Rule = "contrapositive"

// IFF_INTRO derives A ↔ B from A → B and B → A.
const IFF_INTRO Rule = "iff_intro"

// IFF_ELIM derives either direction of a biconditional.
const IFF_ELIM Rule = "iff_elim"

// CONTRADICTS derives ⊥ from P and ¬P.
const CONTRADICTS Rule = "contradicts"

// THUS_ASSUMPTIONS_CANNOT_ALL_HOLD derives ¬A₁ ∨ … ∨ ¬Aₙ from a
// contradiction over A₁ … Aₙ.
const THUS_ASSUMPTIONS_CANNOT_ALL_HOLD Rule = "thus_assumptions_cannot_all_hold"

// THUS_FORALL generalises P into ∀v. P.
const THUS_FORALL Rule = "thus_forall"

// THUS_THERE_EXISTS abstracts a witness of P into ∃v. P.
const THUS_THERE_EXISTS Rule = "thus_there_exists"

// IN_PARTICULAR instantiates a universal quantifier with a term.
const IN_PARTICULAR Rule = "in_particular"

// IS_SPECIAL_CASE_OF derives a proposition as an instance of a universal
// statement.
const IS_SPECIAL_CASE_OF Rule = "is_special_case_of"

// QUANTIFIED_MODUS_PONENS derives Q(t) from P(t) and ∀x. P(x) → Q(x).
const QUANTIFIED_MODUS_PONENS Rule = "quantified_modus_ponens"

// EXISTENTIAL_ELIM derives Q from ∃x. P(x) and ∀x. P(x) → Q.
const EXISTENTIAL_ELIM Rule = "existential_elim"

// REFLEXIVITY derives t = t.
const REFLEXIVITY Rule = "reflexivity"

// SYMMETRY flips a binary relation, e.g. a < b into b > a.
const SYMMETRY Rule = "symmetry"

// SUBSTITUTE rewrites a proposition using a proven equality.
const SUBSTITUTE Rule = "substitute"

// BY_SIMPLIFICATION discharges a relation using the term simplifier.
const BY_SIMPLIFICATION Rule = "by_simplification"

// TRANSITIVE chains relations drawn from an ordering.
const TRANSITIVE Rule = "transitive"

// CLOSE_ASSUMPTIONS_CONTEXT synthesises a generalised statement when an
// assumption context is closed.
const CLOSE_ASSUMPTIONS_CONTEXT Rule = "close_assumptions_context"

var registry = []Rule{
	AXIOM, ASSUMPTION, MODUS_PONENS, MODUS_TOLLENS, HYPOTHETICAL_SYLLOGISM,
	FOLLOWED_FROM, CONJUNCTION_INTRO, CONJUNCTION_ELIM, DISJUNCTION_INTRO,
	RESOLVE, UNIT_RESOLVE, RESOLVE_CLAUSES, EXOR_ELIM, DOUBLE_NEGATION,
	CONTRAPOSITIVE, IFF_INTRO, IFF_ELIM, CONTRADICTS,
	THUS_ASSUMPTIONS_CANNOT_ALL_HOLD, THUS_FORALL, THUS_THERE_EXISTS,
	IN_PARTICULAR, IS_SPECIAL_CASE_OF, QUANTIFIED_MODUS_PONENS,
	EXISTENTIAL_ELIM, REFLEXIVITY, SYMMETRY, SUBSTITUTE, BY_SIMPLIFICATION,
	TRANSITIVE, CLOSE_ASSUMPTIONS_CONTEXT,
}

// Rules returns the closed set of legal inference rules.
func Rules() []Rule {
	return slices.Clone(registry)
}

// IsValid checks whether this rule is in the registry.
func (r Rule) IsValid() bool {
	return slices.Contains(registry, r)
}

// ParseRule converts a name into a rule, failing if the name is not
// registered.
func ParseRule(name string) (Rule, error) {
	if r := Rule(name); r.IsValid() {
		return r, nil
	}
	//
	return "", &InvalidRuleError{name}
}

// Inference records the justification for a proven proposition: the rule
// applied and the premises it was applied to.
type Inference struct {
	premise *Proposition
	others  []any
	// Propositions mentioned by the rule which are not premises, such as the
	// alternatives introduced into a disjunction.
	sides    []*Proposition
	rule     Rule
	contexts []*Context
}

// NewInference constructs an inference for a given rule name.  The other
// premises may be propositions or terms.  This fails with an InvalidRuleError
// if the named rule is not registered.
func NewInference(rule string, premise *Proposition, others ...any) (*Inference, error) {
	r, err := ParseRule(rule)
	//
	if err != nil {
		return nil, err
	}
	//
	for _, o := range others {
		switch o.(type) {
		case *Proposition, term.Term:
		default:
			return nil, fmt.Errorf("invalid premise %v (%T)", o, o)
		}
	}
	//
	return &Inference{premise, others, nil, r, nil}, nil
}

// Construct an inference from a rule known to be registered.
func inference(rule Rule, premise *Proposition, others ...any) *Inference {
	if !rule.IsValid() {
		// Indicates a kernel bug
		panic(&InvalidRuleError{string(rule)})
	}
	//
	return &Inference{premise, others, nil, rule, nil}
}

// Rule returns the rule applied.
func (p *Inference) Rule() Rule {
	return p.rule
}

// Premise returns the starting premise (if any).
func (p *Inference) Premise() *Proposition {
	return p.premise
}

// Others returns the other premises, which are propositions or terms.
func (p *Inference) Others() []any {
	return p.others
}

// Sides returns the propositions used by this inference which are not
// premises, and hence need not be proven.
func (p *Inference) Sides() []*Proposition {
	return p.sides
}

// Contexts returns the assumption contexts closed by this inference.
func (p *Inference) Contexts() []*Context {
	return p.contexts
}

// Premises returns all premises of this inference which are propositions.
func (p *Inference) Premises() []*Proposition {
	var premises []*Proposition
	//
	if p.premise != nil {
		premises = append(premises, p.premise)
	}
	//
	for _, o := range p.others {
		if q, ok := o.(*Proposition); ok {
			premises = append(premises, q)
		}
	}
	//
	return premises
}

func (p *Inference) String() string {
	var builder strings.Builder
	//
	builder.WriteString(string(p.rule))
	builder.WriteString("(")
	//
	for i, q := range p.Premises() {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(q.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

// Audit replays the justification of a proposition, checking that every
// proposition in its derivation is proven and was produced by a registered
// rule.  Assumptions and axioms are only accepted at the leaves of the tree,
// and any proposition with no recorded inference is rejected.  Derivations
// discharged by closing a context are exempt from the proven check, since
// the contents of a closed context have been retracted.
func Audit(p *Proposition) error {
	if !p.IsProven() {
		return fmt.Errorf("%s is not proven", p)
	}
	//
	return audit(p, false, make(map[*Proposition]bool))
}

// The visited map records, for each proposition audited, whether it was
// audited as a live (rather than discharged) proposition.
func audit(p *Proposition, discharged bool, visited map[*Proposition]bool) error {
	if live, ok := visited[p]; ok && (live || discharged) {
		return nil
	}
	//
	visited[p] = !discharged
	//
	inf := p.deducedFrom
	//
	switch {
	case inf == nil:
		return fmt.Errorf("%s has no justification", p)
	case !discharged && !p.IsProven():
		return fmt.Errorf("%s is not proven", p)
	case !inf.rule.IsValid():
		return &InvalidRuleError{string(inf.rule)}
	case inf.rule == ASSUMPTION || inf.rule == AXIOM:
		return nil
	case len(inf.Premises()) == 0 && !hasTermPremise(inf):
		return fmt.Errorf("%s justified by %s without premises", p, inf.rule)
	}
	//
	discharged = discharged || inf.rule == CLOSE_ASSUMPTIONS_CONTEXT
	//
	for _, q := range inf.Premises() {
		if err := audit(q, discharged, visited); err != nil {
			return err
		}
	}
	//
	return nil
}

func hasTermPremise(inf *Inference) bool {
	for _, o := range inf.others {
		if _, ok := o.(term.Term); ok {
			return true
		}
	}
	//
	return false
}
