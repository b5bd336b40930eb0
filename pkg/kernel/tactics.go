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
)

// ModusPonens derives Q from a proven P and a proven implication P → Q.  This
// fails if the antecedent of the implication is not structurally equal to p.
func (s *Session) ModusPonens(p *Proposition, imp *Proposition) (*Proposition, error) {
	if err := requireProven(MODUS_PONENS, p, imp); err != nil {
		return nil, err
	} else if imp.kind != IMPLIES {
		return nil, failure(MODUS_PONENS, "expected implication", imp)
	} else if !Equal(imp.Left(), p) {
		return nil, failure(MODUS_PONENS, "antecedent does not match premise", p, imp)
	}
	//
	return s.certify(imp.Right(), inference(MODUS_PONENS, p, imp), p, imp), nil
}

// ModusTollens derives ¬P from a proven ¬Q and a proven implication P → Q.
func (s *Session) ModusTollens(notq *Proposition, imp *Proposition) (*Proposition, error) {
	if err := requireProven(MODUS_TOLLENS, notq, imp); err != nil {
		return nil, err
	} else if imp.kind != IMPLIES {
		return nil, failure(MODUS_TOLLENS, "expected implication", imp)
	} else if notq.kind != NOT || !Equal(notq.Inner(), imp.Right()) {
		return nil, failure(MODUS_TOLLENS, "premise does not refute consequent", notq, imp)
	}
	//
	return s.certify(Not(imp.Left()), inference(MODUS_TOLLENS, notq, imp), notq, imp), nil
}

// HypotheticalSyllogism derives A → C from proven implications A → B and
// B → C.  This fails unless the consequent of the first is structurally equal
// to the antecedent of the second.
func (s *Session) HypotheticalSyllogism(ab *Proposition, bc *Proposition) (*Proposition, error) {
	if err := requireProven(HYPOTHETICAL_SYLLOGISM, ab, bc); err != nil {
		return nil, err
	} else if ab.kind != IMPLIES || bc.kind != IMPLIES {
		return nil, failure(HYPOTHETICAL_SYLLOGISM, "expected implications", ab, bc)
	} else if !Equal(ab.Right(), bc.Left()) {
		return nil, failure(HYPOTHETICAL_SYLLOGISM, "consequent does not match antecedent", ab, bc)
	}
	//
	ac := Implies(ab.Left(), bc.Right())
	//
	return s.certify(ac, inference(HYPOTHETICAL_SYLLOGISM, ab, bc), ab, bc), nil
}

// FollowedFrom discharges one or more assumptions on which p depends, deriving
// the implication (A₁ ∧ … ∧ Aₙ) → p.  Every assumption given must currently
// be flagged as an assumption.  The antecedent contains unproven copies of the
// assumptions, and the result no longer depends on them.
func (s *Session) FollowedFrom(p *Proposition, assumptions ...*Proposition) (*Proposition, error) {
	if err := requireProven(FOLLOWED_FROM, p); err != nil {
		return nil, err
	} else if len(assumptions) == 0 {
		return nil, failure(FOLLOWED_FROM, "no assumptions given", p)
	}
	//
	hyps := make([]*Proposition, len(assumptions))
	others := make([]any, len(assumptions))
	//
	for i, a := range assumptions {
		if a == nil || !a.assumption {
			return nil, failure(FOLLOWED_FROM, "not an assumption", a)
		}
		//
		hyps[i] = a.Strip()
		others[i] = a
	}
	//
	imp := Implies(Conjunction(hyps...), p.Strip())
	q := s.certify(imp, inference(FOLLOWED_FROM, p, others...), p)
	q.fromAssumptions = withoutAssumptions(q.fromAssumptions, assumptions)
	//
	return q, nil
}

// Conjoin derives the conjunction of two or more proven propositions.
func (s *Session) Conjoin(props ...*Proposition) (*Proposition, error) {
	if len(props) < 2 {
		return nil, failure(CONJUNCTION_INTRO, "requires at least two propositions", props...)
	} else if err := requireProven(CONJUNCTION_INTRO, props...); err != nil {
		return nil, err
	}
	//
	children := make([]*Proposition, len(props))
	others := make([]any, len(props)-1)
	//
	for i, p := range props {
		children[i] = p.Strip()
		//
		if i > 0 {
			others[i-1] = p
		}
	}
	//
	return s.certify(And(children...), inference(CONJUNCTION_INTRO, props[0], others...), props...), nil
}

// Extract derives the ith conjunct of a proven conjunction.
func (s *Session) Extract(and *Proposition, i int) (*Proposition, error) {
	if err := requireProven(CONJUNCTION_ELIM, and); err != nil {
		return nil, err
	} else if and.kind != AND {
		return nil, failure(CONJUNCTION_ELIM, "expected conjunction", and)
	} else if i < 0 || i >= len(and.children) {
		return nil, failuref(CONJUNCTION_ELIM, []*Proposition{and}, "conjunct %d out of bounds", i)
	}
	//
	return s.certify(and.children[i], inference(CONJUNCTION_ELIM, and), and), nil
}

// Split derives every conjunct of a proven conjunction.
func (s *Session) Split(and *Proposition) ([]*Proposition, error) {
	if err := requireProven(CONJUNCTION_ELIM, and); err != nil {
		return nil, err
	} else if and.kind != AND {
		return nil, failure(CONJUNCTION_ELIM, "expected conjunction", and)
	}
	//
	conjuncts := make([]*Proposition, len(and.children))
	//
	for i, child := range and.children {
		conjuncts[i] = s.certify(child, inference(CONJUNCTION_ELIM, and), and)
	}
	//
	return conjuncts, nil
}

// Disjoin derives the disjunction of a proven proposition with any number of
// other (not necessarily proven) propositions.
func (s *Session) Disjoin(p *Proposition, others ...*Proposition) (*Proposition, error) {
	if err := requireProven(DISJUNCTION_INTRO, p); err != nil {
		return nil, err
	} else if len(others) == 0 {
		return nil, failure(DISJUNCTION_INTRO, "no alternatives given", p)
	}
	//
	children := append([]*Proposition{p.Strip()}, others...)
	inf := inference(DISJUNCTION_INTRO, p)
	inf.sides = slices.Clone(others)
	//
	return s.certify(Or(children...), inf, p), nil
}

// Resolve derives the remainder of a proven disjunction once some of its
// disjuncts have been refuted.  The refutations are proven negations of
// disjuncts, given either individually or as a single proven conjunction of
// negations.  If every disjunct is refuted, the result is a contradiction
// (which requires at least two assumptions to be involved).
func (s *Session) Resolve(or *Proposition, refutations ...*Proposition) (*Proposition, error) {
	return s.resolve(RESOLVE, or, refutations)
}

// UnitResolve derives the remainder of a proven disjunction once exactly one
// of its disjuncts has been refuted.
func (s *Session) UnitResolve(or *Proposition, refutation *Proposition) (*Proposition, error) {
	if refutation != nil && refutation.kind != NOT {
		return nil, failure(UNIT_RESOLVE, "expected negation", refutation)
	}
	//
	return s.resolve(UNIT_RESOLVE, or, []*Proposition{refutation})
}

func (s *Session) resolve(rule Rule, or *Proposition, refutations []*Proposition) (*Proposition, error) {
	var negated []*Proposition
	//
	if err := requireProven(rule, or); err != nil {
		return nil, err
	} else if or.kind != OR {
		return nil, failure(rule, "expected disjunction", or)
	} else if len(refutations) == 0 {
		return nil, failure(rule, "no refutations given", or)
	} else if err := requireProven(rule, refutations...); err != nil {
		return nil, err
	}
	// Flatten refutations
	for _, r := range refutations {
		switch {
		case r.kind == NOT:
			negated = append(negated, r.Inner())
		case r.kind == AND && len(refutations) == 1:
			for _, c := range r.children {
				if c.kind != NOT {
					return nil, failure(rule, "expected conjunction of negations", r)
				}
				//
				negated = append(negated, c.Inner())
			}
		default:
			return nil, failure(rule, "expected negation", r)
		}
	}
	// Remove refuted disjuncts
	remainder := slices.Clone(or.children)
	//
	for _, n := range negated {
		if IndexOf(remainder, n) < 0 {
			return nil, failure(rule, "refutation does not match any disjunct", Not(n), or)
		}
		//
		remainder = slices.DeleteFunc(remainder, func(d *Proposition) bool { return Equal(d, n) })
	}
	//
	others := make([]any, len(refutations))
	//
	for i, r := range refutations {
		others[i] = r
	}
	//
	premises := append([]*Proposition{or}, refutations...)
	inf := inference(rule, or, others...)
	//
	if len(remainder) == 0 {
		return s.contradiction(rule, inf, premises...)
	}
	//
	return s.certify(Disjunction(remainder...), inf, premises...), nil
}

// ResolveClauses derives the resolvent of two proven clauses.  A clause is a
// disjunction of literals, or a single literal.  Exactly one literal of the
// first must be the negation of a literal in the second (or vice versa), and
// the resolvent is the disjunction of the remaining literals.
func (s *Session) ResolveClauses(lhs *Proposition, rhs *Proposition) (*Proposition, error) {
	if err := requireProven(RESOLVE_CLAUSES, lhs, rhs); err != nil {
		return nil, err
	}
	//
	var (
		ls = literals(lhs)
		rs = literals(rhs)
	)
	//
	for i, l := range ls {
		for j, r := range rs {
			if complementary(l, r) {
				var remainder []*Proposition
				//
				for _, p := range slices.Delete(slices.Clone(ls), i, i+1) {
					if IndexOf(remainder, p) < 0 {
						remainder = append(remainder, p)
					}
				}
				//
				for _, p := range slices.Delete(slices.Clone(rs), j, j+1) {
					if IndexOf(remainder, p) < 0 {
						remainder = append(remainder, p)
					}
				}
				//
				inf := inference(RESOLVE_CLAUSES, lhs, rhs)
				//
				if len(remainder) == 0 {
					return s.contradiction(RESOLVE_CLAUSES, inf, lhs, rhs)
				}
				//
				return s.certify(Disjunction(remainder...), inf, lhs, rhs), nil
			}
		}
	}
	//
	return nil, failure(RESOLVE_CLAUSES, "no complementary literals", lhs, rhs)
}

func literals(p *Proposition) []*Proposition {
	if p.kind == OR {
		return p.children
	}
	//
	return []*Proposition{p}
}

func complementary(lhs *Proposition, rhs *Proposition) bool {
	return (lhs.kind == NOT && Equal(lhs.Inner(), rhs)) || (rhs.kind == NOT && Equal(rhs.Inner(), lhs))
}

// ExOrEliminate derives, from a proven exclusive disjunction and a proven
// alternative, the negation of every other alternative.  The result is a
// single negation when there are only two alternatives, and a conjunction of
// negations otherwise.
func (s *Session) ExOrEliminate(exor *Proposition, p *Proposition) (*Proposition, error) {
	if err := requireProven(EXOR_ELIM, exor, p); err != nil {
		return nil, err
	} else if exor.kind != EXOR {
		return nil, failure(EXOR_ELIM, "expected exclusive disjunction", exor)
	}
	//
	i := IndexOf(exor.children, p)
	//
	if i < 0 {
		return nil, failure(EXOR_ELIM, "premise is not an alternative", p, exor)
	}
	//
	var negations []*Proposition
	//
	for j, c := range exor.children {
		if j != i {
			negations = append(negations, Not(c))
		}
	}
	//
	return s.certify(Conjunction(negations...), inference(EXOR_ELIM, exor, p), exor, p), nil
}

// DoubleNegation derives A from a proven ¬¬A.
func (s *Session) DoubleNegation(p *Proposition) (*Proposition, error) {
	if err := requireProven(DOUBLE_NEGATION, p); err != nil {
		return nil, err
	} else if p.kind != NOT || p.Inner().kind != NOT {
		return nil, failure(DOUBLE_NEGATION, "expected double negation", p)
	}
	//
	return s.certify(p.Inner().Inner(), inference(DOUBLE_NEGATION, p), p), nil
}

// Contrapositive derives ¬B → ¬A from a proven A → B.
func (s *Session) Contrapositive(imp *Proposition) (*Proposition, error) {
	if err := requireProven(CONTRAPOSITIVE, imp); err != nil {
		return nil, err
	} else if imp.kind != IMPLIES {
		return nil, failure(CONTRAPOSITIVE, "expected implication", imp)
	}
	//
	contra := Implies(Not(imp.Right()), Not(imp.Left()))
	//
	return s.certify(contra, inference(CONTRAPOSITIVE, imp), imp), nil
}

// IffIntro derives A ↔ B from proven implications A → B and B → A.
func (s *Session) IffIntro(ab *Proposition, ba *Proposition) (*Proposition, error) {
	if err := requireProven(IFF_INTRO, ab, ba); err != nil {
		return nil, err
	} else if ab.kind != IMPLIES || ba.kind != IMPLIES {
		return nil, failure(IFF_INTRO, "expected implications", ab, ba)
	} else if !Equal(ab.Left(), ba.Right()) || !Equal(ab.Right(), ba.Left()) {
		return nil, failure(IFF_INTRO, "implications are not converses", ab, ba)
	}
	//
	iff := Iff(ab.Left(), ab.Right())
	//
	return s.certify(iff, inference(IFF_INTRO, ab, ba), ab, ba), nil
}

// IffForward derives A → B from a proven A ↔ B.
func (s *Session) IffForward(iff *Proposition) (*Proposition, error) {
	return s.iffElim(iff, false)
}

// IffBackward derives B → A from a proven A ↔ B.
func (s *Session) IffBackward(iff *Proposition) (*Proposition, error) {
	return s.iffElim(iff, true)
}

func (s *Session) iffElim(iff *Proposition, backwards bool) (*Proposition, error) {
	if err := requireProven(IFF_ELIM, iff); err != nil {
		return nil, err
	} else if iff.kind != IFF {
		return nil, failure(IFF_ELIM, "expected biconditional", iff)
	}
	//
	imp := Implies(iff.Left(), iff.Right())
	//
	if backwards {
		imp = Implies(iff.Right(), iff.Left())
	}
	//
	return s.certify(imp, inference(IFF_ELIM, iff), iff), nil
}

// Contradicts derives a contradiction from a proven P and a proven ¬P (given
// in either order).  A contradiction is only meaningful if it arises from
// conflicting hypotheses, hence this fails unless at least two assumptions
// are involved.
func (s *Session) Contradicts(p *Proposition, q *Proposition) (*Proposition, error) {
	if err := requireProven(CONTRADICTS, p, q); err != nil {
		return nil, err
	} else if !complementary(p, q) {
		return nil, failure(CONTRADICTS, "propositions are not complementary", p, q)
	}
	//
	return s.contradiction(CONTRADICTS, inference(CONTRADICTS, p, q), p, q)
}

func (s *Session) contradiction(rule Rule, inf *Inference, premises ...*Proposition) (*Proposition, error) {
	if n := len(unionAssumptions(premises...)); n < 2 {
		return nil, failuref(rule, premises, "contradiction requires at least two assumptions (found %d)", n)
	}
	//
	return s.certify(&Proposition{kind: CONTRADICTION}, inf, premises...), nil
}

// ThusAssumptionsCannotAllHold derives, from a proven contradiction, the
// disjunction of the negations of exactly the assumptions it was derived from.
// The result depends on no assumptions.
func (s *Session) ThusAssumptionsCannotAllHold(c *Proposition) (*Proposition, error) {
	if err := requireProven(THUS_ASSUMPTIONS_CANNOT_ALL_HOLD, c); err != nil {
		return nil, err
	} else if c.kind != CONTRADICTION {
		return nil, failure(THUS_ASSUMPTIONS_CANNOT_ALL_HOLD, "expected contradiction", c)
	} else if len(c.fromAssumptions) < 2 {
		return nil, failure(THUS_ASSUMPTIONS_CANNOT_ALL_HOLD, "contradiction requires at least two assumptions", c)
	}
	//
	negations := make([]*Proposition, len(c.fromAssumptions))
	//
	for i, a := range c.fromAssumptions {
		negations[i] = Not(a.Strip())
	}
	//
	q := s.certify(Or(negations...), inference(THUS_ASSUMPTIONS_CANNOT_ALL_HOLD, c), c)
	q.fromAssumptions = nil
	//
	return q, nil
}
