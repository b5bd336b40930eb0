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
	log "github.com/sirupsen/logrus"
)

// ThusForall generalises a proven proposition over a free variable, deriving
// ∀v. p.  The caller is responsible for ensuring v does not carry a dependency
// on an outer assumption; assumption contexts do this automatically.
func (s *Session) ThusForall(p *Proposition, v *term.Variable) (*Proposition, error) {
	if err := requireProven(THUS_FORALL, p); err != nil {
		return nil, err
	} else if v == nil {
		return nil, failure(THUS_FORALL, "missing variable", p)
	} else if p.Binds(v) {
		return nil, failuref(THUS_FORALL, []*Proposition{p}, "variable %s already bound", v)
	}
	//
	for _, a := range p.fromAssumptions {
		if a.Contains(v) {
			log.Warnf("generalising %s over %s which assumption %s depends on", p, v, a)
		}
	}
	//
	return s.certify(Forall(v, p.Strip()), inference(THUS_FORALL, p, v), p), nil
}

// ThusThereExists abstracts occurrences of a witness in a proven proposition
// into a fresh variable, deriving ∃v. p[witness:=v].  When paths are given,
// only the occurrences at those positions are abstracted.
func (s *Session) ThusThereExists(p *Proposition, name string, witness term.Term,
	paths ...Path) (*Proposition, error) {
	if err := requireProven(THUS_THERE_EXISTS, p); err != nil {
		return nil, err
	}
	//
	var (
		v     = s.Variable(name)
		inner = p.Replace(witness, v, paths...)
	)
	//
	if Equal(inner, p) {
		return nil, failuref(THUS_THERE_EXISTS, []*Proposition{p}, "witness %s does not occur", witness)
	}
	//
	return s.certify(Exists(v, inner), inference(THUS_THERE_EXISTS, p, witness), p), nil
}

// ThusThereExistsIn abstracts occurrences of a witness in a proven proposition
// into a fresh variable ranging over a set, deriving ∃v∈set. p[witness:=v].
// This requires a proof that the witness belongs to the set, either given
// explicitly or found in the knowledge base.
func (s *Session) ThusThereExistsIn(p *Proposition, name string, witness term.Term, set term.Term,
	membership *Proposition, paths ...Path) (*Proposition, error) {
	var (
		want  = In(witness, set)
		facts []*Proposition
	)
	//
	if err := requireProven(THUS_THERE_EXISTS, p); err != nil {
		return nil, err
	} else if membership != nil {
		facts = append(facts, membership)
	}
	//
	m, err := s.membership(THUS_THERE_EXISTS, want, facts)
	//
	if err != nil {
		return nil, err
	}
	//
	var (
		v     = s.Variable(name)
		inner = p.Replace(witness, v, paths...)
	)
	//
	if Equal(inner, p) {
		return nil, failuref(THUS_THERE_EXISTS, []*Proposition{p}, "witness %s does not occur", witness)
	}
	//
	return s.certify(ExistsIn(v, set, inner), inference(THUS_THERE_EXISTS, p, witness, m), p, m), nil
}

// InParticular instantiates a proven universal statement with a given term,
// deriving inner[v:=t].  For ∀v∈S. inner, a proof of t∈S is also required,
// either amongst the facts given or in the knowledge base.  A supplied
// membership of t in a different set is reported as an inconsistent
// substitution.
func (s *Session) InParticular(forall *Proposition, t term.Term, facts ...*Proposition) (*Proposition, error) {
	if err := requireProven(IN_PARTICULAR, forall); err != nil {
		return nil, err
	} else if forall.kind != FORALL && forall.kind != FORALL_IN_SET {
		return nil, failure(IN_PARTICULAR, "expected universal statement", forall)
	}
	//
	inner := forall.Inner().Replace(forall.variable, t)
	//
	if forall.kind == FORALL {
		return s.certify(inner, inference(IN_PARTICULAR, forall, t), forall), nil
	}
	//
	m, err := s.membership(IN_PARTICULAR, In(t, forall.set), facts)
	//
	if err != nil {
		return nil, err
	}
	//
	return s.certify(inner, inference(IN_PARTICULAR, forall, t, m), forall, m), nil
}

// IsSpecialCaseOf derives p as an instance of a proven universal statement q.
// The nested quantifiers of q are peeled away, and the remaining statement is
// unified against p.  Any in-set quantifiers additionally require proofs of
// membership for the terms their variables were bound to.
func (s *Session) IsSpecialCaseOf(p *Proposition, q *Proposition, facts ...*Proposition) (*Proposition, error) {
	if err := requireProven(IS_SPECIAL_CASE_OF, q); err != nil {
		return nil, err
	}
	//
	layers, body := peel(q)
	//
	if len(layers) == 0 {
		return nil, failure(IS_SPECIAL_CASE_OF, "expected universal statement", q)
	}
	//
	u := Unify(p, body, layerVariables(layers)...)
	//
	if !u.Ok() {
		return nil, failure(IS_SPECIAL_CASE_OF, "not an instance", p, q)
	}
	//
	ms, err := s.memberships(IS_SPECIAL_CASE_OF, layers, u.Bindings, facts)
	//
	if err != nil {
		return nil, err
	}
	//
	others := make([]any, len(ms))
	//
	for i, m := range ms {
		others[i] = m
	}
	//
	return s.certify(p, inference(IS_SPECIAL_CASE_OF, q, others...), append(ms, q)...), nil
}

// QuantifiedModusPonens derives Q(t) from a proven P(t) and a proven universal
// implication ∀x. P(x) → Q(x).  The instantiation is found by unifying the
// antecedent with p.  Every quantified variable mentioned by the consequent
// must be determined by this unification.
func (s *Session) QuantifiedModusPonens(forall *Proposition, p *Proposition,
	facts ...*Proposition) (*Proposition, error) {
	if err := requireProven(QUANTIFIED_MODUS_PONENS, forall, p); err != nil {
		return nil, err
	}
	//
	layers, body := peel(forall)
	//
	if len(layers) == 0 || body.kind != IMPLIES {
		return nil, failure(QUANTIFIED_MODUS_PONENS, "expected universal implication", forall)
	}
	//
	vars := layerVariables(layers)
	u := Unify(p, body.Left(), vars...)
	//
	if !u.Ok() {
		return nil, failure(QUANTIFIED_MODUS_PONENS, "premise does not match antecedent", p, forall)
	}
	//
	for _, v := range vars {
		if _, ok := u.Bindings.Lookup(v); !ok && body.Right().Contains(v) {
			return nil, failuref(QUANTIFIED_MODUS_PONENS, []*Proposition{p, forall},
				"consequent mentions undetermined variable %s", v)
		}
	}
	//
	ms, err := s.memberships(QUANTIFIED_MODUS_PONENS, layers, u.Bindings, facts)
	//
	if err != nil {
		return nil, err
	}
	//
	others := []any{p}
	//
	for _, m := range ms {
		others = append(others, m)
	}
	//
	result := u.Bindings.Apply(body.Right())
	//
	return s.certify(result, inference(QUANTIFIED_MODUS_PONENS, forall, others...), append(ms, forall, p)...), nil
}

// ExistentialElimination derives Q from a proven ∃v. P(v) and a proven
// ∀w. P(w) → Q, where Q does not mention w.  For ∃v∈S. P(v) the universal
// statement must range over the same set.
func (s *Session) ExistentialElimination(exists *Proposition, forall *Proposition) (*Proposition, error) {
	if err := requireProven(EXISTENTIAL_ELIM, exists, forall); err != nil {
		return nil, err
	}
	//
	switch {
	case exists.kind == EXISTS && forall.kind == FORALL:
	case exists.kind == EXISTS_IN_SET && forall.kind == FORALL_IN_SET && exists.set.Equal(forall.set):
	default:
		return nil, failure(EXISTENTIAL_ELIM, "quantifiers do not correspond", exists, forall)
	}
	//
	body := forall.Inner()
	//
	if body.kind != IMPLIES {
		return nil, failure(EXISTENTIAL_ELIM, "expected universal implication", forall)
	} else if renamed := body.Left().Replace(forall.variable, exists.variable); !Equal(renamed, exists.Inner()) {
		return nil, failure(EXISTENTIAL_ELIM, "antecedent does not match witness property", exists, forall)
	} else if body.Right().Contains(forall.variable) {
		return nil, failure(EXISTENTIAL_ELIM, "conclusion depends on witness", forall)
	}
	//
	return s.certify(body.Right(), inference(EXISTENTIAL_ELIM, exists, forall), exists, forall), nil
}

// layer is a single universal quantifier peeled from a statement.
type layer struct {
	variable *term.Variable
	// Domain (or nil for unrestricted quantifiers).
	set term.Term
}

// Dig through nested universal quantifiers to the first non-quantifier layer.
func peel(p *Proposition) ([]layer, *Proposition) {
	var layers []layer
	//
	for p.kind == FORALL || p.kind == FORALL_IN_SET {
		layers = append(layers, layer{p.variable, p.set})
		p = p.Inner()
	}
	//
	return layers, p
}

func layerVariables(layers []layer) []*term.Variable {
	vars := make([]*term.Variable, len(layers))
	//
	for i, l := range layers {
		vars[i] = l.variable
	}
	//
	return vars
}

// Find proofs of membership for every in-set layer, under a given
// instantiation.
func (s *Session) memberships(rule Rule, layers []layer, subst Substitution,
	facts []*Proposition) ([]*Proposition, error) {
	var ms []*Proposition
	//
	for _, l := range layers {
		if l.set == nil {
			continue
		}
		//
		t, ok := subst.Lookup(l.variable)
		//
		if !ok {
			return nil, failuref(rule, nil, "domain variable %s is undetermined", l.variable)
		}
		//
		m, err := s.membership(rule, In(t, subst.ApplyTerm(l.set)), facts)
		//
		if err != nil {
			return nil, err
		}
		//
		ms = append(ms, m)
	}
	//
	return ms, nil
}

// Find a proof of a given membership, either amongst the facts or in the
// knowledge base.
func (s *Session) membership(rule Rule, want *Proposition, facts []*Proposition) (*Proposition, error) {
	if m := s.lookup(want, facts); m != nil {
		return m, nil
	}
	// Check for a supplied membership which disagrees
	for _, f := range facts {
		if !f.IsProven() {
			return nil, failure(rule, "premise not proven", f)
		} else if f.IsRelation(ELEMENT_OF) && f.Lhs().Equal(want.Lhs()) {
			return nil, &InconsistentSubstitutionError{rule, want, f}
		}
	}
	//
	return nil, failure(rule, "membership not established", want)
}
