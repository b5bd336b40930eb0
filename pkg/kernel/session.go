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
	log "github.com/sirupsen/logrus"
)

// Session holds the mutable state of a proof under construction: the stack of
// open assumption contexts, and the knowledge base of every free variable.
// All tactics are applied through a session, so that derived propositions are
// recorded against the innermost open context.  A session must be confined to
// a single goroutine.
type Session struct {
	// Stack of open contexts (innermost last).
	contexts []*Context
	// Propositions proven about each free variable.
	knowledge map[*term.Variable][]*Proposition
	// Variables which have left the scope they were introduced in.
	retired map[*term.Variable]bool
	// Ordering used by transitivity and symmetry.
	order Order
	// Propositions certified during speculation, or nil when not speculating.
	speculation *[]*Proposition
}

// NewSession constructs an empty session, with no open contexts.
func NewSession() *Session {
	return &Session{
		knowledge: make(map[*term.Variable][]*Proposition),
		retired:   make(map[*term.Variable]bool),
		order:     NumericOrder,
	}
}

// SetOrder determines the ordering family used for transitivity and symmetry.
func (s *Session) SetOrder(order Order) {
	s.order = order
}

// Variable constructs a fresh free variable.
func (s *Session) Variable(name string) *term.Variable {
	return term.NewVariable(name)
}

// Depth returns the number of currently open contexts.
func (s *Session) Depth() uint {
	return uint(len(s.contexts))
}

// Top returns the innermost open context, or nil if there are none.
func (s *Session) Top() *Context {
	if len(s.contexts) == 0 {
		return nil
	}
	//
	return s.contexts[len(s.contexts)-1]
}

// Knowledge returns the propositions currently proven about a given free
// variable.
func (s *Session) Knowledge(v *term.Variable) []*Proposition {
	return slices.Clone(s.knowledge[v])
}

// IsRetired checks whether a variable has left the scope in which it was
// introduced.
func (s *Session) IsRetired(v *term.Variable) bool {
	return s.retired[v]
}

// Axiom introduces a proposition which holds unconditionally.  The returned
// proposition is a proven copy of the one given.
func (s *Session) Axiom(p *Proposition) *Proposition {
	q := s.certify(p, inference(AXIOM, nil))
	//
	log.Debugf("axiom %s", q)
	//
	return q
}

// Assume introduces a proposition which is temporarily assumed to hold.  If a
// context is open, the assumption is recorded in the innermost one and is
// discharged when that context closes.  The returned proposition is a copy of
// the one given, which depends only on itself.
func (s *Session) Assume(p *Proposition) (*Proposition, error) {
	if top := s.Top(); top != nil {
		return top.Assume(p)
	}
	//
	return s.assume(p), nil
}

func (s *Session) assume(p *Proposition) *Proposition {
	q := p.Strip()
	q.assumption = true
	q.deducedFrom = inference(ASSUMPTION, nil)
	q.fromAssumptions = []*Proposition{q}
	//
	s.learn(q)
	log.Debugf("assume %s", q)
	//
	return q
}

// Construct a proven copy of a given proposition which is justified by a given
// inference, and which depends on the assumptions of a given set of premises.
// This is the only way (other than by assumption) for a proposition to become
// proven.
func (s *Session) certify(p *Proposition, inf *Inference, premises ...*Proposition) *Proposition {
	q := p.Strip()
	q.proven = true
	q.deducedFrom = inf
	q.fromAssumptions = unionAssumptions(premises...)
	//
	if s.speculation != nil {
		*s.speculation = append(*s.speculation, q)
	} else {
		s.record(q)
	}
	//
	log.Debugf("%s ⊢ %s", inf.rule, q)
	//
	return q
}

// Record a newly proven proposition against the innermost context, and in the
// knowledge base of its variables.
func (s *Session) record(q *Proposition) {
	if top := s.Top(); top != nil {
		top.proven = append(top.proven, q)
	}
	//
	s.learn(q)
}

// Speculate runs a function which may derive any number of propositions, such
// as a proof search.  Once it returns, only the propositions it returns (and
// those they were derived from) remain proven and are recorded against the
// innermost context.  Everything else derived along the way is withdrawn.
// Speculation within speculation is part of the outer speculation.
func (s *Session) Speculate(fn func() []*Proposition) {
	if s.speculation != nil {
		fn()
		return
	}
	//
	var derived []*Proposition
	//
	s.speculation = &derived
	keep := fn()
	s.speculation = nil
	// Determine what the kept propositions depend upon
	reachable := make(map[*Proposition]bool)
	//
	for _, p := range keep {
		mark(p, reachable)
	}
	//
	var withdrawn int
	//
	for _, q := range derived {
		if reachable[q] {
			s.record(q)
		} else {
			q.proven = false
			withdrawn++
		}
	}
	//
	log.Debugf("speculation kept %d and withdrew %d proposition(s)", len(derived)-withdrawn, withdrawn)
}

func mark(p *Proposition, reachable map[*Proposition]bool) {
	if p == nil || reachable[p] {
		return
	}
	//
	reachable[p] = true
	//
	if p.deducedFrom != nil {
		for _, q := range p.deducedFrom.Premises() {
			mark(q, reachable)
		}
	}
}

// Record an atomic proposition against the knowledge base of each free
// variable it mentions.
func (s *Session) learn(p *Proposition) {
	if p.kind != RELATION {
		return
	}
	//
	for _, v := range p.FreeVariables() {
		s.knowledge[v] = append(s.knowledge[v], p)
	}
}

// Remove any proposition which is no longer proven from every knowledge base,
// and drop the knowledge bases of retired variables entirely.
func (s *Session) forget(vars []*term.Variable) {
	for _, v := range vars {
		delete(s.knowledge, v)
		s.retired[v] = true
	}
	//
	for v, facts := range s.knowledge {
		s.knowledge[v] = slices.DeleteFunc(facts, func(p *Proposition) bool { return !p.IsProven() })
	}
}

// Find a proven atomic proposition structurally equal to a given one, either
// amongst the facts given or in the knowledge base of its free variables.
func (s *Session) lookup(want *Proposition, facts []*Proposition) *Proposition {
	for _, f := range facts {
		if f.IsProven() && Equal(f, want) {
			return f
		}
	}
	//
	for _, v := range want.FreeVariables() {
		for _, f := range s.knowledge[v] {
			if f.IsProven() && Equal(f, want) {
				return f
			}
		}
	}
	//
	return nil
}

// Check that every premise given to a tactic is present and proven.
func requireProven(rule Rule, props ...*Proposition) error {
	for _, p := range props {
		if p == nil {
			return failure(rule, "missing premise")
		} else if !p.IsProven() {
			return failure(rule, "premise not proven", p)
		}
	}
	//
	return nil
}

func unionAssumptions(props ...*Proposition) []*Proposition {
	var res []*Proposition
	//
	for _, p := range props {
		for _, a := range p.fromAssumptions {
			if !slices.Contains(res, a) {
				res = append(res, a)
			}
		}
	}
	//
	return res
}

func withoutAssumptions(from []*Proposition, removed []*Proposition) []*Proposition {
	var res []*Proposition
	//
	for _, a := range from {
		if !slices.Contains(removed, a) {
			res = append(res, a)
		}
	}
	//
	return res
}
