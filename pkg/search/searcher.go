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
package search

import (
	"github.com/consensys/go-deduce/pkg/kernel"
	log "github.com/sirupsen/logrus"
)

// DEFAULT_DEPTH is the number of rounds of forward chaining attempted when no
// depth is specified.
const DEFAULT_DEPTH = 3

// Step is a single inference which the searcher may attempt.  A step consumes
// either one or two premises, and may produce any number of conclusions.  A
// step which does not apply simply fails.
type Step struct {
	Rule  kernel.Rule
	Arity uint
	Apply func(*kernel.Session, []*kernel.Proposition) ([]*kernel.Proposition, error)
}

// Unary constructs a step consuming a single premise.
func Unary(rule kernel.Rule, fn func(*kernel.Session, *kernel.Proposition) (*kernel.Proposition, error)) Step {
	return Step{rule, 1, func(s *kernel.Session, ps []*kernel.Proposition) ([]*kernel.Proposition, error) {
		p, err := fn(s, ps[0])
		//
		if err != nil {
			return nil, err
		}
		//
		return []*kernel.Proposition{p}, nil
	}}
}

// Binary constructs a step consuming two premises, in order.
func Binary(rule kernel.Rule,
	fn func(*kernel.Session, *kernel.Proposition, *kernel.Proposition) (*kernel.Proposition, error)) Step {
	return Step{rule, 2, func(s *kernel.Session, ps []*kernel.Proposition) ([]*kernel.Proposition, error) {
		p, err := fn(s, ps[0], ps[1])
		//
		if err != nil {
			return nil, err
		}
		//
		return []*kernel.Proposition{p}, nil
	}}
}

// DefaultSteps returns the inferences attempted when none are specified.
// Premise order is the only priority: steps are attempted in the order given.
func DefaultSteps() []Step {
	return []Step{
		Binary(kernel.MODUS_PONENS, (*kernel.Session).ModusPonens),
		Binary(kernel.HYPOTHETICAL_SYLLOGISM, (*kernel.Session).HypotheticalSyllogism),
		Binary(kernel.QUANTIFIED_MODUS_PONENS, func(s *kernel.Session, all, p *kernel.Proposition) (
			*kernel.Proposition, error) {
			return s.QuantifiedModusPonens(all, p)
		}),
		Binary(kernel.EXISTENTIAL_ELIM, (*kernel.Session).ExistentialElimination),
		Binary(kernel.UNIT_RESOLVE, (*kernel.Session).UnitResolve),
		{kernel.CONJUNCTION_ELIM, 1, func(s *kernel.Session, ps []*kernel.Proposition) ([]*kernel.Proposition, error) {
			return s.Split(ps[0])
		}},
	}
}

// Searcher attempts to derive a target proposition from a knowledge base of
// proven propositions by forward chaining.  Each round applies every step to
// every combination of the facts known so far, and the facts derived are
// made available to subsequent rounds (together with their traces).
type Searcher struct {
	session  *kernel.Session
	Steps    []Step
	MaxDepth uint
}

// Option configures a searcher.
type Option func(*Searcher)

// WithDepth sets the maximum number of rounds attempted.
func WithDepth(depth uint) Option {
	return func(p *Searcher) {
		p.MaxDepth = depth
	}
}

// WithSteps sets the inferences attempted.
func WithSteps(steps ...Step) Option {
	return func(p *Searcher) {
		p.Steps = steps
	}
}

// New constructs a searcher which derives facts within a given session.
func New(session *kernel.Session, opts ...Option) *Searcher {
	p := &Searcher{session, DefaultSteps(), DEFAULT_DEPTH}
	//
	for _, opt := range opts {
		opt(p)
	}
	//
	return p
}

// Search for a derivation of a given target from a knowledge base of proven
// propositions.  This returns nil if no derivation is found within the
// maximum depth.  Facts which are not proven are ignored.  Of the facts
// derived while searching, only those making up the derivation returned
// remain proven within the session.
func (p *Searcher) Search(kb []*kernel.Proposition, target *kernel.Proposition) *Trace {
	var trace *Trace
	//
	p.session.Speculate(func() []*kernel.Proposition {
		if trace = p.search(kb, target); trace != nil {
			return []*kernel.Proposition{trace.Result}
		}
		//
		return nil
	})
	//
	return trace
}

func (p *Searcher) search(kb []*kernel.Proposition, target *kernel.Proposition) *Trace {
	var working []*Trace
	//
	for _, fact := range kb {
		if !fact.IsProven() {
			log.Debugf("ignoring unproven fact %s", fact)
			continue
		} else if kernel.Equivalent(fact, target) {
			return leaf(fact)
		}
		//
		if !known(working, fact) {
			working = append(working, leaf(fact))
		}
	}
	//
	for round := uint(1); round <= p.MaxDepth; round++ {
		if t := p.instance(working, target); t != nil {
			return t
		}
		//
		derived, found := p.round(working, target)
		//
		log.Debugf("search round %d derived %d fact(s)", round, len(derived))
		//
		if found != nil {
			return found
		} else if len(derived) == 0 {
			break
		}
		//
		working = append(working, derived...)
	}
	//
	return p.instance(working, target)
}

// Apply every step to every combination of working facts, returning those
// facts derived which were not already known.  If the target is derived, the
// search stops immediately.
func (p *Searcher) round(working []*Trace, target *kernel.Proposition) ([]*Trace, *Trace) {
	var derived []*Trace
	//
	for _, step := range p.Steps {
		for _, premises := range combinations(working, step.Arity) {
			props := make([]*kernel.Proposition, len(premises))
			//
			for i, t := range premises {
				props[i] = t.Result
			}
			//
			results, err := step.Apply(p.session, props)
			//
			if err != nil {
				continue
			}
			//
			for _, r := range results {
				t := &Trace{step.Rule, premises, r}
				//
				if kernel.Equivalent(r, target) {
					return derived, t
				} else if !known(working, r) && !known(derived, r) {
					derived = append(derived, t)
				}
			}
		}
	}
	//
	return derived, nil
}

// Check whether the target is an instance of some universal statement amongst
// the working facts.
func (p *Searcher) instance(working []*Trace, target *kernel.Proposition) *Trace {
	for _, t := range working {
		if k := t.Result.Kind(); k != kernel.FORALL && k != kernel.FORALL_IN_SET {
			continue
		}
		//
		if r, err := p.session.IsSpecialCaseOf(target, t.Result); err == nil {
			return &Trace{kernel.IS_SPECIAL_CASE_OF, []*Trace{t}, r}
		}
	}
	//
	return nil
}

func known(traces []*Trace, p *kernel.Proposition) bool {
	for _, t := range traces {
		if kernel.Equivalent(t.Result, p) {
			return true
		}
	}
	//
	return false
}

// Enumerate ordered selections of distinct traces of a given size (either one
// or two).
func combinations(traces []*Trace, arity uint) [][]*Trace {
	var res [][]*Trace
	//
	switch arity {
	case 1:
		for _, t := range traces {
			res = append(res, []*Trace{t})
		}
	case 2:
		for i, lhs := range traces {
			for j, rhs := range traces {
				if i != j {
					res = append(res, []*Trace{lhs, rhs})
				}
			}
		}
	default:
		panic("unsupported arity")
	}
	//
	return res
}
