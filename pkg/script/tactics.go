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
package script

import (
	"errors"
	"fmt"

	"github.com/consensys/go-deduce/pkg/kernel"
	"github.com/consensys/go-deduce/pkg/term"
)

// Everything a tactic needs to know about the step invoking it.
type invocation struct {
	runner *runner
	step   *Step
	scope  *scope
}

func (p *invocation) session() *kernel.Session {
	return p.runner.session
}

// The proposition which the step claims to derive, for those rules which
// derive a given statement.
func (p *invocation) target() (*kernel.Proposition, error) {
	if p.step.Proves == "" {
		return nil, fmt.Errorf("rule %s requires \"proves\"", p.step.Rule)
	}
	//
	return p.runner.parse("proves", p.step.Proves, p.scope.env)
}

// The term argument of the step.
func (p *invocation) term() (term.Term, error) {
	if p.step.Term == "" {
		return nil, fmt.Errorf("rule %s requires \"term\"", p.step.Rule)
	}
	//
	return p.runner.parseTerm("term", p.step.Term, p.scope.env)
}

type tactic func(*invocation, []*kernel.Proposition) (*kernel.Proposition, error)

// Rules which steps can apply.  Axioms, assumptions and context closure are
// instead introduced by the corresponding forms of step.
var tactics = map[kernel.Rule]tactic{
	kernel.MODUS_PONENS:                     binary((*kernel.Session).ModusPonens),
	kernel.MODUS_TOLLENS:                    binary((*kernel.Session).ModusTollens),
	kernel.HYPOTHETICAL_SYLLOGISM:           binary((*kernel.Session).HypotheticalSyllogism),
	kernel.FOLLOWED_FROM:                    variadic((*kernel.Session).FollowedFrom),
	kernel.CONJUNCTION_INTRO:                conjunctionIntro,
	kernel.CONJUNCTION_ELIM:                 conjunctionElim,
	kernel.DISJUNCTION_INTRO:                disjunctionIntro,
	kernel.RESOLVE:                          variadic((*kernel.Session).Resolve),
	kernel.UNIT_RESOLVE:                     binary((*kernel.Session).UnitResolve),
	kernel.RESOLVE_CLAUSES:                  binary((*kernel.Session).ResolveClauses),
	kernel.EXOR_ELIM:                        binary((*kernel.Session).ExOrEliminate),
	kernel.DOUBLE_NEGATION:                  unary((*kernel.Session).DoubleNegation),
	kernel.CONTRAPOSITIVE:                   unary((*kernel.Session).Contrapositive),
	kernel.IFF_INTRO:                        binary((*kernel.Session).IffIntro),
	kernel.IFF_ELIM:                         iffElim,
	kernel.CONTRADICTS:                      binary((*kernel.Session).Contradicts),
	kernel.THUS_ASSUMPTIONS_CANNOT_ALL_HOLD: unary((*kernel.Session).ThusAssumptionsCannotAllHold),
	kernel.THUS_FORALL:                      thusForall,
	kernel.THUS_THERE_EXISTS:                thusThereExists,
	kernel.IN_PARTICULAR:                    inParticular,
	kernel.IS_SPECIAL_CASE_OF:               isSpecialCaseOf,
	kernel.QUANTIFIED_MODUS_PONENS:          quantifiedModusPonens,
	kernel.EXISTENTIAL_ELIM:                 binary((*kernel.Session).ExistentialElimination),
	kernel.REFLEXIVITY:                      reflexivity,
	kernel.SYMMETRY:                         unary((*kernel.Session).Symmetry),
	kernel.SUBSTITUTE:                       substitute,
	kernel.BY_SIMPLIFICATION:                bySimplification,
	kernel.TRANSITIVE:                       transitive,
}

func unary(fn func(*kernel.Session, *kernel.Proposition) (*kernel.Proposition, error)) tactic {
	return func(inv *invocation, premises []*kernel.Proposition) (*kernel.Proposition, error) {
		if err := arity(premises, 1); err != nil {
			return nil, err
		}
		//
		return fn(inv.session(), premises[0])
	}
}

func binary(fn func(*kernel.Session, *kernel.Proposition, *kernel.Proposition) (*kernel.Proposition, error)) tactic {
	return func(inv *invocation, premises []*kernel.Proposition) (*kernel.Proposition, error) {
		if err := arity(premises, 2); err != nil {
			return nil, err
		}
		//
		return fn(inv.session(), premises[0], premises[1])
	}
}

func variadic(fn func(*kernel.Session, *kernel.Proposition, ...*kernel.Proposition) (*kernel.Proposition,
	error)) tactic {
	return func(inv *invocation, premises []*kernel.Proposition) (*kernel.Proposition, error) {
		if len(premises) == 0 {
			return nil, errors.New("expected at least one premise")
		}
		//
		return fn(inv.session(), premises[0], premises[1:]...)
	}
}

func arity(premises []*kernel.Proposition, n int) error {
	if len(premises) != n {
		return fmt.Errorf("expected %d premise(s), found %d", n, len(premises))
	}
	//
	return nil
}

func conjunctionIntro(inv *invocation, premises []*kernel.Proposition) (*kernel.Proposition, error) {
	return inv.session().Conjoin(premises...)
}

// Extract the conjunct given by "proves".
func conjunctionElim(inv *invocation, premises []*kernel.Proposition) (*kernel.Proposition, error) {
	target, err := inv.target()
	//
	if err != nil {
		return nil, err
	} else if err := arity(premises, 1); err != nil {
		return nil, err
	}
	//
	parts, err := inv.session().Split(premises[0])
	//
	if err != nil {
		return nil, err
	}
	//
	for _, p := range parts {
		if kernel.Equivalent(p, target) {
			return p, nil
		}
	}
	//
	return nil, fmt.Errorf("%s is not a conjunct of %s", target, premises[0])
}

// Weaken a premise into the disjunction given by "proves", whose first
// disjunct must be the premise.
func disjunctionIntro(inv *invocation, premises []*kernel.Proposition) (*kernel.Proposition, error) {
	target, err := inv.target()
	//
	if err != nil {
		return nil, err
	} else if err := arity(premises, 1); err != nil {
		return nil, err
	} else if target.Kind() != kernel.OR {
		return nil, fmt.Errorf("%s is not a disjunction", target)
	}
	//
	return inv.session().Disjoin(premises[0], target.Children()[1:]...)
}

// Eliminate a biconditional in whichever direction gives "proves" (forwards
// if none is given).
func iffElim(inv *invocation, premises []*kernel.Proposition) (*kernel.Proposition, error) {
	if err := arity(premises, 1); err != nil {
		return nil, err
	}
	//
	forward, err := inv.session().IffForward(premises[0])
	//
	if err != nil || inv.step.Proves == "" {
		return forward, err
	}
	//
	target, err := inv.target()
	//
	if err != nil {
		return nil, err
	} else if kernel.Equivalent(forward, target) {
		return forward, nil
	}
	//
	return inv.session().IffBackward(premises[0])
}

func thusForall(inv *invocation, premises []*kernel.Proposition) (*kernel.Proposition, error) {
	if err := arity(premises, 1); err != nil {
		return nil, err
	}
	//
	t, err := inv.term()
	//
	if err != nil {
		return nil, err
	}
	//
	v, ok := t.(*term.Variable)
	//
	if !ok {
		return nil, fmt.Errorf("%s is not a variable", t)
	}
	//
	return inv.session().ThusForall(premises[0], v)
}

// Generalise the witness given by "term" into a variable named by "bind".
func thusThereExists(inv *invocation, premises []*kernel.Proposition) (*kernel.Proposition, error) {
	if err := arity(premises, 1); err != nil {
		return nil, err
	} else if inv.step.Bind == "" {
		return nil, errors.New("rule thus_there_exists requires \"bind\"")
	}
	//
	witness, err := inv.term()
	//
	if err != nil {
		return nil, err
	}
	//
	return inv.session().ThusThereExists(premises[0], inv.step.Bind, witness)
}

// Instantiate a universal statement with the term given by "term".  Any
// further premises are available as proofs of membership.
func inParticular(inv *invocation, premises []*kernel.Proposition) (*kernel.Proposition, error) {
	if len(premises) == 0 {
		return nil, errors.New("expected at least one premise")
	}
	//
	t, err := inv.term()
	//
	if err != nil {
		return nil, err
	}
	//
	return inv.session().InParticular(premises[0], t, premises[1:]...)
}

func isSpecialCaseOf(inv *invocation, premises []*kernel.Proposition) (*kernel.Proposition, error) {
	target, err := inv.target()
	//
	if err != nil {
		return nil, err
	} else if len(premises) == 0 {
		return nil, errors.New("expected at least one premise")
	}
	//
	return inv.session().IsSpecialCaseOf(target, premises[0], premises[1:]...)
}

func quantifiedModusPonens(inv *invocation, premises []*kernel.Proposition) (*kernel.Proposition, error) {
	if len(premises) < 2 {
		return nil, fmt.Errorf("expected at least 2 premises, found %d", len(premises))
	}
	//
	return inv.session().QuantifiedModusPonens(premises[0], premises[1], premises[2:]...)
}

func reflexivity(inv *invocation, premises []*kernel.Proposition) (*kernel.Proposition, error) {
	if err := arity(premises, 0); err != nil {
		return nil, err
	}
	//
	t, err := inv.term()
	//
	if err != nil {
		return nil, err
	}
	//
	return inv.session().Reflexivity(t), nil
}

func substitute(inv *invocation, premises []*kernel.Proposition) (*kernel.Proposition, error) {
	if err := arity(premises, 2); err != nil {
		return nil, err
	}
	//
	return inv.session().Substitute(premises[0], premises[1])
}

func bySimplification(inv *invocation, premises []*kernel.Proposition) (*kernel.Proposition, error) {
	target, err := inv.target()
	//
	if err != nil {
		return nil, err
	} else if err := arity(premises, 0); err != nil {
		return nil, err
	}
	//
	return inv.session().BySimplification(target)
}

// Chain the premises, deriving the relation given by "relation" or else the
// relation of "proves".
func transitive(inv *invocation, premises []*kernel.Proposition) (*kernel.Proposition, error) {
	want, ok := relations[inv.step.Relation]
	//
	if !ok {
		want = inv.step.Relation
	}
	//
	if want == "" {
		target, err := inv.target()
		//
		if err != nil {
			return nil, err
		}
		//
		want = target.Name()
	}
	//
	return inv.session().Transitive(want, premises...)
}

// Alternative spellings of relation names.
var relations = map[string]string{
	"≤": kernel.LESS_THAN_EQUALS,
	"≥": kernel.GREATER_THAN_EQUALS,
	"!=": kernel.NOT_EQUALS,
}

// Applicable checks whether a given rule can be applied by a step.
func Applicable(rule kernel.Rule) bool {
	_, ok := tactics[rule]
	return ok
}
