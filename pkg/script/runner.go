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
	"maps"

	"github.com/consensys/go-deduce/pkg/kernel"
	"github.com/consensys/go-deduce/pkg/search"
	"github.com/consensys/go-deduce/pkg/syntax"
	"github.com/consensys/go-deduce/pkg/term"
	log "github.com/sirupsen/logrus"
)

// Report records the outcome of searching for a single goal.
type Report struct {
	Goal *kernel.Proposition
	// Set when the goal was expected not to be derivable.
	Refute bool
	// Derivation found, or nil if none was found.
	Trace *search.Trace
	// Set if the derivation found does not pass audit.
	Err error
}

// Proven checks whether a derivation of the goal was found.
func (p *Report) Proven() bool {
	return p.Trace != nil
}

// Ok checks whether the outcome for this goal was as expected.
func (p *Report) Ok() bool {
	return p.Err == nil && p.Proven() != p.Refute
}

// Result records the outcome of running a script.
type Result struct {
	Name string
	// Facts available to search, including those derived by steps.
	Facts   []*kernel.Proposition
	Reports []Report
}

// Ok checks whether every goal had the expected outcome.
func (p *Result) Ok() bool {
	for i := range p.Reports {
		if !p.Reports[i].Ok() {
			return false
		}
	}
	//
	return true
}

// Run a given script in a fresh session.  If depth is non-zero, it overrides
// every search depth given in the script.  An error is returned if the
// script cannot be parsed, or one of its steps fails.  Goals which are not
// discharged are not errors, but are reported in the result.
func Run(script *Script, depth uint) (*Result, error) {
	var (
		r   = &runner{script.Name, kernel.NewSession(), nil}
		env = syntax.NewEnvironment()
		sc  = &scope{env, make(map[string]*kernel.Proposition), nil}
	)
	//
	switch script.Order {
	case "", "numeric":
		r.session.SetOrder(kernel.NumericOrder)
	case "subset":
		r.session.SetOrder(kernel.SubsetOrder)
	default:
		return nil, fmt.Errorf("unknown order \"%s\"", script.Order)
	}
	//
	for _, name := range script.Variables {
		if !env.Declare(r.session.Variable(name)) {
			return nil, fmt.Errorf("variable %s declared twice", name)
		}
	}
	//
	for i, f := range script.Axioms {
		p, err := r.parse(fmt.Sprintf("axiom %d", i+1), f.Prop, env)
		//
		if err != nil {
			return nil, err
		}
		//
		r.bind(sc, f.Name, r.session.Axiom(p))
	}
	//
	if err := r.steps(script.Steps, sc); err != nil {
		return nil, err
	}
	//
	result := &Result{Name: script.Name}
	//
	for i, g := range script.Goals {
		target, err := r.parse(fmt.Sprintf("goal %d", i+1), g.Prove, env)
		//
		if err != nil {
			return nil, err
		}
		//
		report := r.prove(target, searchDepth(depth, g.Depth, script.Depth))
		report.Refute = g.Refute
		result.Reports = append(result.Reports, report)
	}
	//
	result.Facts = r.kb
	//
	return result, nil
}

// Determine the depth to search for a goal, where the first non-zero depth
// given wins.
func searchDepth(depths ...uint) uint {
	for _, d := range depths {
		if d != 0 {
			return d
		}
	}
	//
	return search.DEFAULT_DEPTH
}

type runner struct {
	name    string
	session *kernel.Session
	// Top-level facts available to search
	kb []*kernel.Proposition
}

// Names visible at some point in a script.
type scope struct {
	env   *syntax.Environment
	facts map[string]*kernel.Proposition
	// Innermost context, or nil at the top level.
	ctx *kernel.Context
}

func (r *runner) prove(target *kernel.Proposition, depth uint) Report {
	var (
		searcher = search.New(r.session, search.WithDepth(depth))
		report   = Report{Goal: target}
	)
	//
	if report.Trace = searcher.Search(r.kb, target); report.Trace != nil {
		log.Debugf("goal %s derived at depth %d", target, report.Trace.Depth())
		// Later goals may build on earlier ones
		if !report.Trace.IsLeaf() {
			r.kb = append(r.kb, report.Trace.Result)
		}
		//
		report.Err = kernel.Audit(report.Trace.Result)
	} else {
		log.Debugf("goal %s not derived within depth %d", target, depth)
	}
	//
	return report
}

func (r *runner) steps(steps []Step, sc *scope) error {
	for i := range steps {
		if err := r.step(&steps[i], sc); err != nil {
			return fmt.Errorf("step %s: %w", steps[i].label(), err)
		}
	}
	//
	return nil
}

func (r *runner) step(s *Step, sc *scope) error {
	var (
		results []*kernel.Proposition
		err     error
	)
	//
	kind, err := s.Kind()
	if err != nil {
		return err
	}
	//
	switch kind {
	case "let":
		if sc.ctx == nil {
			return errors.New("variable introduced outside of a context")
		}
		//
		v, err := sc.ctx.Let(s.Let)
		if err != nil {
			return err
		}
		//
		sc.env = sc.env.Extend(v)
		//
		return nil
	case "assume":
		var p *kernel.Proposition
		//
		if p, err = r.parse("assume", s.Assume, sc.env); err == nil {
			p, err = r.session.Assume(p)
			results = []*kernel.Proposition{p}
		}
	case "rule":
		var p *kernel.Proposition
		//
		if p, err = r.apply(s, sc); err == nil {
			results = []*kernel.Proposition{p}
		}
	case "context":
		results, err = r.context(s, sc)
	}
	//
	if err != nil {
		return err
	}
	//
	if s.Proves != "" {
		expected, err := r.parse("proves", s.Proves, sc.env)
		//
		if err != nil {
			return err
		} else if len(results) == 0 {
			return fmt.Errorf("nothing derived, expected %s", expected)
		} else if !kernel.Equivalent(results[0], expected) {
			return fmt.Errorf("derived %s, expected %s", results[0], expected)
		}
	}
	//
	for i, p := range results {
		log.Debugf("step %s derived %s", s.label(), p)
		//
		if s.Conclude {
			if err := sc.ctx.Conclude(p); err != nil {
				return err
			}
		}
		//
		if i == 0 {
			r.bind(sc, s.Name, p)
		} else if s.Name != "" {
			r.bind(sc, fmt.Sprintf("%s.%d", s.Name, i+1), p)
		} else {
			r.bind(sc, "", p)
		}
	}
	//
	return nil
}

func (r *runner) context(s *Step, sc *scope) ([]*kernel.Proposition, error) {
	var (
		name  = s.Name
		inner = &scope{sc.env.Extend(), maps.Clone(sc.facts), nil}
	)
	//
	if name == "" {
		name = "context"
	}
	//
	return r.session.With(name, func(c *kernel.Context) error {
		inner.ctx = c
		return r.steps(s.Context, inner)
	})
}

func (r *runner) apply(s *Step, sc *scope) (*kernel.Proposition, error) {
	rule, err := kernel.ParseRule(s.Rule)
	//
	if err != nil {
		return nil, err
	}
	//
	fn, ok := tactics[rule]
	//
	if !ok {
		return nil, fmt.Errorf("rule %s cannot be applied by a step", rule)
	}
	//
	premises := make([]*kernel.Proposition, len(s.Premises))
	//
	for i, name := range s.Premises {
		if premises[i], ok = sc.facts[name]; !ok {
			return nil, fmt.Errorf("unknown premise %s", name)
		}
	}
	//
	return fn(&invocation{r, s, sc}, premises)
}

// Make a derived fact available by name, and (at the top level) to search.
func (r *runner) bind(sc *scope, name string, p *kernel.Proposition) {
	if name != "" {
		sc.facts[name] = p
	}
	//
	if sc.ctx == nil {
		r.kb = append(r.kb, p)
	}
}

func (r *runner) parse(label string, text string, env *syntax.Environment) (*kernel.Proposition, error) {
	srcfile := syntax.NewSourceFile(fmt.Sprintf("%s (%s)", r.name, label), []byte(text))
	//
	p, errs := syntax.ParseFile(srcfile, env)
	//
	if len(errs) != 0 {
		return nil, &errs[0]
	}
	//
	return p, nil
}

func (r *runner) parseTerm(label string, text string, env *syntax.Environment) (term.Term, error) {
	srcfile := syntax.NewSourceFile(fmt.Sprintf("%s (%s)", r.name, label), []byte(text))
	//
	t, errs := syntax.ParseTermFile(srcfile, env)
	//
	if len(errs) != 0 {
		return nil, &errs[0]
	}
	//
	return t, nil
}
