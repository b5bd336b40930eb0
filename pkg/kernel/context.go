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

// Context is a nestable scope which records assumptions (both propositions
// and freshly introduced variables) in the order they were made.  When closed,
// a context synthesises for each of its conclusions the generalised statement
// which holds outside the scope.  For example, having introduced x, assumed
// x∈S and P(x), and then proven Q(x), closing yields ∀x∈S. P(x) → Q(x).
type Context struct {
	session *Session
	name    string
	// Ordered log of assumptions made in this context.
	log []entry
	// Propositions proven whilst this context was innermost.
	proven []*Proposition
	// Propositions explicitly marked for export.
	conclusions []*Proposition
	// Statements synthesised on close.
	results []*Proposition
	closed  bool
}

// entry is either an assumed proposition or an introduced variable.
type entry struct {
	prop     *Proposition
	variable *term.Variable
}

// Open a new assumption context, which becomes the innermost.
func (s *Session) Open(name string) *Context {
	c := &Context{session: s, name: name}
	s.contexts = append(s.contexts, c)
	//
	log.Debugf("opened context %s (depth %d)", name, len(s.contexts))
	//
	return c
}

// With opens a context, applies a given function to it and then closes it,
// returning the synthesised statements.  If the function fails, the context
// is discarded.
func (s *Session) With(name string, fn func(*Context) error) ([]*Proposition, error) {
	c := s.Open(name)
	//
	if err := fn(c); err != nil {
		c.Discard()
		return nil, err
	} else if err := c.Close(); err != nil {
		c.Discard()
		return nil, err
	}
	//
	return c.Proven()
}

// Name returns the name given to this context.
func (c *Context) Name() string {
	return c.name
}

// IsClosed checks whether this context has been closed (or discarded).
func (c *Context) IsClosed() bool {
	return c.closed
}

// Assumptions returns the propositions assumed in this context, in the order
// they were made.
func (c *Context) Assumptions() []*Proposition {
	var props []*Proposition
	//
	for _, e := range c.log {
		if e.prop != nil {
			props = append(props, e.prop)
		}
	}
	//
	return props
}

// Variables returns the variables introduced in this context, in the order
// they were introduced.
func (c *Context) Variables() []*term.Variable {
	var vars []*term.Variable
	//
	for _, e := range c.log {
		if e.variable != nil {
			vars = append(vars, e.variable)
		}
	}
	//
	return vars
}

// Let introduces a fresh variable into this context.
func (c *Context) Let(name string) (*term.Variable, error) {
	v := c.session.Variable(name)
	//
	if err := c.Introduce(v); err != nil {
		return nil, err
	}
	//
	return v, nil
}

// Introduce an existing free variable into this context.  The variable is
// generalised over when the context closes.
func (c *Context) Introduce(v *term.Variable) error {
	if err := c.mutable(); err != nil {
		return err
	} else if c.session.IsRetired(v) {
		return contextErrorf(c.name, "variable %s has left its scope", v)
	}
	//
	for _, ctx := range c.session.contexts {
		if slices.Contains(ctx.Variables(), v) {
			return contextErrorf(c.name, "variable %s already introduced in context %s", v, ctx.name)
		}
	}
	//
	c.log = append(c.log, entry{variable: v})
	//
	return nil
}

// Assume a proposition within this context.  A membership x∈S of a variable
// introduced in this context is treated as the domain of that variable, and
// must therefore immediately follow its introduction.
func (c *Context) Assume(p *Proposition) (*Proposition, error) {
	if err := c.mutable(); err != nil {
		return nil, err
	}
	//
	for _, v := range p.FreeVariables() {
		if c.session.IsRetired(v) {
			return nil, contextErrorf(c.name, "variable %s has left its scope", v)
		}
	}
	//
	if v, ok := c.domainOf(p); ok && !c.hasDomain(v) {
		if n := len(c.log); n == 0 || c.log[n-1].variable != v {
			return nil, contextErrorf(c.name, "membership %s must immediately follow introduction of %s", p, v)
		}
	}
	//
	q := c.session.assume(p)
	c.log = append(c.log, entry{prop: q})
	//
	return q, nil
}

// Conclude marks a proven proposition as a conclusion of this context, to be
// generalised and exported when it closes.
func (c *Context) Conclude(p *Proposition) error {
	if err := c.mutable(); err != nil {
		return err
	} else if err := requireProven(CLOSE_ASSUMPTIONS_CONTEXT, p); err != nil {
		return err
	}
	//
	c.conclusions = append(c.conclusions, p)
	//
	return nil
}

// Close this context, synthesising for each conclusion (or, if none were
// marked, the last proposition proven) the generalised statement which holds
// outside.  The assumptions of this context are retracted, as are any
// propositions proven inside which depend on them, and the knowledge of its
// variables is forgotten.  Closing an already closed context has no effect;
// closing a context which is not innermost is an error.
func (c *Context) Close() error {
	if c.closed {
		return nil
	} else if c.session.Top() != c {
		return contextErrorf(c.name, "cannot close context which is not innermost")
	}
	//
	targets := c.conclusions
	//
	if len(targets) == 0 && len(c.proven) > 0 {
		targets = c.proven[len(c.proven)-1:]
	}
	// Synthesise everything before changing any state
	statements := make([]*Proposition, len(targets))
	//
	for i, t := range targets {
		stmt, err := c.synthesise(t)
		//
		if err != nil {
			return err
		}
		//
		statements[i] = stmt
	}
	//
	local := c.Assumptions()
	c.retract()
	//
	for i, t := range targets {
		inf := inference(CLOSE_ASSUMPTIONS_CONTEXT, t)
		inf.contexts = []*Context{c}
		q := c.session.certify(statements[i], inf, t)
		q.fromAssumptions = withoutAssumptions(t.fromAssumptions, local)
		c.results = append(c.results, q)
	}
	//
	log.Debugf("closed context %s with %d result(s)", c.name, len(c.results))
	//
	return nil
}

// Discard this context without synthesising anything.  Its assumptions and
// their consequences are retracted exactly as for Close.
func (c *Context) Discard() {
	if c.closed {
		return
	}
	//
	c.retract()
	log.Debugf("discarded context %s", c.name)
}

// Proven returns the statements synthesised when this context was closed.
func (c *Context) Proven() ([]*Proposition, error) {
	if !c.closed {
		return nil, contextErrorf(c.name, "context is still open")
	}
	//
	return slices.Clone(c.results), nil
}

// Check this context can be mutated.
func (c *Context) mutable() error {
	if c.closed {
		return contextErrorf(c.name, "context is closed")
	} else if c.session.Top() != c {
		return contextErrorf(c.name, "context is not innermost")
	}
	//
	return nil
}

// Pop this context from the stack, clear the flags of its assumptions (and
// anything proven from them) and forget its variables.
func (c *Context) retract() {
	var (
		s      = c.session
		local  = c.Assumptions()
		parent *Context
	)
	//
	if i := slices.Index(s.contexts, c); i >= 0 {
		if i > 0 {
			parent = s.contexts[i-1]
		}
		//
		s.contexts = slices.Delete(s.contexts, i, i+1)
	}
	//
	for _, a := range local {
		a.assumption = false
	}
	//
	var kept []*Proposition
	//
	for _, p := range c.proven {
		if dependsOn(p, local) {
			p.proven = false
		} else {
			kept = append(kept, p)
		}
	}
	// What survives depends on the enclosing contexts, so must be retracted
	// along with them.
	if parent != nil {
		parent.proven = append(parent.proven, kept...)
	}
	//
	s.forget(c.Variables())
	c.closed = true
}

// Check whether a proposition depends upon any of a given set of assumptions.
func dependsOn(p *Proposition, assumptions []*Proposition) bool {
	for _, a := range p.fromAssumptions {
		if slices.Contains(assumptions, a) {
			return true
		}
	}
	//
	return false
}

// Walk the log in reverse, wrapping the conclusion in a quantifier for each
// variable and in an implication for each run of assumptions.
func (c *Context) synthesise(target *Proposition) (*Proposition, error) {
	var cons = target.Strip()
	//
	for i := len(c.log) - 1; i >= 0; {
		e := c.log[i]
		//
		switch {
		case e.variable != nil:
			if cons.Binds(e.variable) {
				return nil, contextErrorf(c.name, "conclusion already binds %s", e.variable)
			} else if cons.Contains(e.variable) {
				// Unused variables are not quantified, since ∀x. P is
				// equivalent to P when x does not occur in P.
				cons = Forall(e.variable, cons)
			}
			//
			i--
		case c.isDomain(i):
			v := c.log[i-1].variable
			set := e.prop.Rhs()
			//
			if cons.Binds(v) || set.Contains(v) {
				return nil, contextErrorf(c.name, "cannot quantify %s over %s", v, set)
			}
			//
			cons = ForallIn(v, set, cons)
			i -= 2
		default:
			var hyps []*Proposition
			// Greedily collect a run of hypotheses
			for ; i >= 0 && c.log[i].prop != nil && !c.isDomain(i); i-- {
				hyps = append(hyps, c.log[i].prop.Strip())
			}
			//
			slices.Reverse(hyps)
			h := Conjunction(hyps...)
			//
			if cons.kind == CONTRADICTION {
				cons = Not(h)
			} else {
				cons = Implies(h, cons)
			}
		}
	}
	//
	return cons, nil
}

// Check whether the ith log entry is the domain of the variable introduced
// immediately before it.
func (c *Context) isDomain(i int) bool {
	if i == 0 || c.log[i].prop == nil {
		return false
	}
	//
	v, ok := c.domainOf(c.log[i].prop)
	//
	return ok && c.log[i-1].variable == v
}

// Determine the variable of this context for which a given proposition is a
// membership, if any.
func (c *Context) domainOf(p *Proposition) (*term.Variable, bool) {
	if !p.IsRelation(ELEMENT_OF) {
		return nil, false
	}
	//
	v, ok := p.Lhs().(*term.Variable)
	//
	if !ok || !slices.Contains(c.Variables(), v) {
		return nil, false
	}
	//
	return v, true
}

// Check whether a membership has already been assumed for a given variable.
func (c *Context) hasDomain(v *term.Variable) bool {
	for i, e := range c.log {
		if e.prop != nil && c.isDomain(i) && e.prop.Lhs() == term.Term(v) {
			return true
		}
	}
	//
	return false
}
