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
package term

import (
	"fmt"
	"math/big"
	"strings"
)

// Term represents a value denoting some mathematical object (e.g. a variable,
// a constant or a compound expression).  Terms are immutable: substitution
// always produces a new term, leaving the original untouched.
type Term interface {
	fmt.Stringer
	// Equal checks whether this term is structurally equal to another.
	// Variables are compared by identity.
	Equal(Term) bool
	// Replace every occurrence of old within this term with new.
	Replace(old Term, new Term) Term
	// Contains checks whether a given term occurs anywhere within this term
	// (including the term itself).
	Contains(Term) bool
}

// Compound is implemented by terms which have sub-terms that can be
// decomposed (e.g. during unification).
type Compound interface {
	Term
	// Head returns the function symbol of this term.
	Head() string
	// Args returns the sub-terms of this term.
	Args() []Term
}

// ============================================================================
// Variable
// ============================================================================

// Variable is a distinguished term which can be free or bound by an enclosing
// quantifier.  Variables are compared by identity, rather than by name, so two
// variables with the same name are distinct.
type Variable struct {
	id   uint
	name string
}

var nextVariable uint

// NewVariable constructs a fresh variable with a given display name.  Observe
// that this is not safe for concurrent use.
func NewVariable(name string) *Variable {
	nextVariable++
	//
	return &Variable{nextVariable, name}
}

// Id returns the unique identifier of this variable.
func (p *Variable) Id() uint {
	return p.id
}

// Name returns the display name of this variable.
func (p *Variable) Name() string {
	return p.name
}

// Equal implementation for Term interface.
func (p *Variable) Equal(o Term) bool {
	if v, ok := o.(*Variable); ok {
		return v == p
	}
	//
	return false
}

// Replace implementation for Term interface.
func (p *Variable) Replace(old Term, new Term) Term {
	if p.Equal(old) {
		return new
	}
	//
	return p
}

// Contains implementation for Term interface.
func (p *Variable) Contains(o Term) bool {
	return p.Equal(o)
}

func (p *Variable) String() string {
	return p.name
}

// ============================================================================
// Constant
// ============================================================================

// Constant is an opaque named object (e.g. a set "S", or an individual
// "socrates").  Constants are equal when their names are equal.
type Constant struct {
	name string
}

// NewConstant constructs a named constant.
func NewConstant(name string) Constant {
	return Constant{name}
}

// Name returns the name of this constant.
func (p Constant) Name() string {
	return p.name
}

// Equal implementation for Term interface.
func (p Constant) Equal(o Term) bool {
	if c, ok := o.(Constant); ok {
		return c.name == p.name
	}
	//
	return false
}

// Replace implementation for Term interface.
func (p Constant) Replace(old Term, new Term) Term {
	if p.Equal(old) {
		return new
	}
	//
	return p
}

// Contains implementation for Term interface.
func (p Constant) Contains(o Term) bool {
	return p.Equal(o)
}

func (p Constant) String() string {
	return p.name
}

// ============================================================================
// Number
// ============================================================================

// Number is an arbitrary precision integer constant.
type Number struct {
	value *big.Int
}

// NewNumber constructs a number from a big integer.
func NewNumber(val *big.Int) Number {
	var n big.Int
	//
	return Number{n.Set(val)}
}

// Int constructs a number from a machine integer.
func Int(val int64) Number {
	return NewNumber(big.NewInt(val))
}

// Value returns (a copy of) the underlying integer.
func (p Number) Value() *big.Int {
	var val big.Int
	return val.Set(p.value)
}

// Equal implementation for Term interface.
func (p Number) Equal(o Term) bool {
	if n, ok := o.(Number); ok {
		return n.value.Cmp(p.value) == 0
	}
	//
	return false
}

// Replace implementation for Term interface.
func (p Number) Replace(old Term, new Term) Term {
	if p.Equal(old) {
		return new
	}
	//
	return p
}

// Contains implementation for Term interface.
func (p Number) Contains(o Term) bool {
	return p.Equal(o)
}

func (p Number) String() string {
	return p.value.String()
}

// ============================================================================
// Apply
// ============================================================================

// Apply represents the application of a function symbol to one or more
// arguments, such as "x+1" or "f(x,y)".
type Apply struct {
	head string
	args []Term
}

// NewApply constructs a compound term.
func NewApply(head string, args ...Term) *Apply {
	return &Apply{head, args}
}

// Add constructs the sum of two or more terms.
func Add(args ...Term) *Apply {
	return NewApply("+", args...)
}

// Sub constructs the difference of two or more terms.
func Sub(args ...Term) *Apply {
	return NewApply("-", args...)
}

// Mul constructs the product of two or more terms.
func Mul(args ...Term) *Apply {
	return NewApply("*", args...)
}

// Head implementation for Compound interface.
func (p *Apply) Head() string {
	return p.head
}

// Args implementation for Compound interface.
func (p *Apply) Args() []Term {
	return p.args
}

// Equal implementation for Term interface.
func (p *Apply) Equal(o Term) bool {
	a, ok := o.(*Apply)
	//
	if !ok || a.head != p.head || len(a.args) != len(p.args) {
		return false
	}
	//
	for i := range p.args {
		if !p.args[i].Equal(a.args[i]) {
			return false
		}
	}
	//
	return true
}

// Replace implementation for Term interface.
func (p *Apply) Replace(old Term, new Term) Term {
	if p.Equal(old) {
		return new
	}
	//
	var args = make([]Term, len(p.args))
	//
	for i, arg := range p.args {
		args[i] = arg.Replace(old, new)
	}
	//
	return &Apply{p.head, args}
}

// Contains implementation for Term interface.
func (p *Apply) Contains(o Term) bool {
	if p.Equal(o) {
		return true
	}
	//
	for _, arg := range p.args {
		if arg.Contains(o) {
			return true
		}
	}
	//
	return false
}

func (p *Apply) String() string {
	var builder strings.Builder
	//
	if isInfix(p.head) && len(p.args) > 1 {
		builder.WriteString("(")
		//
		for i, arg := range p.args {
			if i != 0 {
				builder.WriteString(p.head)
			}
			//
			builder.WriteString(arg.String())
		}
		//
		builder.WriteString(")")
		//
		return builder.String()
	}
	//
	builder.WriteString(p.head)
	builder.WriteString("(")
	//
	for i, arg := range p.args {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(arg.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

func isInfix(head string) bool {
	switch head {
	case "+", "-", "*", "∪", "∩":
		return true
	default:
		return false
	}
}

// ============================================================================
// Helpers
// ============================================================================

// Variables returns the distinct variables occurring in a given term, in the
// order in which they are first encountered.
func Variables(t Term) []*Variable {
	return appendVariables(nil, t)
}

// AppendVariables appends any variables occurring in t which are not already
// present in vars.
func AppendVariables(vars []*Variable, t Term) []*Variable {
	return appendVariables(vars, t)
}

func appendVariables(vars []*Variable, t Term) []*Variable {
	switch t := t.(type) {
	case *Variable:
		for _, v := range vars {
			if v == t {
				return vars
			}
		}
		//
		return append(vars, t)
	case Compound:
		for _, arg := range t.Args() {
			vars = appendVariables(vars, arg)
		}
	}
	//
	return vars
}

// EqualAll checks whether two arrays of terms are pairwise equal.
func EqualAll(lhs []Term, rhs []Term) bool {
	if len(lhs) != len(rhs) {
		return false
	}
	//
	for i := range lhs {
		if !lhs[i].Equal(rhs[i]) {
			return false
		}
	}
	//
	return true
}
