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
	"fmt"
	"strings"
)

// ErrPrecondition signals that a tactic was applied to inputs which were not
// proven, or which had the wrong shape.
var ErrPrecondition = errors.New("precondition violation")

// ErrInvalidRule signals an inference constructed with an unrecognised rule.
var ErrInvalidRule = errors.New("invalid rule")

// ErrInconsistentSubstitution signals that two derivations of the same
// antecedent disagree during instantiation.
var ErrInconsistentSubstitution = errors.New("inconsistent substitution")

// ErrContextDiscipline signals that assumption contexts were opened, mutated
// or closed out of order.
var ErrContextDiscipline = errors.New("context discipline violation")

// TacticError is returned when a tactic's preconditions are not met.  It
// retains the offending propositions so the failing step can be identified.
type TacticError struct {
	// Rule being applied.
	Rule Rule
	// Condition which was not met.
	Condition string
	// Propositions involved.
	Props []*Proposition
}

func failure(rule Rule, condition string, props ...*Proposition) *TacticError {
	return &TacticError{rule, condition, props}
}

func failuref(rule Rule, props []*Proposition, format string, args ...any) *TacticError {
	return &TacticError{rule, fmt.Sprintf(format, args...), props}
}

// Error implements the error interface.
func (e *TacticError) Error() string {
	var builder strings.Builder
	//
	builder.WriteString(string(e.Rule))
	builder.WriteString(": ")
	builder.WriteString(e.Condition)
	//
	if len(e.Props) > 0 {
		builder.WriteString(" [")
		//
		for i, p := range e.Props {
			if i != 0 {
				builder.WriteString("; ")
			}
			//
			if p == nil {
				builder.WriteString("<nil>")
			} else {
				builder.WriteString(p.String())
			}
		}
		//
		builder.WriteString("]")
	}
	//
	return builder.String()
}

// Unwrap returns ErrPrecondition.
func (e *TacticError) Unwrap() error {
	return ErrPrecondition
}

// InvalidRuleError is returned when an inference names a rule which is not
// in the registry.
type InvalidRuleError struct {
	Name string
}

// Error implements the error interface.
func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("unknown inference rule \"%s\"", e.Name)
}

// Unwrap returns ErrInvalidRule.
func (e *InvalidRuleError) Unwrap() error {
	return ErrInvalidRule
}

// InconsistentSubstitutionError is returned when instantiating an in-set
// quantifier and the membership supplied disagrees with the antecedent
// obtained by substitution.
type InconsistentSubstitutionError struct {
	Rule Rule
	// Antecedent obtained by substitution.
	Expected *Proposition
	// Antecedent supplied.
	Actual *Proposition
}

// Error implements the error interface.
func (e *InconsistentSubstitutionError) Error() string {
	return fmt.Sprintf("%s: inconsistent substitution (expected %s, found %s)", e.Rule, e.Expected, e.Actual)
}

// Unwrap returns ErrInconsistentSubstitution.
func (e *InconsistentSubstitutionError) Unwrap() error {
	return ErrInconsistentSubstitution
}

// ContextError is returned when assumption contexts are used out of order.
type ContextError struct {
	// Name of the context concerned.
	Context string
	// Reason describing the violation.
	Reason string
}

func contextErrorf(ctx string, format string, args ...any) *ContextError {
	return &ContextError{ctx, fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *ContextError) Error() string {
	return fmt.Sprintf("context \"%s\": %s", e.Context, e.Reason)
}

// Unwrap returns ErrContextDiscipline.
func (e *ContextError) Unwrap() error {
	return ErrContextDiscipline
}

// StructureError is raised (via panic) when a proposition builder is given
// arguments which cannot form a well-structured proposition, such as a
// conjunction with one child.
type StructureError struct {
	Kind   Kind
	Reason string
}

// Error implements the error interface.
func (e *StructureError) Error() string {
	return fmt.Sprintf("malformed %s: %s", e.Kind, e.Reason)
}
