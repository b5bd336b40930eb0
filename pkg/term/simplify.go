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
	"strings"
)

// Decision is the outcome of asking the simplifier whether two terms are
// equal.  This is a three valued logic: the simplifier may be unable to decide
// either way.
type Decision uint8

const (
	// Unknown indicates the simplifier could not decide.
	Unknown Decision = iota
	// True indicates the terms always evaluate to the same value.
	True
	// False indicates the terms never evaluate to the same value.
	False
)

func (d Decision) String() string {
	switch d {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// Simplify a given term by normalising any arithmetic it contains into a sum
// of products.  Terms which contain no arithmetic are returned unchanged.
func Simplify(t Term) Term {
	switch t := t.(type) {
	case *Apply:
		if isArithmetic(t.head) && len(t.args) > 0 {
			return toPolynomial(t).toTerm()
		}
		//
		args := make([]Term, len(t.args))
		//
		for i, arg := range t.args {
			args[i] = Simplify(arg)
		}
		//
		return NewApply(t.head, args...)
	default:
		return t
	}
}

// SimplifyEqual decides whether two terms are equal by normalising their
// difference.  If the difference is zero they are equal, if it is a non-zero
// constant they are not, and otherwise nothing can be concluded.
func SimplifyEqual(lhs Term, rhs Term) Decision {
	if lhs.Equal(rhs) {
		return True
	}
	//
	diff := toPolynomial(lhs).sub(toPolynomial(rhs))
	//
	if val, ok := diff.constant(); ok {
		if val.BitLen() == 0 {
			return True
		}
		//
		return False
	}
	//
	return Unknown
}

// SimplifyCompare determines the ordering of two terms by normalising their
// difference.  If the difference is a constant, its sign is returned (i.e. -1
// when lhs < rhs, 0 when equal and 1 when lhs > rhs).  Otherwise, the ordering
// cannot be determined.
func SimplifyCompare(lhs Term, rhs Term) (int, bool) {
	if lhs.Equal(rhs) {
		return 0, true
	}
	//
	diff := toPolynomial(lhs).sub(toPolynomial(rhs))
	//
	if val, ok := diff.constant(); ok {
		return val.Sign(), true
	}
	//
	return 0, false
}

func isArithmetic(head string) bool {
	return head == "+" || head == "-" || head == "*"
}

func toPolynomial(t Term) polynomial {
	switch t := t.(type) {
	case Number:
		return constantPoly(t.value)
	case *Apply:
		if !isArithmetic(t.head) || len(t.args) == 0 {
			s := Simplify(t)
			return atomPoly(atom{key(s), s})
		}
		//
		acc := toPolynomial(t.args[0])
		// Unary minus
		if t.head == "-" && len(t.args) == 1 {
			return polynomial{}.sub(acc)
		}
		//
		for _, arg := range t.args[1:] {
			ith := toPolynomial(arg)
			//
			switch t.head {
			case "+":
				acc = acc.add(ith)
			case "-":
				acc = acc.sub(ith)
			case "*":
				acc = acc.mul(ith)
			}
		}
		//
		return acc
	default:
		return atomPoly(atom{key(t), t})
	}
}

// key returns a string which uniquely identifies a term structurally.
// Variables are identified by their unique id (rather than their name) since
// distinct variables may share the same name.
func key(t Term) string {
	switch t := t.(type) {
	case *Variable:
		return fmt.Sprintf("$%d", t.id)
	case Constant:
		return t.name
	case Number:
		return t.value.String()
	case Compound:
		var builder strings.Builder
		//
		builder.WriteString(t.Head())
		builder.WriteString("(")
		//
		for i, arg := range t.Args() {
			if i != 0 {
				builder.WriteString(",")
			}
			//
			builder.WriteString(key(arg))
		}
		//
		builder.WriteString(")")
		//
		return builder.String()
	default:
		return t.String()
	}
}
