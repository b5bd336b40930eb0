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
package syntax

import (
	"testing"

	"github.com/consensys/go-deduce/pkg/kernel"
	"github.com/consensys/go-deduce/pkg/term"
	"github.com/google/go-cmp/cmp"
)

func Test_Lexer_01(t *testing.T) {
	lexer := NewLexer([]rune("x<=1 ∧ ¬y"), rules...)
	//
	var kinds []uint
	//
	for _, token := range lexer.Collect() {
		kinds = append(kinds, token.Kind)
	}
	//
	expected := []uint{IDENTIFIER, LESSTHAN_EQUALS, NUMBER, WHITESPACE, AND, WHITESPACE, NOT, IDENTIFIER, END_OF}
	//
	if diff := cmp.Diff(expected, kinds); diff != "" {
		t.Errorf("unexpected tokens (-want +got):\n%s", diff)
	} else if lexer.Remaining() != 0 {
		t.Errorf("unexpected remaining input")
	}
}

// Rendered propositions parse back to themselves.
func Test_Parse_01(t *testing.T) {
	checkRoundTrip(t, "P")
	checkRoundTrip(t, "P(a, b)")
	checkRoundTrip(t, "¬P")
	checkRoundTrip(t, "P ∧ Q ∧ R")
	checkRoundTrip(t, "P ⊕ Q")
	checkRoundTrip(t, "P → (P ∨ Q)")
	checkRoundTrip(t, "P → (Q → R)")
	checkRoundTrip(t, "¬(P ∧ Q)")
	checkRoundTrip(t, "P ↔ Q")
	checkRoundTrip(t, "a < b")
	checkRoundTrip(t, "a ≤ b")
	checkRoundTrip(t, "a ≠ b")
	checkRoundTrip(t, "a ∈ S")
	checkRoundTrip(t, "S ⊆ T")
	checkRoundTrip(t, "f(a,b) = c")
	checkRoundTrip(t, "(x+1) = (1+x)")
	checkRoundTrip(t, "∀x. P(x) → Q(x)")
	checkRoundTrip(t, "∀x∈S. x < b")
	checkRoundTrip(t, "∀x. P(x, y) → (∃y. Q(x, y))")
	checkRoundTrip(t, "(∀x. P(x)) ∧ P(a)")
}

func Test_Parse_02(t *testing.T) {
	checkParse(t, "forall x in S. x <= b -> not P(x) || Q", "∀x∈S. x ≤ b → (¬P(x) ∨ Q)")
	checkParse(t, "exists n. n >= 0 and n != 1", "∃n. n ≥ 0 ∧ n ≠ 1")
	checkParse(t, "P implies Q iff !Q -> !P", "(P → Q) ↔ (¬Q → ¬P)")
	checkParse(t, "(P)", "P")
	checkParse(t, "((x)) ∈ (S ∪ T)", "x ∈ (S∪T)")
}

func Test_Parse_03(t *testing.T) {
	var (
		y   = term.NewVariable("y")
		env = NewEnvironment(y)
	)
	// Declared variables are shared, others are constants or bound.
	p := parse(t, "∀x. P(x, y, z)", env)
	//
	if p == nil {
		return
	} else if p.String() != "∀x. P(x, y, z)" {
		t.Errorf("unexpected proposition %s", p)
	} else if !p.Contains(y) || p.Contains(term.NewVariable("y")) {
		t.Errorf("declared variable not used in %s", p)
	} else if fv := p.FreeVariables(); len(fv) != 1 || fv[0] != y {
		t.Errorf("unexpected free variables in %s", p)
	}
	// Quantifying a declared variable binds it
	if q := parse(t, "∃y. P(y)", env); q != nil && q.Variable() != y {
		t.Errorf("declared variable not bound in %s", q)
	}
	// Distinct quantifiers bind distinct variables
	if r := parse(t, "(∀x. P(x)) ∧ (∀x. Q(x))", nil); r != nil {
		parts := r.Children()
		//
		if parts[0].Variable() == parts[1].Variable() {
			t.Errorf("quantifiers share a variable in %s", r)
		}
	}
}

func Test_Parse_04(t *testing.T) {
	checkSyntaxError(t, "P ∧ Q ∨ R", "braces required")
	checkSyntaxError(t, "x + y * z = 1", "braces required")
	checkSyntaxError(t, "P ↔ Q ↔ R", "braces required")
	checkSyntaxError(t, "∀x. ∀x. P(x)", "variable already bound")
	checkSyntaxError(t, "∀. P", "expected variable")
	checkSyntaxError(t, "∀x P(x)", "expected '.'")
	checkSyntaxError(t, "x + 1", "relation expected")
	checkSyntaxError(t, "P(x", "expected ','")
	checkSyntaxError(t, "(P ∧ Q", "expected ')'")
	checkSyntaxError(t, "P # Q", "unknown text encountered")
	checkSyntaxError(t, "P Q", "unknown token")
	checkSyntaxError(t, "x = y = z", "unknown token")
	checkSyntaxError(t, "a <", "unknown expression")
	// Declared variables are not predicates
	env := NewEnvironment(term.NewVariable("x"))
	//
	if _, errs := Parse("x", env); len(errs) != 1 || errs[0].Message() != "relation expected" {
		t.Errorf("expected relation error, got %v", errs)
	}
}

func Test_ParseTerm_01(t *testing.T) {
	x := term.NewVariable("x")
	//
	tm, errs := ParseTerm("f(a, x+1, 2*x)", NewEnvironment(x))
	//
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	} else if tm.String() != "f(a,(x+1),(2*x))" {
		t.Errorf("unexpected term %s", tm)
	} else if !tm.Contains(x) {
		t.Errorf("declared variable not used in %s", tm)
	}
	//
	if _, errs := ParseTerm("x <", NewEnvironment(x)); len(errs) != 1 {
		t.Errorf("expected syntax error")
	}
}

func Test_SyntaxError_01(t *testing.T) {
	_, errs := Parse("P ∧\nQ ∨ R", nil)
	//
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	//
	err := errs[0]
	line := err.FirstEnclosingLine()
	span := err.Span()
	//
	if err.Error() != "expr:6:7:braces required" {
		t.Errorf("unexpected error %s", err.Error())
	} else if line.Number() != 2 || line.String() != "Q ∨ R" || line.Start() != 4 {
		t.Errorf("unexpected line %d: %s", line.Number(), line.String())
	} else if span.Start()-line.Start() != 2 || span.Length() != 1 {
		t.Errorf("unexpected span %d:%d", span.Start(), span.End())
	}
	// Errors beyond the end are reported on the last line
	_, errs = Parse("P ∧\nQ ∧", nil)
	//
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	} else if line := errs[0].FirstEnclosingLine(); line.Number() != 2 {
		t.Errorf("unexpected line %d", line.Number())
	}
}

func checkRoundTrip(t *testing.T, input string) {
	t.Helper()
	checkParse(t, input, input)
}

func checkParse(t *testing.T, input string, expected string) *kernel.Proposition {
	t.Helper()
	//
	p := parse(t, input, nil)
	//
	if p != nil && p.String() != expected {
		t.Errorf("parsing \"%s\": expected %s, got %s", input, expected, p)
	}
	//
	return p
}

func parse(t *testing.T, input string, env *Environment) *kernel.Proposition {
	t.Helper()
	//
	p, errs := Parse(input, env)
	//
	if len(errs) != 0 {
		t.Errorf("parsing \"%s\": %s", input, errs[0].Error())
		return nil
	} else if p.IsProven() {
		t.Errorf("parsing \"%s\" gave proven proposition", input)
	}
	//
	return p
}

func checkSyntaxError(t *testing.T, input string, msg string) {
	t.Helper()
	//
	_, errs := Parse(input, nil)
	//
	if len(errs) != 1 {
		t.Errorf("parsing \"%s\": expected one error, got %v", input, errs)
	} else if errs[0].Message() != msg {
		t.Errorf("parsing \"%s\": expected \"%s\", got \"%s\"", input, msg, errs[0].Message())
	}
}
