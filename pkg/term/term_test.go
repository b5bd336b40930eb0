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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func Test_Term_01(t *testing.T) {
	x, y := NewVariable("x"), NewVariable("x")
	//
	if x.Equal(y) {
		t.Errorf("distinct variables with same name should differ")
	} else if !x.Equal(x) {
		t.Errorf("variable should equal itself")
	}
}

func Test_Term_02(t *testing.T) {
	x := NewVariable("x")
	s := NewApply("f", x, NewConstant("c"))
	r := s.Replace(x, Int(2))
	//
	if r.String() != "f(2,c)" {
		t.Errorf("unexpected replacement %s", r.String())
	} else if s.String() != "f(x,c)" {
		t.Errorf("replacement mutated original term %s", s.String())
	}
}

func Test_Term_03(t *testing.T) {
	var (
		x = NewVariable("x")
		y = NewVariable("y")
		e = Add(Mul(x, y), NewApply("f", x), y)
	)
	//
	vars := Variables(e)
	//
	if diff := cmp.Diff([]string{"x", "y"}, names(vars)); diff != "" {
		t.Errorf("unexpected variables (-want +got):\n%s", diff)
	}
	//
	if !e.Contains(NewApply("f", x)) || e.Contains(NewApply("f", y)) {
		t.Errorf("occurrence check failed for %s", e)
	}
}

func Test_Simplify_01(t *testing.T) {
	checkDecision(t, Add(Int(1), Int(2)), Int(3), True)
}

func Test_Simplify_02(t *testing.T) {
	checkDecision(t, Add(Int(1), Int(2)), Int(4), False)
}

func Test_Simplify_03(t *testing.T) {
	x := NewVariable("x")
	checkDecision(t, Add(x, Int(1)), Add(Int(1), x), True)
}

func Test_Simplify_04(t *testing.T) {
	x := NewVariable("x")
	checkDecision(t, Add(x, Int(1)), x, False)
}

func Test_Simplify_05(t *testing.T) {
	x, y := NewVariable("x"), NewVariable("y")
	checkDecision(t, x, y, Unknown)
}

func Test_Simplify_06(t *testing.T) {
	x, y := NewVariable("x"), NewVariable("y")
	// (x+y)*(x-y) == x*x - y*y
	lhs := Mul(Add(x, y), Sub(x, y))
	rhs := Sub(Mul(x, x), Mul(y, y))
	checkDecision(t, lhs, rhs, True)
}

func Test_Simplify_07(t *testing.T) {
	x := NewVariable("x")
	// f(1+1) == f(2)
	checkDecision(t, NewApply("f", Add(Int(1), Int(1)), x), NewApply("f", Int(2), x), True)
}

func Test_Simplify_08(t *testing.T) {
	x := NewVariable("x")
	//
	if s := Simplify(Sub(Add(x, Int(3)), Int(3))); !s.Equal(x) {
		t.Errorf("expected x, got %s", s)
	}
}

func checkDecision(t *testing.T, lhs Term, rhs Term, expected Decision) {
	t.Helper()
	//
	if actual := SimplifyEqual(lhs, rhs); actual != expected {
		t.Errorf("%s = %s: expected %s, got %s", lhs, rhs, expected, actual)
	}
}

func names(vars []*Variable) []string {
	var res []string
	//
	for _, v := range vars {
		res = append(res, v.Name())
	}
	//
	return res
}
