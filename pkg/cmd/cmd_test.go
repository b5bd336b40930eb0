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
package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/consensys/go-deduce/pkg/syntax"
	"github.com/consensys/go-deduce/pkg/util/termio"
	"github.com/google/go-cmp/cmp"
)

const socrates = `
axioms:
  - "∀x. Man(x) → Mortal(x)"
  - "Man(socrates)"
goals:
  - "Mortal(socrates)"
  - prove: "Mortal(plato)"
    refute: true
  - "Mortal(plato)"
`

func Test_Check_01(t *testing.T) {
	var (
		out      bytes.Buffer
		filename = writeScript(t, "socrates.yaml", socrates)
		cfg      = checkConfig{palette: termio.NewPalette(false)}
	)
	//
	ok, err := checkFile(&out, filename, cfg)
	//
	if err != nil {
		t.Fatal(err)
	} else if ok {
		t.Errorf("expected failing goal")
	}
	//
	expected := "[proven] Mortal(socrates)\n[refuted] Mortal(plato)\n[not proven] Mortal(plato)\n" +
		"socrates: 2/3 goal(s) as expected\n"
	//
	if diff := cmp.Diff(expected, out.String()); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func Test_Check_02(t *testing.T) {
	var (
		out      bytes.Buffer
		filename = writeScript(t, "mp.yaml", "axioms: [\"P\", \"P → Q\"]\ngoals: [\"Q\"]\n")
		cfg      = checkConfig{traces: true, palette: termio.NewPalette(false)}
	)
	//
	if ok, err := checkFile(&out, filename, cfg); err != nil {
		t.Fatal(err)
	} else if !ok {
		t.Errorf("expected goal to be proven")
	}
	//
	expected := "[proven] Q\n    Q [modus_ponens]\n      P [given]\n      P → Q [given]\nmp: 1/1 goal(s) as expected\n"
	//
	if diff := cmp.Diff(expected, out.String()); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func Test_Check_03(t *testing.T) {
	var (
		out      bytes.Buffer
		filename = writeScript(t, "bad.yaml", "axioms: [\"P ∧ Q ∨ R\"]\n")
	)
	//
	_, err := checkFile(&out, filename, checkConfig{})
	//
	var serr *syntax.SyntaxError
	//
	if !errors.As(err, &serr) {
		t.Fatalf("expected syntax error, got %v", err)
	}
	//
	reportError(&out, err)
	//
	if !strings.HasPrefix(out.String(), "bad (axiom 1):1: braces required\nP ∧ Q ∨ R\n") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func Test_SyntaxError_01(t *testing.T) {
	var (
		out     bytes.Buffer
		srcfile = syntax.NewSourceFile("expr", []byte("P ∧ Q\nR"))
	)
	//
	printSyntaxError(&out, srcfile.SyntaxError(syntax.NewSpan(4, 5), "oops"))
	//
	if diff := cmp.Diff("expr:1: oops\nP ∧ Q\n    ^\n", out.String()); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
	//
	out.Reset()
	printSyntaxError(&out, srcfile.SyntaxError(syntax.NewSpan(6, 7), "oops"))
	//
	if diff := cmp.Diff("expr:2: oops\nR\n^\n", out.String()); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

func Test_Parse_01(t *testing.T) {
	checkParse(t, "∀y. y = x", parseConfig{variables: []string{"x"}}, "∀y. y = x")
	checkParse(t, "x + 1", parseConfig{variables: []string{"x"}, terms: true}, "(x+1)")
	checkParse(t, "P(a) -> Q", parseConfig{}, "P(a) → Q")
	//
	var out bytes.Buffer
	//
	if err := parseAndPrint(&out, "arg", "P ∧", parseConfig{}); err == nil {
		t.Errorf("expected syntax error")
	} else if err := parseAndPrint(&out, "arg", "x", parseConfig{variables: []string{"x", "x"}}); err == nil {
		t.Errorf("expected duplicate variable")
	}
}

func Test_Rules_01(t *testing.T) {
	var out bytes.Buffer
	//
	printRules(&out)
	//
	lines := strings.Split(out.String(), "\n")
	//
	if lines[0] != "  axiom" {
		t.Errorf("unexpected line \"%s\"", lines[0])
	} else if lines[2] != "* modus_ponens" {
		t.Errorf("unexpected line \"%s\"", lines[2])
	}
}

func checkParse(t *testing.T, text string, cfg parseConfig, expected string) {
	t.Helper()
	//
	var out bytes.Buffer
	//
	if err := parseAndPrint(&out, "arg", text, cfg); err != nil {
		t.Fatal(err)
	} else if actual := strings.TrimSuffix(out.String(), "\n"); actual != expected {
		t.Errorf("expected %s, got %s", expected, actual)
	}
}

func writeScript(t *testing.T, name string, contents string) string {
	t.Helper()
	//
	filename := filepath.Join(t.TempDir(), name)
	//
	if err := os.WriteFile(filename, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	//
	return filename
}
