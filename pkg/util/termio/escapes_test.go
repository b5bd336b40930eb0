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
package termio

import "testing"

func Test_AnsiEscape_01(t *testing.T) {
	checkEscape(t, NewAnsiEscape(), "")
	checkEscape(t, ResetAnsiEscape(), "\033[0m")
	checkEscape(t, NewAnsiEscape().FgColour(TERM_RED), "\033[31m")
	checkEscape(t, BoldAnsiEscape().FgColour(TERM_GREEN).BgColour(TERM_BLACK), "\033[1;32;40m")
}

func Test_AnsiEscape_02(t *testing.T) {
	bold := BoldAnsiEscape()
	// Extending an escape leaves the original unchanged
	red, blue := bold.FgColour(TERM_RED), bold.FgColour(TERM_BLUE)
	//
	checkEscape(t, bold, "\033[1m")
	checkEscape(t, red, "\033[1;31m")
	checkEscape(t, blue, "\033[1;34m")
	//
	if s := red.Wrap("x"); s != "\033[1;31mx\033[0m" {
		t.Errorf("unexpected wrapping %q", s)
	} else if s := NewAnsiEscape().Wrap("x"); s != "x" {
		t.Errorf("unexpected wrapping %q", s)
	}
}

func Test_Palette_01(t *testing.T) {
	off, on := NewPalette(false), NewPalette(true)
	//
	if s := off.Failure("no"); s != "no" {
		t.Errorf("unexpected highlight %q", s)
	} else if s := on.Success("ok"); s != "\033[1;32mok\033[0m" {
		t.Errorf("unexpected highlight %q", s)
	} else if s := on.Warning("hmm"); s != "\033[33mhmm\033[0m" {
		t.Errorf("unexpected highlight %q", s)
	}
}

func checkEscape(t *testing.T, escape AnsiEscape, expected string) {
	t.Helper()
	//
	if s := escape.Build(); s != expected {
		t.Errorf("expected %q, got %q", expected, s)
	}
}
