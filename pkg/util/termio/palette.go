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

import (
	"os"

	"golang.org/x/term"
)

// Palette determines how the outcome of a check is highlighted when printed.
// A disabled palette leaves all text unchanged.
type Palette struct {
	enabled bool
}

// NewPalette constructs a palette which is either enabled or disabled.
func NewPalette(enabled bool) Palette {
	return Palette{enabled}
}

// DetectPalette constructs a palette which is enabled only when standard output
// is a terminal.
func DetectPalette() Palette {
	return Palette{IsTerminal(os.Stdout)}
}

// IsTerminal checks whether a given file is attached to a terminal.
func IsTerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}

// Enabled checks whether this palette highlights anything.
func (p Palette) Enabled() bool {
	return p.enabled
}

// Success highlights text reporting that something held.
func (p Palette) Success(text string) string {
	return p.apply(BoldAnsiEscape().FgColour(TERM_GREEN), text)
}

// Failure highlights text reporting that something did not hold.
func (p Palette) Failure(text string) string {
	return p.apply(BoldAnsiEscape().FgColour(TERM_RED), text)
}

// Warning highlights text which is unexpected but not a failure.
func (p Palette) Warning(text string) string {
	return p.apply(NewAnsiEscape().FgColour(TERM_YELLOW), text)
}

// Emphasis highlights text of particular interest, such as a goal.
func (p Palette) Emphasis(text string) string {
	return p.apply(BoldAnsiEscape(), text)
}

func (p Palette) apply(escape AnsiEscape, text string) string {
	if !p.enabled {
		return text
	}
	//
	return escape.Wrap(text)
}
