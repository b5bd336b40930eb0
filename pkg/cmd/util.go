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
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/consensys/go-deduce/pkg/syntax"
	"github.com/consensys/go-deduce/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Get an expected flag, or exit if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected unsigned integer, or exit if an error arises.
func getUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected list of strings, or exit if an error arises.
func getStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Determine the palette for highlighting output, which is only ever enabled
// when writing to a terminal.
func getPalette(cmd *cobra.Command) termio.Palette {
	if getFlag(cmd, "ansi-escapes") {
		return termio.DetectPalette()
	}
	//
	return termio.NewPalette(false)
}

// Report an error which prevented something from being checked.  Syntax errors
// are printed with the offending text highlighted.
func reportError(out io.Writer, err error) {
	var serr *syntax.SyntaxError
	//
	if errors.As(err, &serr) {
		printSyntaxError(out, serr)
	} else {
		log.Error(err)
	}
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(out io.Writer, err *syntax.SyntaxError) {
	var (
		span = err.Span()
		line = err.FirstEnclosingLine()
	)
	// Print error + line number
	fmt.Fprintf(out, "%s:%d: %s\n", err.SourceFile().Filename(), line.Number(), err.Message())
	// Print line
	fmt.Fprintln(out, line.String())
	// Print indent (todo: account for tabs)
	fmt.Fprint(out, strings.Repeat(" ", max(0, span.Start()-line.Start())))
	// Print highlight
	fmt.Fprintln(out, strings.Repeat("^", max(1, span.Length())))
}
