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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/consensys/go-deduce/pkg/script"
	"github.com/consensys/go-deduce/pkg/util"
	"github.com/consensys/go-deduce/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] script_file(s)",
	Short: "Check one or more proof scripts.",
	Long: `Check one or more proof scripts.  Every step of a script is checked by
	the kernel, after which a derivation of each goal is searched for.  The exit
	code is 1 if some goal does not have its expected outcome, and 2 if some
	script could not be checked at all.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg := checkConfig{
			depth:   getUint(cmd, "depth"),
			traces:  getFlag(cmd, "trace"),
			palette: getPalette(cmd),
		}
		//
		ok := true
		//
		for _, filename := range args {
			passed, err := checkFile(os.Stdout, filename, cfg)
			//
			if err != nil {
				reportError(os.Stdout, err)
				os.Exit(2)
			}
			//
			ok = ok && passed
		}
		//
		if !ok {
			os.Exit(1)
		}
	},
}

// check config encapsulates the parameters used when checking scripts.
type checkConfig struct {
	// Search depth overriding that given in scripts, or zero to use the
	// depths given in scripts.
	depth uint
	// Print the derivation found for each goal.
	traces bool
	// Highlighting for the outcome of each goal.
	palette termio.Palette
}

// Check a single script file, printing the outcome of each goal.  This returns
// true if every goal had its expected outcome.
func checkFile(out io.Writer, filename string, cfg checkConfig) (bool, error) {
	stats := util.NewPerfStats()
	//
	s, err := script.ReadFile(filename)
	//
	if err != nil {
		return false, err
	}
	//
	result, err := script.Run(s, cfg.depth)
	//
	if err != nil {
		return false, fmt.Errorf("%s: %w", filename, err)
	}
	//
	stats.Log(fmt.Sprintf("Checking %s", filename))
	printResult(out, result, cfg)
	//
	return result.Ok(), nil
}

func printResult(out io.Writer, result *script.Result, cfg checkConfig) {
	var passed int
	//
	for i := range result.Reports {
		r := &result.Reports[i]
		//
		if r.Ok() {
			passed++
		}
		//
		fmt.Fprintf(out, "%s %s\n", outcome(r, cfg.palette), cfg.palette.Emphasis(r.Goal.String()))
		//
		if r.Err != nil {
			log.Errorf("derivation of %s failed audit: %s", r.Goal, r.Err)
		} else if cfg.traces && r.Trace != nil {
			printIndented(out, r.Trace.String(), "    ")
		}
	}
	//
	summary := fmt.Sprintf("%s: %d/%d goal(s) as expected", result.Name, passed, len(result.Reports))
	//
	if result.Ok() {
		fmt.Fprintln(out, cfg.palette.Success(summary))
	} else {
		fmt.Fprintln(out, cfg.palette.Failure(summary))
	}
}

// Describe the outcome of a single goal.
func outcome(r *script.Report, palette termio.Palette) string {
	switch {
	case r.Err != nil:
		return palette.Failure("[unsound]")
	case r.Proven() && !r.Refute:
		return palette.Success("[proven]")
	case !r.Proven() && r.Refute:
		return palette.Success("[refuted]")
	case r.Proven():
		return palette.Failure("[unexpectedly proven]")
	default:
		return palette.Warning("[not proven]")
	}
}

func printIndented(out io.Writer, text string, indent string) {
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		fmt.Fprintf(out, "%s%s\n", indent, line)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().UintP("depth", "d", 0, "search depth overriding any given in scripts")
	checkCmd.Flags().BoolP("trace", "t", false, "print the derivation found for each goal")
}
