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

	"github.com/consensys/go-deduce/pkg/kernel"
	"github.com/consensys/go-deduce/pkg/syntax"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] proposition(s)",
	Short: "Parse and print one or more propositions.",
	Long: `Parse and print one or more propositions (or terms), which is useful for
	checking how a given piece of text is understood.  Identifiers are constants
	(or predicates) unless declared as variables.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		cfg := parseConfig{
			variables: getStringArray(cmd, "var"),
			terms:     getFlag(cmd, "term"),
			markup:    getFlag(cmd, "latex"),
		}
		//
		for i, text := range args {
			if err := parseAndPrint(os.Stdout, fmt.Sprintf("arg %d", i+1), text, cfg); err != nil {
				reportError(os.Stdout, err)
				os.Exit(2)
			}
		}
	},
}

type parseConfig struct {
	// Names to be parsed as variables.
	variables []string
	// Parse terms rather than propositions.
	terms bool
	// Print LaTeX rather than plain text.
	markup bool
}

func parseAndPrint(out io.Writer, name string, text string, cfg parseConfig) error {
	var (
		session = kernel.NewSession()
		env     = syntax.NewEnvironment()
		srcfile = syntax.NewSourceFile(name, []byte(text))
	)
	//
	for _, v := range cfg.variables {
		if !env.Declare(session.Variable(v)) {
			return fmt.Errorf("variable %s declared twice", v)
		}
	}
	//
	if cfg.terms {
		t, errs := syntax.ParseTermFile(srcfile, env)
		//
		if len(errs) > 0 {
			return &errs[0]
		}
		//
		fmt.Fprintln(out, t.String())
		//
		return nil
	}
	//
	p, errs := syntax.ParseFile(srcfile, env)
	//
	if len(errs) > 0 {
		return &errs[0]
	} else if cfg.markup {
		fmt.Fprintln(out, p.Markup())
	} else {
		fmt.Fprintln(out, p.String())
	}
	//
	return nil
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringArray("var", nil, "declare a variable")
	parseCmd.Flags().Bool("term", false, "parse terms rather than propositions")
	parseCmd.Flags().Bool("latex", false, "print propositions as LaTeX")
}
