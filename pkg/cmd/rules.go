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
	"github.com/consensys/go-deduce/pkg/script"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the inference rules of the kernel.",
	Long: `List the inference rules of the kernel, marking those which can be
	applied by a step of a proof script.`,
	Run: func(cmd *cobra.Command, args []string) {
		printRules(os.Stdout)
	},
}

func printRules(out io.Writer) {
	for _, r := range kernel.Rules() {
		if script.Applicable(r) {
			fmt.Fprintf(out, "* %s\n", r)
		} else {
			fmt.Fprintf(out, "  %s\n", r)
		}
	}
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
