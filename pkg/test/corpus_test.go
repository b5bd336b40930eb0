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
package test

import (
	"testing"
)

func Test_Corpus_Socrates(t *testing.T) {
	Check(t, "socrates")
}

func Test_Corpus_Syllogism(t *testing.T) {
	Check(t, "syllogism")
}

func Test_Corpus_Tollens(t *testing.T) {
	Check(t, "tollens")
}

func Test_Corpus_Resolution(t *testing.T) {
	Check(t, "resolution")
}

func Test_Corpus_Quantified(t *testing.T) {
	Check(t, "quantified")
}

func Test_Corpus_Refutation(t *testing.T) {
	Check(t, "refutation")
}

func Test_Corpus_Ordering(t *testing.T) {
	Check(t, "ordering")
}

func Test_Corpus_Subsets(t *testing.T) {
	Check(t, "subsets")
}
