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
	"fmt"
	"testing"

	"github.com/consensys/go-deduce/pkg/kernel"
	"github.com/consensys/go-deduce/pkg/script"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the proof scripts (yaml) are found.
const TestDir = "../../testdata"

// Check that a given proof script runs without error, and that every goal has
// its expected outcome.  Furthermore, every fact in the resulting knowledge
// base must pass audit.
func Check(t *testing.T, test string) {
	filename := fmt.Sprintf("%s/%s.yaml", TestDir, test)
	// Enable testing each script in parallel
	t.Parallel()
	//
	s, err := script.ReadFile(filename)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	result, err := script.Run(s, 0)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	for _, r := range result.Reports {
		if !r.Ok() {
			t.Errorf("%s: goal %s has unexpected outcome (proven=%t)", filename, r.Goal, r.Proven())
		}
	}
	//
	for _, p := range result.Facts {
		if err := kernel.Audit(p); err != nil {
			t.Errorf("%s: %s", filename, err)
		}
	}
}
