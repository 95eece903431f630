/*
 * Copyright 2023 The SVMKit Authors.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package test contains utilities for unit tests.
package test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// CheckEq fails the test if "got" and "want" are not equal.
func CheckEq(t *testing.T, got interface{}, want interface{}, msg string) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("%s\nMismatch (-want +got):\n%s", msg, diff)
	}
}

// CheckNearFloat64 fails the test if "got" is not within "tolerance" of
// "want".
func CheckNearFloat64(t *testing.T, got float64, want float64, tolerance float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Fatalf("%s\ngot %v, want %v (tolerance %v)", msg, got, want, tolerance)
	}
}
