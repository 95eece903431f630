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

package model

import (
	"testing"

	"github.com/svmkit/svmkit/dataset"
	"github.com/svmkit/svmkit/utils/test"
)

func newSVs(t *testing.T, runs ...[]dataset.Feature) *dataset.Dataset {
	t.Helper()
	builder := dataset.NewBuilder(false)
	for _, run := range runs {
		if err := builder.AddSample(run, 0); err != nil {
			t.Fatal(err)
		}
	}
	return builder.Build()
}

func TestValidate(t *testing.T) {
	m := &Model{
		KernelType:     RBF,
		HyperParams:    []float64{0.5},
		SupportVectors: newSVs(t, []dataset.Feature{{Index: 1, Value: 1.0}}, []dataset.Feature{{Index: 2, Value: 2.0}}),
		Weights:        []float64{0.25, -0.75},
		Bias:           0.1,
	}
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, m.NumSupportVectors(), 2, "number of support vectors")
}

func TestValidateBiasOnlyModel(t *testing.T) {
	m := &Model{
		KernelType:     Linear,
		SupportVectors: newSVs(t),
		Bias:           -1.5,
	}
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, m.NumSupportVectors(), 0, "zero support vectors are legal")
}

func TestValidateRejectsBrokenModels(t *testing.T) {
	svs := newSVs(t, []dataset.Feature{{Index: 1, Value: 1.0}})

	if err := (&Model{KernelType: KernelType(42), SupportVectors: svs,
		Weights: []float64{1}}).Validate(); err == nil {
		t.Fatal("expected an error for an unknown kernel type")
	}
	if err := (&Model{KernelType: Linear}).Validate(); err == nil {
		t.Fatal("expected an error for nil support vectors")
	}
	if err := (&Model{KernelType: Linear, SupportVectors: svs,
		Weights: []float64{1, 2}}).Validate(); err == nil {
		t.Fatal("expected an error for non-parallel weights")
	}
}

func TestKernelTypeString(t *testing.T) {
	test.CheckEq(t, Linear.String(), "LINEAR", "")
	test.CheckEq(t, RBF.String(), "RBF", "")
	test.CheckEq(t, KernelType(7).String(), "KernelType(7)", "")
}
