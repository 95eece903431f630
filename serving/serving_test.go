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

package serving

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/svmkit/svmkit/dataset"
	"github.com/svmkit/svmkit/kernel"
	"github.com/svmkit/svmkit/model"
	"github.com/svmkit/svmkit/utils/test"
)

func buildDataset(t *testing.T, labeled bool, runs ...[]dataset.Feature) *dataset.Dataset {
	t.Helper()
	builder := dataset.NewBuilder(labeled)
	for _, run := range runs {
		if err := builder.AddSample(run, 0); err != nil {
			t.Fatal(err)
		}
	}
	return builder.Build()
}

func newTestModel(t *testing.T, kernelType model.KernelType, hyperParams []float64) *model.Model {
	t.Helper()
	return &model.Model{
		KernelType:  kernelType,
		HyperParams: hyperParams,
		SupportVectors: buildDataset(t, false,
			[]dataset.Feature{{Index: 1, Value: 1.0}, {Index: 3, Value: 2.0}},
			[]dataset.Feature{{Index: 2, Value: -1.0}},
			[]dataset.Feature{{Index: 1, Value: 0.5}, {Index: 2, Value: 0.5}, {Index: 3, Value: 0.5}}),
		Weights: []float64{0.75, -1.25, 2.0},
		Bias:    0.1,
	}
}

func testSamples(t *testing.T) *dataset.Dataset {
	t.Helper()
	return buildDataset(t, false,
		[]dataset.Feature{{Index: 1, Value: 2.0}, {Index: 3, Value: 1.0}},
		[]dataset.Feature{{Index: 2, Value: 4.0}},
		nil,
		[]dataset.Feature{{Index: 5, Value: 9.0}})
}

// expandedPrediction is the reference decision function, computed the slow
// way straight from the model definition.
func expandedPrediction(m *model.Model, ds *dataset.Dataset, i int) float64 {
	fn, err := kernel.New(m.KernelType, m.HyperParams)
	if err != nil {
		panic(err)
	}
	sum := m.Bias
	for j := range m.Weights {
		sum += m.Weights[j] * fn(m.SupportVectors.Features(j), ds.Features(i),
			m.SupportVectors.SquaredNorm(j), ds.SquaredNorm(i))
	}
	return sum
}

func TestLinearEngineMatchesKernelExpansion(t *testing.T) {
	m := newTestModel(t, model.Linear, nil)
	ds := testSamples(t)

	engine, err := NewEngine(m, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := engine.(*linearEngine); !ok {
		t.Fatalf("expected the dense-weight engine for a linear model, got %T", engine)
	}

	predictions := make([]float64, ds.Count())
	if err := engine.Predict(ds, predictions); err != nil {
		t.Fatal(err)
	}
	for i := range predictions {
		test.CheckNearFloat64(t, predictions[i], expandedPrediction(m, ds, i), 1e-12,
			"dense fast path against the kernel expansion")
	}
}

func TestRBFEngine(t *testing.T) {
	m := newTestModel(t, model.RBF, []float64{0.5})
	ds := testSamples(t)

	engine, err := NewEngine(m, &model.PredictParameters{Threads: 1})
	if err != nil {
		t.Fatal(err)
	}

	predictions := make([]float64, ds.Count())
	if err := engine.Predict(ds, predictions); err != nil {
		t.Fatal(err)
	}
	for i := range predictions {
		test.CheckEq(t, predictions[i], expandedPrediction(m, ds, i), "rbf engine")
	}
}

func TestPredictParallelIsDeterministic(t *testing.T) {
	m := newTestModel(t, model.RBF, []float64{0.25})

	builder := dataset.NewBuilder(false)
	for i := 0; i < 257; i++ {
		features := []dataset.Feature{
			{Index: int32(i % 7), Value: float64(i) * 0.01},
			{Index: int32(i%7 + 3), Value: math.Sin(float64(i))},
		}
		if err := builder.AddSample(features, 0); err != nil {
			t.Fatal(err)
		}
	}
	ds := builder.Build()

	serial := make([]float64, ds.Count())
	engine, err := NewEngine(m, &model.PredictParameters{Threads: 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := engine.Predict(ds, serial); err != nil {
		t.Fatal(err)
	}

	parallel := make([]float64, ds.Count())
	engine, err = NewEngine(m, &model.PredictParameters{Threads: 8})
	if err != nil {
		t.Fatal(err)
	}
	if err := engine.Predict(ds, parallel); err != nil {
		t.Fatal(err)
	}

	test.CheckEq(t, parallel, serial, "worker count must not change the predictions")
}

func TestBiasOnlyModel(t *testing.T) {
	m := &model.Model{
		KernelType:     model.RBF,
		HyperParams:    []float64{1.0},
		SupportVectors: buildDataset(t, false),
		Bias:           -0.5,
	}
	ds := testSamples(t)

	engine, err := NewEngine(m, nil)
	if err != nil {
		t.Fatal(err)
	}
	predictions := make([]float64, ds.Count())
	if err := engine.Predict(ds, predictions); err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, predictions, []float64{-0.5, -0.5, -0.5, -0.5}, "bias-only decision")
}

func TestLinearEngineSkipsUnseenDimensions(t *testing.T) {
	m := newTestModel(t, model.Linear, nil)
	// Sample with an index beyond the training dimensionality: it cannot
	// carry weight and must not contribute (nor crash).
	ds := buildDataset(t, false, []dataset.Feature{{Index: 1, Value: 1.0}, {Index: 1000, Value: 5.0}})

	engine, err := NewEngine(m, nil)
	if err != nil {
		t.Fatal(err)
	}
	predictions := make([]float64, 1)
	if err := engine.Predict(ds, predictions); err != nil {
		t.Fatal(err)
	}
	want := expandedPrediction(m, ds, 0)
	test.CheckNearFloat64(t, predictions[0], want, 1e-12, "unseen dimensions contribute zero")
}

func TestPredictShapeMismatch(t *testing.T) {
	m := newTestModel(t, model.Linear, nil)
	engine, err := NewEngine(m, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := engine.Predict(testSamples(t), make([]float64, 1)); err == nil {
		t.Fatal("expected an error for a mis-sized prediction slice")
	}
}

func TestNewEngineRejectsBrokenModel(t *testing.T) {
	m := newTestModel(t, model.Linear, nil)
	m.Weights = m.Weights[:1]
	if _, err := NewEngine(m, nil); err == nil {
		t.Fatal("expected an error for a model with non-parallel weights")
	}
}

func TestWritePredictions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.txt")
	if err := WritePredictions(path, []float64{0.87, -0.31}); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, string(content), "0.87\n-0.31\n", "one value per line, nothing else")
}

func TestWritePredictionsTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "predictions.txt")
	if err := os.WriteFile(path, []byte("stale content that is longer\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := WritePredictions(path, []float64{1}); err != nil {
		t.Fatal(err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, string(content), "1\n", "existing content is truncated")
}

func TestWritePredictionsBadPath(t *testing.T) {
	err := WritePredictions(filepath.Join(t.TempDir(), "no", "such", "dir", "p.txt"), []float64{1})
	if err == nil {
		t.Fatal("expected an error for an unwritable path")
	}
}
