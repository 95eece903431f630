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
	"fmt"
	"sync"

	"github.com/svmkit/svmkit/dataset"
	"github.com/svmkit/svmkit/kernel"
	"github.com/svmkit/svmkit/model"
)

// Engine generates predictions for a model.
//
// Usage example:
//
//	m, err := io.LoadModel("/path/to/model")
//	engine, err := serving.NewEngine(m, &model.PredictParameters{Threads: 4})
//
//	ds, err := dataset.ReadUnlabeledFile("/path/to/test.libsvm")
//	predictions := make([]float64, ds.Count())
//	err = engine.Predict(ds, predictions)
type Engine interface {

	// Predict populates "predictions" with the decision value of every
	// dataset sample, in sample order. len(predictions) must equal
	// ds.Count(). Samples are read-only for the engine, so a dataset may
	// be shared by concurrent Predict calls.
	Predict(ds *dataset.Dataset, predictions []float64) error
}

// genericEngine evaluates the full kernel expansion
// f(x) = sum_i weights[i]*K(sv[i], x) + bias for any configured kernel.
type genericEngine struct {
	svs      *dataset.Dataset
	weights  []float64
	bias     float64
	kernelFn kernel.Func
	threads  int
}

func newGenericEngine(m *model.Model, threads int) (*genericEngine, error) {
	kernelFn, err := kernel.New(m.KernelType, m.HyperParams)
	if err != nil {
		return nil, fmt.Errorf("serving: %w", err)
	}
	return &genericEngine{
		svs:      m.SupportVectors,
		weights:  m.Weights,
		bias:     m.Bias,
		kernelFn: kernelFn,
		threads:  threads,
	}, nil
}

func (e *genericEngine) Predict(ds *dataset.Dataset, predictions []float64) error {
	if err := checkShape(ds, predictions); err != nil {
		return err
	}
	runParallel(ds.Count(), e.threads, func(begin, end int) {
		for i := begin; i < end; i++ {
			features := ds.Features(i)
			norm := ds.SquaredNorm(i)
			sum := e.bias
			for j := range e.weights {
				sum += e.weights[j] * e.kernelFn(e.svs.Features(j), features, e.svs.SquaredNorm(j), norm)
			}
			predictions[i] = sum
		}
	})
	return nil
}

// linearEngine folds all support vectors of a linear model into one dense
// weight vector at construction time: w = sum_i weights[i]*sv[i]. Each
// prediction is then a single O(nnz(x)) scan instead of a pass over every
// support vector.
type linearEngine struct {
	denseWeights []float64
	bias         float64
	threads      int
}

func newLinearEngine(m *model.Model, threads int) *linearEngine {
	denseWeights := make([]float64, m.SupportVectors.MaxDim())
	for j := 0; j < m.SupportVectors.Count(); j++ {
		weight := m.Weights[j]
		for _, f := range m.SupportVectors.Features(j) {
			denseWeights[f.Index] += weight * f.Value
		}
	}
	return &linearEngine{denseWeights: denseWeights, bias: m.Bias, threads: threads}
}

func (e *linearEngine) Predict(ds *dataset.Dataset, predictions []float64) error {
	if err := checkShape(ds, predictions); err != nil {
		return err
	}
	runParallel(ds.Count(), e.threads, func(begin, end int) {
		for i := begin; i < end; i++ {
			sum := e.bias
			for _, f := range ds.Features(i) {
				// Indices beyond the training dimensionality cannot carry
				// weight and are skipped.
				if int(f.Index) < len(e.denseWeights) {
					sum += e.denseWeights[f.Index] * f.Value
				}
			}
			predictions[i] = sum
		}
	})
	return nil
}

func checkShape(ds *dataset.Dataset, predictions []float64) error {
	if len(predictions) != ds.Count() {
		return fmt.Errorf("serving: %d predictions for %d samples", len(predictions), ds.Count())
	}
	return nil
}

// runParallel splits [0, n) into one contiguous chunk per worker and blocks
// until all workers are done. The chunks are disjoint, so workers never
// write to the same prediction slot.
func runParallel(n, threads int, chunk func(begin, end int)) {
	if threads > n {
		threads = n
	}
	if threads <= 1 {
		chunk(0, n)
		return
	}
	var wg sync.WaitGroup
	for w := 0; w < threads; w++ {
		begin := w * n / threads
		end := (w + 1) * n / threads
		wg.Add(1)
		go func() {
			defer wg.Done()
			chunk(begin, end)
		}()
	}
	wg.Wait()
}
