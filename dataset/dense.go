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

package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FromDense builds a dense-storage dataset from a gonum matrix, one sample
// per row. Column j becomes feature index j, and every index is
// materialized, including zeros, so dense and sparse datasets share one
// representation and one kernel code path. targets may be nil for an
// unlabeled dataset; otherwise its length must equal the number of rows.
func FromDense(m mat.Matrix, targets []float64) (*Dataset, error) {
	rows, cols := m.Dims()
	if targets != nil && len(targets) != rows {
		return nil, fmt.Errorf("dataset: %d targets for %d rows", len(targets), rows)
	}

	builder := NewBuilder(targets != nil)
	builder.storage = StorageDense
	builder.DeclareMaxDim(cols)
	features := make([]Feature, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			features[j] = Feature{Index: int32(j), Value: m.At(i, j)}
		}
		target := 0.0
		if targets != nil {
			target = targets[i]
		}
		if err := builder.AddSample(features, target); err != nil {
			return nil, err
		}
	}
	return builder.Build(), nil
}

// DenseMatrix materializes the dataset as a gonum dense matrix of shape
// Count x MaxDim, with the feature of index k in column k. Indices absent
// from a sample read as zero. Fails on an empty feature space.
func (d *Dataset) DenseMatrix() (*mat.Dense, error) {
	if d.Count() == 0 || d.maxDim == 0 {
		return nil, fmt.Errorf("dataset: cannot densify a %dx%d dataset", d.Count(), d.maxDim)
	}
	dense := mat.NewDense(d.Count(), d.maxDim, nil)
	for i := 0; i < d.Count(); i++ {
		for _, f := range d.Features(i) {
			dense.Set(i, int(f.Index), f.Value)
		}
	}
	return dense, nil
}
