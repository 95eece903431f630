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

// Package dataset represents sparse, high-dimensional datasets in memory.
//
// All the feature runs of a dataset live back-to-back in a single contiguous
// feature store owned by the Dataset. Each sample is a lightweight
// (offset, length) view into this store, so a kernel evaluation scans one
// cache-friendly slice per sample and no per-sample allocation ever happens.
// The squared L2 norm of every sample is cached at construction time; this
// is what makes each RBF kernel evaluation cost O(nnz) instead of O(maxdim).
//
// A Dataset is immutable once built and can therefore be read concurrently
// without locks.
package dataset

// Feature is one non-zero dimension of a sparse sample.
//
// Indices are kept exactly as they appear in the source (LIBSVM files use
// 1-based indices; dense matrices map column j to index j). Within one
// sample, indices are strictly increasing.
type Feature struct {
	Index int32
	Value float64
}

// Storage is the storage discipline a dataset was built from. The in-memory
// representation is uniformly (index, value) pairs; dense inputs simply
// materialize every index. Knowing the origin lets consumers pick dense
// fast paths without re-branching on every sample.
type Storage int32

// Known storage disciplines.
const (
	StorageSparse Storage = 0
	StorageDense  Storage = 1
)

// span locates one sample's feature run inside the store. Plain integers:
// a span cannot dangle, and it is meaningless outside its owning Dataset.
type span struct {
	offset int
	length int
}

// Dataset is a collection of samples, their optional targets and the cached
// squared norm of every sample. It exclusively owns its feature store; the
// slices returned by Features are borrows into it and must not be mutated.
type Dataset struct {
	labeled bool
	storage Storage
	maxDim  int

	// Per-sample parallel sequences. targets is nil when !labeled.
	targets      []float64
	spans        []span
	squaredNorms []float64

	// The feature store: every sample's run, back-to-back.
	store []Feature
}

// Count is the number of samples.
func (d *Dataset) Count() int {
	return len(d.spans)
}

// MaxDim is the feature-space dimensionality: one plus the maximum feature
// index seen at construction time, or a larger value declared explicitly.
func (d *Dataset) MaxDim() int {
	return d.maxDim
}

// Labeled tells whether a target value accompanies each sample.
func (d *Dataset) Labeled() bool {
	return d.labeled
}

// Storage is the storage discipline the dataset was built from.
func (d *Dataset) Storage() Storage {
	return d.storage
}

// NumFeatures is the total number of stored features across all samples.
func (d *Dataset) NumFeatures() int {
	return len(d.store)
}

// Features returns the feature run of a sample as a read-only view into the
// feature store. The view is valid as long as the Dataset is.
func (d *Dataset) Features(i int) []Feature {
	s := d.spans[i]
	return d.store[s.offset : s.offset+s.length : s.offset+s.length]
}

// Target returns the target value of a sample. Only valid on labeled
// datasets.
func (d *Dataset) Target(i int) float64 {
	return d.targets[i]
}

// Targets returns the target sequence, nil for unlabeled datasets.
func (d *Dataset) Targets() []float64 {
	return d.targets
}

// SquaredNorm returns the cached squared L2 norm of a sample.
func (d *Dataset) SquaredNorm(i int) float64 {
	return d.squaredNorms[i]
}

// SquaredNorms returns the per-sample squared norm cache.
func (d *Dataset) SquaredNorms() []float64 {
	return d.squaredNorms
}
