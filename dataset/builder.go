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
	"errors"
	"fmt"
	"math"
)

// ErrStoreOverflow is returned when a feature store outgrows what the wire
// format can index (feature offsets and counts are int32 on disk).
var ErrStoreOverflow = errors.New("dataset: feature store exceeds the wire format limit")

// maxStoreLen bounds the feature store. See ErrStoreOverflow.
const maxStoreLen = math.MaxInt32

// Builder assembles a Dataset one sample at a time.
//
// The store grows geometrically while samples are added; views are recorded
// as integer offsets, so growth never invalidates them. Build freezes the
// store and hands out the finished Dataset. A Builder must not be reused
// after Build.
type Builder struct {
	labeled bool
	storage Storage

	// Largest feature index seen so far, -1 until the first feature.
	maxIndex int32
	// Explicitly declared dimensionality floor, e.g. taken from a model at
	// prediction time. The final MaxDim is at least this value.
	declaredMaxDim int

	targets      []float64
	spans        []span
	squaredNorms []float64
	store        []Feature
}

// NewBuilder creates a Builder for a labeled or unlabeled sparse dataset.
func NewBuilder(labeled bool) *Builder {
	return &Builder{labeled: labeled, storage: StorageSparse, maxIndex: -1}
}

// DeclareMaxDim sets a floor on the dimensionality of the built dataset.
// Used when the dimensionality is fixed externally, e.g. by the model a
// test set is about to be evaluated against.
func (b *Builder) DeclareMaxDim(maxDim int) {
	if maxDim > b.declaredMaxDim {
		b.declaredMaxDim = maxDim
	}
}

// AddSample appends one sample. The features must have non-negative,
// strictly increasing indices; they are copied into the store. The target
// is ignored on unlabeled builders. The squared norm of the sample is
// computed here, during the same pass that validates the indices.
func (b *Builder) AddSample(features []Feature, target float64) error {
	return b.add(features, target, 0, false)
}

// AddSampleWithNorm is AddSample with a squared norm obtained elsewhere,
// e.g. read back from a model file. The caller vouches for the value.
func (b *Builder) AddSampleWithNorm(features []Feature, target float64, squaredNorm float64) error {
	return b.add(features, target, squaredNorm, true)
}

func (b *Builder) add(features []Feature, target float64, norm float64, hasNorm bool) error {
	if len(b.store)+len(features) > maxStoreLen {
		return ErrStoreOverflow
	}

	prev := int32(-1)
	sum := 0.0
	for _, f := range features {
		if f.Index < 0 {
			return fmt.Errorf("invalid feature index %d", f.Index)
		}
		if f.Index <= prev {
			return fmt.Errorf("feature index %d after %d: indices must be strictly increasing", f.Index, prev)
		}
		prev = f.Index
		sum += f.Value * f.Value
	}
	if !hasNorm {
		norm = sum
	}
	if prev > b.maxIndex {
		b.maxIndex = prev
	}

	b.spans = append(b.spans, span{offset: len(b.store), length: len(features)})
	b.store = append(b.store, features...)
	b.squaredNorms = append(b.squaredNorms, norm)
	if b.labeled {
		b.targets = append(b.targets, target)
	}
	return nil
}

// Count is the number of samples added so far.
func (b *Builder) Count() int {
	return len(b.spans)
}

// Build freezes the store and returns the finished Dataset. The Builder
// gives up ownership of its buffers; no store reallocation can happen after
// this point.
func (b *Builder) Build() *Dataset {
	maxDim := int(b.maxIndex) + 1
	if b.declaredMaxDim > maxDim {
		maxDim = b.declaredMaxDim
	}
	d := &Dataset{
		labeled:      b.labeled,
		storage:      b.storage,
		maxDim:       maxDim,
		targets:      b.targets,
		spans:        b.spans,
		squaredNorms: b.squaredNorms,
		store:        b.store,
	}
	b.targets = nil
	b.spans = nil
	b.squaredNorms = nil
	b.store = nil
	return d
}
