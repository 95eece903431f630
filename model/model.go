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

// Package model defines the trained kernel-machine model: the kernel
// configuration, the support vectors retained from training, their weights
// and the bias term. Support vectors reuse the dataset representation,
// including its squared-norm cache, so prediction pays the same O(nnz)
// kernel cost as training.
package model

import (
	"fmt"

	"github.com/svmkit/svmkit/dataset"
)

// KernelType identifies the kernel function of a model. The numeric values
// are the wire tags of the model file format.
type KernelType int32

// Supported kernels.
const (
	Linear KernelType = 0
	RBF    KernelType = 1
)

func (k KernelType) String() string {
	switch k {
	case Linear:
		return "LINEAR"
	case RBF:
		return "RBF"
	}
	return fmt.Sprintf("KernelType(%d)", int32(k))
}

// Model is a trained binary classifier. A Model is immutable once built
// (by a trainer or by the model codec) and safe for concurrent readers.
type Model struct {
	// Kernel configuration. For RBF, HyperParams[0] is gamma.
	KernelType  KernelType
	HyperParams []float64

	// Support vectors, stored as an unlabeled dataset. Its MaxDim matches
	// the dimensionality of the training dataset.
	SupportVectors *dataset.Dataset

	// Per-support-vector coefficient, parallel to SupportVectors.
	Weights []float64

	// Bias term of the decision function.
	Bias float64
}

// NumSupportVectors is the number of retained support vectors. Zero is
// legal: such a model classifies every input to the bias-only decision.
func (m *Model) NumSupportVectors() int {
	return len(m.Weights)
}

// Validate checks the structural invariants of the model: a known kernel
// type and parallel weights / support-vector / squared-norm sequences.
func (m *Model) Validate() error {
	switch m.KernelType {
	case Linear, RBF:
	default:
		return fmt.Errorf("unknown kernel type %v", m.KernelType)
	}
	if m.SupportVectors == nil {
		return fmt.Errorf("nil support vector set")
	}
	if m.SupportVectors.Count() != len(m.Weights) {
		return fmt.Errorf("%d weights for %d support vectors",
			len(m.Weights), m.SupportVectors.Count())
	}
	if len(m.SupportVectors.SquaredNorms()) != len(m.Weights) {
		return fmt.Errorf("%d cached norms for %d support vectors",
			len(m.SupportVectors.SquaredNorms()), len(m.Weights))
	}
	return nil
}
