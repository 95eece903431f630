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

// Package kernel evaluates kernel functions between sparse samples.
//
// Every evaluation costs O(nnz(a) + nnz(b)): the dot product is a
// merge-join over the two increasing-index runs, and the RBF distance term
// uses the squared norms cached on the dataset and the model instead of
// rescanning maxdim dimensions.
package kernel

import (
	"fmt"
	"math"

	"github.com/svmkit/svmkit/dataset"
	"github.com/svmkit/svmkit/model"
)

// Dot is the sparse dot product of two feature runs. Both runs must have
// strictly increasing indices; indices present in only one operand are
// skipped.
func Dot(a, b []dataset.Feature) float64 {
	sum := 0.0
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Index == b[j].Index:
			sum += a[i].Value * b[j].Value
			i++
			j++
		case a[i].Index < b[j].Index:
			i++
		default:
			j++
		}
	}
	return sum
}

// Linear is the linear kernel K(a, b) = <a, b>.
func Linear(a, b []dataset.Feature) float64 {
	return Dot(a, b)
}

// RBF is the Gaussian kernel K(a, b) = exp(-gamma * ||a-b||^2), with the
// squared distance expanded as na + nb - 2<a, b> so that the cached squared
// norms na and nb spare the per-pair norm recomputation.
func RBF(a, b []dataset.Feature, na, nb, gamma float64) float64 {
	return math.Exp(-gamma * (na + nb - 2*Dot(a, b)))
}

// Func evaluates a configured kernel between two samples given their cached
// squared norms. Linear kernels ignore the norms.
type Func func(a, b []dataset.Feature, na, nb float64) float64

// New compiles an evaluator from a model's kernel configuration.
func New(kernelType model.KernelType, hyperParams []float64) (Func, error) {
	switch kernelType {
	case model.Linear:
		return func(a, b []dataset.Feature, na, nb float64) float64 {
			return Dot(a, b)
		}, nil
	case model.RBF:
		if len(hyperParams) < 1 {
			return nil, fmt.Errorf("RBF kernel requires gamma as hyperparameter")
		}
		gamma := hyperParams[0]
		return func(a, b []dataset.Feature, na, nb float64) float64 {
			return RBF(a, b, na, nb, gamma)
		}, nil
	}
	return nil, fmt.Errorf("unknown kernel type %v", kernelType)
}
