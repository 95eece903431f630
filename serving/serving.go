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

// Package serving is the entry point for model inference. A model can be
// served by more than one engine; NewEngine picks the fastest one available
// for the model.
package serving

import (
	"fmt"
	"runtime"

	"github.com/svmkit/svmkit/model"
)

// NewEngine creates the best available engine for the model. Linear models
// get a dense-weight engine that folds all support vectors into a single
// weight vector at build time; everything else gets the generic
// kernel-expansion engine.
func NewEngine(m *model.Model, params *model.PredictParameters) (Engine, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("serving: %w", err)
	}
	threads := 0
	if params != nil {
		threads = params.Threads
	}
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}

	switch m.KernelType {
	case model.Linear:
		return newLinearEngine(m, threads), nil
	case model.RBF:
		return newGenericEngine(m, threads)
	}
	return nil, fmt.Errorf("serving: no engine compatible with kernel type %v", m.KernelType)
}
