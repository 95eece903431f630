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

// TrainingParameters is the configuration surface a trainer consumes
// together with a labeled dataset.
type TrainingParameters struct {
	// Hyperparameters of the kernel function, e.g. gamma for RBF.
	KernelHyperParam []float64
	KernelType       KernelType

	// Power noise.
	NoiseParam []float64

	// Number of worker goroutines a trainer may spawn.
	Threads int

	// Convergence criterion.
	Eta float64
}

// PredictParameters is the configuration surface a predictor consumes
// together with a model and a test dataset.
type PredictParameters struct {
	// Whether the test dataset carries labels.
	Labeled bool

	// Number of worker goroutines used to compute predictions.
	// Zero or negative means one worker per available CPU.
	Threads int
}
