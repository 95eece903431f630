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

// Package io saves and loads trained models.
//
// The format is a self-describing, versioned binary record, little-endian:
//
//	magic "SV" | version uint16 | reserved uint32
//	kernelType int32 | numHyperParams int32 | hyperParams float64*
//	maxdim int32 | numSV int32 | bias float64 | weights float64*numSV
//	per support vector: (index int32, value float64)* pairs terminated by
//	    index -1, then the cached squared norm as float64
//
// Floating-point fields are stored as raw float64 bit patterns, so a
// store/read cycle round-trips bit-exactly. A stream that ends before the
// declared counts are satisfied, or declares an unknown kernel tag, fails
// with a *CorruptError.
package io

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/svmkit/svmkit/dataset"
	"github.com/svmkit/svmkit/model"
	"github.com/svmkit/svmkit/utils/file"
)

// Magic number. The first two bytes of a model stream are "SV" in ascii
// (for "support vectors").
const (
	magic0 = 'S'
	magic1 = 'V'
)

// formatVersion is the only version currently written and understood.
const formatVersion uint16 = 0

// sentinelIndex terminates a support vector's feature run on the wire.
const sentinelIndex int32 = -1

// CorruptError reports an invalid or truncated model stream.
type CorruptError struct {
	Reason string
}

func (e *CorruptError) Error() string {
	return "corrupt model: " + e.Reason
}

func corruptf(format string, args ...interface{}) error {
	return &CorruptError{Reason: fmt.Sprintf(format, args...)}
}

// StoreModel writes a model to a stream. The model is validated first, so a
// structurally broken model is rejected rather than serialized.
func StoreModel(w io.Writer, m *model.Model) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("storing model: %w", err)
	}

	buffered := bufio.NewWriter(w)
	if _, err := buffered.Write([]byte{magic0, magic1}); err != nil {
		return err
	}
	if err := binary.Write(buffered, binary.LittleEndian, formatVersion); err != nil {
		return err
	}
	if err := binary.Write(buffered, binary.LittleEndian, uint32(0)); err != nil {
		return err
	}

	if err := binary.Write(buffered, binary.LittleEndian, int32(m.KernelType)); err != nil {
		return err
	}
	if err := binary.Write(buffered, binary.LittleEndian, int32(len(m.HyperParams))); err != nil {
		return err
	}
	for _, p := range m.HyperParams {
		if err := binary.Write(buffered, binary.LittleEndian, p); err != nil {
			return err
		}
	}

	svs := m.SupportVectors
	if svs.MaxDim() > math.MaxInt32 {
		return fmt.Errorf("storing model: %w", dataset.ErrStoreOverflow)
	}
	if err := binary.Write(buffered, binary.LittleEndian, int32(svs.MaxDim())); err != nil {
		return err
	}
	if err := binary.Write(buffered, binary.LittleEndian, int32(svs.Count())); err != nil {
		return err
	}
	if err := binary.Write(buffered, binary.LittleEndian, m.Bias); err != nil {
		return err
	}
	for _, weight := range m.Weights {
		if err := binary.Write(buffered, binary.LittleEndian, weight); err != nil {
			return err
		}
	}

	for i := 0; i < svs.Count(); i++ {
		for _, f := range svs.Features(i) {
			if err := binary.Write(buffered, binary.LittleEndian, f.Index); err != nil {
				return err
			}
			if err := binary.Write(buffered, binary.LittleEndian, f.Value); err != nil {
				return err
			}
		}
		if err := binary.Write(buffered, binary.LittleEndian, sentinelIndex); err != nil {
			return err
		}
		if err := binary.Write(buffered, binary.LittleEndian, svs.SquaredNorm(i)); err != nil {
			return err
		}
	}

	return buffered.Flush()
}

// ReadModel reads a model written by StoreModel, allocating a fresh feature
// store for the support vectors.
func ReadModel(r io.Reader) (*model.Model, error) {
	buffered := bufio.NewReader(r)

	var header [2]byte
	if _, err := io.ReadFull(buffered, header[:]); err != nil {
		return nil, truncated(err)
	}
	if header[0] != magic0 || header[1] != magic1 {
		return nil, corruptf("invalid header %q", header[:])
	}
	var version uint16
	if err := readValue(buffered, &version); err != nil {
		return nil, err
	}
	if version != formatVersion {
		return nil, corruptf("non supported file version %d", version)
	}
	var reserved uint32
	if err := readValue(buffered, &reserved); err != nil {
		return nil, err
	}

	var kernelTag int32
	if err := readValue(buffered, &kernelTag); err != nil {
		return nil, err
	}
	kernelType := model.KernelType(kernelTag)
	switch kernelType {
	case model.Linear, model.RBF:
	default:
		return nil, corruptf("unknown kernel tag %d", kernelTag)
	}

	var numHyperParams int32
	if err := readValue(buffered, &numHyperParams); err != nil {
		return nil, err
	}
	if numHyperParams < 0 {
		return nil, corruptf("negative hyperparameter count %d", numHyperParams)
	}
	hyperParams := make([]float64, numHyperParams)
	for i := range hyperParams {
		if err := readValue(buffered, &hyperParams[i]); err != nil {
			return nil, err
		}
	}

	var maxDim int32
	if err := readValue(buffered, &maxDim); err != nil {
		return nil, err
	}
	if maxDim < 0 {
		return nil, corruptf("negative dimensionality %d", maxDim)
	}
	var numSV int32
	if err := readValue(buffered, &numSV); err != nil {
		return nil, err
	}
	if numSV < 0 {
		return nil, corruptf("negative support vector count %d", numSV)
	}
	var bias float64
	if err := readValue(buffered, &bias); err != nil {
		return nil, err
	}
	weights := make([]float64, numSV)
	for i := range weights {
		if err := readValue(buffered, &weights[i]); err != nil {
			return nil, err
		}
	}

	builder := dataset.NewBuilder(false)
	builder.DeclareMaxDim(int(maxDim))
	var features []dataset.Feature
	for i := int32(0); i < numSV; i++ {
		features = features[:0]
		for {
			var index int32
			if err := readValue(buffered, &index); err != nil {
				return nil, err
			}
			if index == sentinelIndex {
				break
			}
			var value float64
			if err := readValue(buffered, &value); err != nil {
				return nil, err
			}
			features = append(features, dataset.Feature{Index: index, Value: value})
		}
		var norm float64
		if err := readValue(buffered, &norm); err != nil {
			return nil, err
		}
		if err := builder.AddSampleWithNorm(features, 0, norm); err != nil {
			return nil, corruptf("support vector %d: %v", i, err)
		}
	}

	m := &model.Model{
		KernelType:     kernelType,
		HyperParams:    hyperParams,
		SupportVectors: builder.Build(),
		Weights:        weights,
		Bias:           bias,
	}
	if err := m.Validate(); err != nil {
		return nil, corruptf("%v", err)
	}
	return m, nil
}

// SaveModel stores a model into a file, truncating any existing content.
func SaveModel(path string, m *model.Model) error {
	ctx := context.Background()
	fileHandle, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	fileIO := fileHandle.IO(ctx)
	if err := StoreModel(fileIO, m); err != nil {
		fileIO.Close()
		return err
	}
	return fileIO.Close()
}

// LoadModel loads a model from a file written by SaveModel.
func LoadModel(path string) (*model.Model, error) {
	ctx := context.Background()
	fileHandle, err := file.OpenRead(ctx, path)
	if err != nil {
		return nil, err
	}
	fileIO := fileHandle.IO(ctx)
	defer fileIO.Close()
	return ReadModel(fileIO)
}

// readValue reads one fixed-size little-endian value, mapping a premature
// end of stream to a *CorruptError.
func readValue(r io.Reader, data interface{}) error {
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return truncated(err)
	}
	return nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &CorruptError{Reason: "stream ends before the declared counts are satisfied"}
	}
	return err
}
