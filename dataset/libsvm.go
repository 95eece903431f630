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
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/svmkit/svmkit/utils/file"
)

// ParseError reports the first malformed line of a LIBSVM-format file.
type ParseError struct {
	Path string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Msg)
}

// Scanner line capacity. Wide sparse samples can easily exceed the bufio
// default of 64KiB.
const maxLineBytes = 16 * 1024 * 1024

// ReadLabeledFile reads a labeled dataset in LIBSVM format, one sample per
// line:
//
//	+1.0 1:5 7:2 15:6
//	-1.0 2:4 3:2 10:6 11:4
//
// Pair indices must be strictly increasing within a line. Blank lines are
// ignored; a line with a label and no pairs is a valid all-zero sample.
// The first malformed line (or an empty file) fails with a *ParseError and
// no dataset is returned.
func ReadLabeledFile(path string) (*Dataset, error) {
	return readFile(path, true)
}

// ReadUnlabeledFile reads an unlabeled dataset in LIBSVM format: the same
// grammar as ReadLabeledFile without the leading label field.
func ReadUnlabeledFile(path string) (*Dataset, error) {
	return readFile(path, false)
}

func readFile(path string, labeled bool) (*Dataset, error) {
	ctx := context.Background()
	fileHandle, err := file.OpenRead(ctx, path)
	if err != nil {
		return nil, err
	}
	fileIO := fileHandle.IO(ctx)
	defer fileIO.Close()

	scanner := bufio.NewScanner(fileIO)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	builder := NewBuilder(labeled)
	lineno := 0
	for scanner.Scan() {
		lineno++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		target := 0.0
		if labeled {
			target, err = strconv.ParseFloat(fields[0], 64)
			if err != nil {
				return nil, &ParseError{Path: path, Line: lineno,
					Msg: fmt.Sprintf("invalid label %q", fields[0])}
			}
			fields = fields[1:]
		}

		features := make([]Feature, 0, len(fields))
		for _, pair := range fields {
			colon := strings.IndexByte(pair, ':')
			if colon < 0 {
				return nil, &ParseError{Path: path, Line: lineno,
					Msg: fmt.Sprintf("malformed pair %q, expecting index:value", pair)}
			}
			index, err := strconv.ParseInt(pair[:colon], 10, 32)
			if err != nil {
				return nil, &ParseError{Path: path, Line: lineno,
					Msg: fmt.Sprintf("invalid feature index %q", pair[:colon])}
			}
			value, err := strconv.ParseFloat(pair[colon+1:], 64)
			if err != nil {
				return nil, &ParseError{Path: path, Line: lineno,
					Msg: fmt.Sprintf("invalid feature value %q", pair[colon+1:])}
			}
			features = append(features, Feature{Index: int32(index), Value: value})
		}

		if err := builder.AddSample(features, target); err != nil {
			return nil, &ParseError{Path: path, Line: lineno, Msg: err.Error()}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %v: %w", path, err)
	}
	if builder.Count() == 0 {
		return nil, &ParseError{Path: path, Line: lineno, Msg: "empty dataset"}
	}

	return builder.Build(), nil
}
