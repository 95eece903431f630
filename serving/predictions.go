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
	"bufio"
	"context"
	"strconv"

	"github.com/svmkit/svmkit/utils/file"
)

// WritePredictions writes one prediction per line, in sample order, to a
// file, truncating any existing content. Values are formatted with the
// shortest decimal representation that round-trips to the same float64.
func WritePredictions(path string, predictions []float64) error {
	ctx := context.Background()
	fileHandle, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	fileIO := fileHandle.IO(ctx)

	buffered := bufio.NewWriter(fileIO)
	for _, p := range predictions {
		if _, err := buffered.WriteString(strconv.FormatFloat(p, 'g', -1, 64)); err != nil {
			fileIO.Close()
			return err
		}
		if err := buffered.WriteByte('\n'); err != nil {
			fileIO.Close()
			return err
		}
	}
	if err := buffered.Flush(); err != nil {
		fileIO.Close()
		return err
	}
	return fileIO.Close()
}
