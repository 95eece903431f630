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

// Package file is a slim portability layer over the "os" package. File
// access in this module is synchronous and scoped: a handle is acquired,
// used and released on every exit path, so no descriptor leaks past a
// failed parse or codec call. Errors from this layer are *os.PathError
// values and carry the path and the underlying cause.
package file

import (
	"context"
	"io"
	"os"
)

// File for providing the shim layer.
type File struct {
	file *os.File
}

// IO is a convenience interface.
type IO io.ReadWriteCloser

// IO to get the os.File member.
func (f *File) IO(ctx context.Context) IO {
	return f.file
}

// Create a file, truncating any existing content.
func Create(ctx context.Context, name string) (File, error) {
	file, err := os.Create(name)
	return File{file: file}, err
}

// OpenRead opens the file for reading.
func OpenRead(ctx context.Context, name string) (File, error) {
	file, err := os.Open(name)
	return File{file: file}, err
}
