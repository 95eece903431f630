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
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/svmkit/svmkit/utils/test"
)

func TestFromDense(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{
		1, 0, 2,
		0, 3, 0,
	})
	ds, err := FromDense(m, []float64{1, -1})
	if err != nil {
		t.Fatal(err)
	}

	test.CheckEq(t, ds.Count(), 2, "count")
	test.CheckEq(t, ds.MaxDim(), 3, "maxdim")
	test.CheckEq(t, ds.Storage(), StorageDense, "storage")
	test.CheckEq(t, ds.Labeled(), true, "labeled")
	// Every index is materialized, zeros included.
	test.CheckEq(t, ds.Features(0), []Feature{{0, 1}, {1, 0}, {2, 2}}, "sample 0")
	test.CheckEq(t, ds.SquaredNorms(), []float64{5.0, 9.0}, "squared norms")
}

func TestFromDenseUnlabeled(t *testing.T) {
	ds, err := FromDense(mat.NewDense(1, 2, []float64{1, 2}), nil)
	if err != nil {
		t.Fatal(err)
	}
	test.CheckEq(t, ds.Labeled(), false, "labeled")
}

func TestFromDenseTargetMismatch(t *testing.T) {
	_, err := FromDense(mat.NewDense(2, 2, nil), []float64{1})
	if err == nil {
		t.Fatal("expected an error for mismatched targets")
	}
}

func TestDenseMatrixRoundTrip(t *testing.T) {
	src := mat.NewDense(3, 4, []float64{
		1, 2, 0, 0,
		0, 0, 0, 5,
		7, 0, 8, 0,
	})
	ds, err := FromDense(src, nil)
	if err != nil {
		t.Fatal(err)
	}
	dst, err := ds.DenseMatrix()
	if err != nil {
		t.Fatal(err)
	}
	if !mat.Equal(src, dst) {
		t.Fatalf("round trip mismatch:\ngot %v\nwant %v",
			mat.Formatted(dst), mat.Formatted(src))
	}
}

func TestDenseMatrixFromSparse(t *testing.T) {
	path := writeTempFile(t, "+1 1:2.0 3:1.0\n-1 2:4.0\n")
	ds, err := ReadLabeledFile(path)
	if err != nil {
		t.Fatal(err)
	}
	dense, err := ds.DenseMatrix()
	if err != nil {
		t.Fatal(err)
	}

	// Column k carries feature index k; 1-based LIBSVM indices leave
	// column 0 empty, as maxdim = max index + 1.
	want := mat.NewDense(2, 4, []float64{
		0, 2, 0, 1,
		0, 0, 4, 0,
	})
	if !mat.Equal(want, dense) {
		t.Fatalf("mismatch:\ngot %v\nwant %v", mat.Formatted(dense), mat.Formatted(want))
	}
}

func TestDenseMatrixEmpty(t *testing.T) {
	if _, err := NewBuilder(false).Build().DenseMatrix(); err == nil {
		t.Fatal("expected an error for an empty dataset")
	}
}
