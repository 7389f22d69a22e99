// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vec

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrDimensionMismatch is matched by errors reporting operands of
// incompatible dimensions.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// DimensionMismatchError reports the lengths of vectors whose dimensions do not match.
type DimensionMismatchError struct {
	// Lengths of the operands.
	Lengths []int
	// Want is the length required by the operator, 0 if any common length is valid.
	Want int
}

// Error returns a description of the mismatch.
func (err *DimensionMismatchError) Error() string {
	if err.Want > 0 {
		return fmt.Sprintf("%s: got vectors of lengths %v but want vectors of length %d", ErrDimensionMismatch, err.Lengths, err.Want)
	}
	return fmt.Sprintf("%s: got vectors of lengths %v", ErrDimensionMismatch, err.Lengths)
}

// Is returns true if target is ErrDimensionMismatch.
func (err *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}

func lengths(vs []Vector) []int {
	lens := make([]int, len(vs))
	for i, v := range vs {
		lens[i] = len(v)
	}
	return lens
}

// CheckDims returns the common length of vectors.
// It returns an error if the lengths differ.
func CheckDims(vs ...Vector) (int, error) {
	if len(vs) == 0 {
		return 0, nil
	}
	n := len(vs[0])
	for _, v := range vs[1:] {
		if len(v) != n {
			return 0, errors.WithStack(&DimensionMismatchError{Lengths: lengths(vs)})
		}
	}
	return n, nil
}

// checkDimsEqual returns an error if the vectors do not all have want components.
func checkDimsEqual(want int, vs ...Vector) error {
	n, err := CheckDims(vs...)
	if err != nil {
		return err
	}
	if n != want {
		return errors.WithStack(&DimensionMismatchError{Lengths: lengths(vs), Want: want})
	}
	return nil
}
