// Copyright 2025 ConfigBundle Authors
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

package bundle

// Result records the outcome of applying an action to one path.
// Failures are data, not control flow: a batch aggregates many results
// without one error aborting the rest.
type Result[T any] struct {
	Path  string
	Value T
	Err   error
}

// OK reports whether the action succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// ActionFunc is a fallible operation applied to a single path.
type ActionFunc[T any] func(path string) (T, error)

// ActOnPath applies fn to path and records the outcome. Errors returned
// by fn are captured in the result; panics propagate.
func ActOnPath[T any](path string, fn ActionFunc[T]) Result[T] {
	v, err := fn(path)
	if err != nil {
		return Result[T]{Path: path, Err: err}
	}
	return Result[T]{Path: path, Value: v}
}

// ActOnPaths applies fn to each path in order. The output preserves
// input order; entries are independent of each other.
func ActOnPaths[T any](paths []string, fn ActionFunc[T]) []Result[T] {
	results := make([]Result[T], 0, len(paths))
	for _, p := range paths {
		results = append(results, ActOnPath(p, fn))
	}
	return results
}

// SplitResults partitions results by outcome, preserving relative order
// within each partition.
func SplitResults[T any](results []Result[T]) (successes, failures []Result[T]) {
	for _, r := range results {
		if r.OK() {
			successes = append(successes, r)
		} else {
			failures = append(failures, r)
		}
	}
	return successes, failures
}
