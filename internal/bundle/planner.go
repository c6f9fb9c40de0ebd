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

import (
	"path/filepath"
	"sort"

	"configbundle/internal/common"
)

// Removable computes which paths from a batch sweep are safe to delete.
//
// Deleting a directory is not selective, so a directory holding a
// failed entry anywhere beneath it must survive, however many levels
// separate them. Every strict ancestor of every failed path is
// therefore excluded from the candidate set; the failed paths
// themselves were never candidates. The survivors are returned
// deepest-first so files get removed before their parent directories.
//
// A failed bundled file also pins its backlink: the backlink is the
// only record of where the file belongs, so deleting it would strand
// the bundle and make a retry impossible.
//
// Removable only classifies paths; issuing the deletions is the
// caller's concern.
func Removable[T any](results []Result[T]) []string {
	blocked := make(map[string]struct{})
	for _, r := range results {
		if r.OK() {
			continue
		}
		p := filepath.Clean(r.Path)
		if !IsBacklink(p) {
			blocked[BacklinkPath(p)] = struct{}{}
		}
		for _, a := range common.Ancestors(p) {
			blocked[a] = struct{}{}
		}
	}

	var removable []string
	for _, r := range results {
		if !r.OK() {
			continue
		}
		p := filepath.Clean(r.Path)
		if _, ok := blocked[p]; ok {
			continue
		}
		removable = append(removable, p)
	}

	sort.SliceStable(removable, func(i, j int) bool {
		return common.Depth(removable[i]) > common.Depth(removable[j])
	})
	return removable
}
