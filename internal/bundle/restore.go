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
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"configbundle/internal/common"
)

// RestoreAsCopy copies a bundled file back to the target recorded in
// its backlink. Without overwrite, an existing target is an error. The
// bundled file itself is never modified.
func (s *Store) RestoreAsCopy(bundled string, overwrite bool) (string, error) {
	target, err := s.prepareRestore(bundled, overwrite)
	if err != nil {
		return "", err
	}
	if err := copyFile(bundled, target); err != nil {
		return "", err
	}
	log.Debugf("[restore] copied %s -> %s", bundled, target)
	return target, nil
}

// RestoreAsLink creates a symlink at the target recorded in the
// backlink, pointing at the bundled file. Overwrite semantics match
// RestoreAsCopy.
func (s *Store) RestoreAsLink(bundled string, overwrite bool) (string, error) {
	target, err := s.prepareRestore(bundled, overwrite)
	if err != nil {
		return "", err
	}
	absBundled, err := filepath.Abs(bundled)
	if err != nil {
		return "", err
	}
	if err := os.Symlink(absBundled, target); err != nil {
		return "", err
	}
	log.Debugf("[restore] linked %s -> %s", target, absBundled)
	return target, nil
}

// prepareRestore resolves the target, enforces the overwrite check and
// clears whatever currently occupies the target path. The stale entry
// is unlinked even when overwriting, because copying onto a live
// symlink would write through it back into the repository instead of
// replacing it.
func (s *Store) prepareRestore(bundled string, overwrite bool) (string, error) {
	target, err := s.AssociatedTarget(bundled)
	if err != nil {
		return "", err
	}
	if !overwrite && pathExists(target) {
		return "", fmt.Errorf("%s: %w", target, common.ErrTargetExists)
	}
	if err := removeIfExists(target); err != nil {
		return "", err
	}
	return target, nil
}
