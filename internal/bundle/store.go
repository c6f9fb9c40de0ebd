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

// Package bundle owns the bundle/backlink lifecycle: relocating target
// files into the repository, resolving a bundled file's target through
// its backlink, restoring targets by copy or by link, and the batch
// bookkeeping behind the bulk unbundle sweep.
package bundle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"configbundle/internal/common"
	"configbundle/internal/repo"
)

// BacklinkSuffix is appended to a bundled file's path to form its
// backlink path. The suffix is the only on-disk format surface and must
// stay stable to keep previously bundled data readable.
const BacklinkSuffix = ".link"

// BacklinkPath returns the backlink path for a bundled file.
func BacklinkPath(bundled string) string {
	return bundled + BacklinkSuffix
}

// IsBacklink reports whether path names a backlink.
func IsBacklink(path string) bool {
	return strings.HasSuffix(path, BacklinkSuffix)
}

// BundledPath returns the bundled file a backlink belongs to.
func BundledPath(backlink string) string {
	return strings.TrimSuffix(backlink, BacklinkSuffix)
}

// Store performs all bundle mutations for one repository.
type Store struct {
	repo *repo.Repository
}

// NewStore returns a Store bound to r.
func NewStore(r *repo.Repository) *Store {
	return &Store{repo: r}
}

// Repo returns the repository the store operates on.
func (s *Store) Repo() *repo.Repository {
	return s.repo
}

// Bundle moves target into storeDir, creates a backlink recording
// target's original absolute path, and replaces target with a symlink
// to the bundled file. Returns the bundled file's path.
//
// The three mutations are sequential; a crash in between can leave a
// bundled file without a backlink or a backlink without the final
// target symlink. Subsequent operations tolerate both states.
func (s *Store) Bundle(target, storeDir string) (string, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	info, err := os.Lstat(absTarget)
	if err != nil {
		return "", err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return "", fmt.Errorf("%s: %w", absTarget, common.ErrSymlinkTarget)
	}

	bundled := filepath.Join(storeDir, filepath.Base(absTarget))
	if entryExists(bundled) {
		return "", fmt.Errorf("%s: %w", bundled, common.ErrAlreadyBundled)
	}

	if err := moveFile(absTarget, bundled); err != nil {
		return "", err
	}
	log.Debugf("[bundle] moved %s -> %s", absTarget, bundled)

	if err := os.Symlink(absTarget, BacklinkPath(bundled)); err != nil {
		return "", err
	}
	if err := os.Symlink(bundled, absTarget); err != nil {
		return "", err
	}
	log.Debugf("[bundle] linked %s -> %s", absTarget, bundled)
	return bundled, nil
}

// AssociatedTarget reads the backlink of a bundled file and returns the
// recorded target path. It does not check whether the target exists;
// that is the caller's concern.
func (s *Store) AssociatedTarget(bundled string) (string, error) {
	target, err := os.Readlink(BacklinkPath(bundled))
	if err != nil {
		// Missing or structurally invalid backlink (EINVAL on a
		// non-symlink) both mean the bundled file is orphaned.
		return "", fmt.Errorf("%s: %w", bundled, common.ErrNoBacklink)
	}
	return target, nil
}

// CopyDest resolves the path CopyOut would write to: a directory
// destination receives the file under its bundled name. Callers that
// prompt before overwriting must check this path, not the raw dest.
func CopyDest(bundled, dest string) string {
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		return filepath.Join(dest, filepath.Base(bundled))
	}
	return dest
}

// CopyOut copies a bundled file to an arbitrary destination, outside
// the backlink mechanism. A directory destination receives the file
// under its bundled name.
func (s *Store) CopyOut(bundled, dest string) (string, error) {
	dest = CopyDest(bundled, dest)
	if err := copyFile(bundled, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// RemoveBundleAndBacklink deletes a bundled file together with its
// backlink. Absence of either is not an error, so cleanup after a
// partial prior failure stays possible.
func (s *Store) RemoveBundleAndBacklink(bundled string) error {
	if err := removeIfExists(bundled); err != nil {
		return err
	}
	return removeIfExists(BacklinkPath(bundled))
}
