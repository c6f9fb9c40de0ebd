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
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"configbundle/internal/common"
	"configbundle/internal/util"
)

// UnbundleSummary reports what a sweep restored and cleaned up.
type UnbundleSummary struct {
	Restored       []string         // target paths written by the restore phase
	Failures       []Result[string] // per-path failures, kept for retry
	Deleted        []string         // repository entries removed
	SkippedDeletes []string         // removable entries that still could not be deleted
}

// Unbundle restores every bundled file beneath dir to its backlinked
// target, then deletes exactly the repository entries that are safe to
// delete. Entries that failed to restore, and everything above them,
// survive so a retry never loses data.
//
// The sweep applies one action per entry: bundled files are restored by
// copy (overwriting), backlinks are checked for their bundle half,
// directories succeed trivially. The complete result set then feeds
// Removable; no deletion happens before every result is in.
func (s *Store) Unbundle(ctx context.Context, dir string) (*UnbundleSummary, error) {
	results, err := s.sweep(dir, s.restoreAction)
	if err != nil {
		return nil, err
	}

	summary := &UnbundleSummary{}
	successes, failures := SplitResults(results)
	summary.Failures = failures
	for _, r := range successes {
		if r.Value != "" {
			summary.Restored = append(summary.Restored, r.Value)
		}
	}
	for _, r := range failures {
		log.Warnf("[unbundle] %s: %v", r.Path, r.Err)
	}

	for _, p := range Removable(results) {
		if err := s.deleteEntry(ctx, p); err != nil {
			log.Warnf("[unbundle] could not delete %s: %v", p, err)
			summary.SkippedDeletes = append(summary.SkippedDeletes, p)
			continue
		}
		summary.Deleted = append(summary.Deleted, p)
	}
	return summary, nil
}

// PlanUnbundle computes what Unbundle would restore and delete without
// touching the filesystem. Bundled files are checked for a resolvable
// backlink instead of being copied, so the plan's failure set matches
// what the real sweep would report for orphaned entries.
func (s *Store) PlanUnbundle(dir string) (*UnbundleSummary, error) {
	results, err := s.sweep(dir, s.planAction)
	if err != nil {
		return nil, err
	}

	summary := &UnbundleSummary{}
	successes, failures := SplitResults(results)
	summary.Failures = failures
	for _, r := range successes {
		if r.Value != "" {
			summary.Restored = append(summary.Restored, r.Value)
		}
	}
	summary.Deleted = Removable(results)
	return summary, nil
}

// sweep validates dir, walks it, and applies action to every entry.
func (s *Store) sweep(dir string, action ActionFunc[string]) ([]Result[string], error) {
	dir = filepath.Clean(dir)
	if !s.repo.Contains(dir) {
		return nil, fmt.Errorf("%s: outside the repository", dir)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, common.ErrNotDir)
	}

	paths, walkFailures, err := s.collectEntries(dir)
	if err != nil {
		return nil, err
	}
	results := ActOnPaths(paths, action)
	return append(results, walkFailures...), nil
}

// collectEntries walks the subtree and returns every non-ignored entry
// below the repository root, the swept directory included (unless it is
// the root itself). Traversal errors become per-path failures instead
// of aborting the walk.
func (s *Store) collectEntries(dir string) ([]string, []Result[string], error) {
	var paths []string
	var failures []Result[string]
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			failures = append(failures, Result[string]{Path: path, Err: walkErr})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if s.repo.Ignored(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == s.repo.Root() {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return paths, failures, nil
}

// restoreAction is the per-entry operation of the restore phase. The
// returned value is the restored target path, or empty for entries with
// nothing to restore.
func (s *Store) restoreAction(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return "", err
	}
	switch {
	case info.IsDir():
		// Deletion candidate only.
		return "", nil
	case IsBacklink(path):
		if !entryExists(BundledPath(path)) {
			return "", fmt.Errorf("%s: %w", path, common.ErrNoBundle)
		}
		return "", nil
	case info.Mode()&os.ModeSymlink != 0:
		// A stray symlink in the store; nothing to restore.
		return "", nil
	default:
		return s.RestoreAsCopy(path, true)
	}
}

// planAction mirrors restoreAction but only resolves the backlink of a
// bundled file instead of copying it out.
func (s *Store) planAction(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return "", err
	}
	switch {
	case info.IsDir():
		return "", nil
	case IsBacklink(path):
		if !entryExists(BundledPath(path)) {
			return "", fmt.Errorf("%s: %w", path, common.ErrNoBundle)
		}
		return "", nil
	case info.Mode()&os.ModeSymlink != 0:
		return "", nil
	default:
		return s.AssociatedTarget(path)
	}
}

// deleteEntry removes one repository entry, missing-ok, retrying
// transient failures. Directories are only ever empty by the time they
// come up, since Removable orders them after their contents.
func (s *Store) deleteEntry(ctx context.Context, path string) error {
	return util.Retry(ctx, func() error {
		err := os.Remove(path)
		if err == nil || os.IsNotExist(err) {
			return nil
		}
		return err
	}, util.FilesystemRetryOptions(ctx)...)
}

// Count tallies the non-ignored files and directories in the
// repository, the root excluded. Used by destroy to describe what a
// deletion would cost.
func (s *Store) Count() (files, dirs int, err error) {
	err = filepath.WalkDir(s.repo.Root(), func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if s.repo.Ignored(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == s.repo.Root() {
			return nil
		}
		if d.IsDir() {
			dirs++
		} else {
			files++
		}
		return nil
	})
	return files, dirs, err
}
