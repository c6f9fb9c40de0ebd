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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"configbundle/internal/common"
)

// sweepFixture bundles one target into <repo>/bundle_dir.
func sweepFixture(t *testing.T) (s *Store, bundleDir, bundled, target string) {
	t.Helper()
	s = testStore(t)
	bundleDir = filepath.Join(s.Repo().Root(), "bundle_dir")
	require.NoError(t, os.MkdirAll(bundleDir, 0755))
	target = testTarget(t, "dummy content")
	var err error
	bundled, err = s.Bundle(target, bundleDir)
	require.NoError(t, err)
	return s, bundleDir, bundled, target
}

func TestUnbundle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("restores and deletes the emptied subtree", func(t *testing.T) {
		t.Parallel()
		s, bundleDir, bundled, target := sweepFixture(t)

		summary, err := s.Unbundle(ctx, bundleDir)
		require.NoError(t, err)

		assert.Equal(t, []string{target}, summary.Restored)
		assert.Empty(t, summary.Failures)
		assert.NoFileExists(t, bundled)
		assert.NoFileExists(t, BacklinkPath(bundled))
		assert.NoDirExists(t, bundleDir)

		info, err := os.Lstat(target)
		require.NoError(t, err)
		assert.Zero(t, info.Mode()&os.ModeSymlink)
		assert.Equal(t, "dummy content", readFile(t, target))
	})

	t.Run("missing backlink keeps the bundle and its directory", func(t *testing.T) {
		t.Parallel()
		s, bundleDir, bundled, target := sweepFixture(t)
		require.NoError(t, os.Remove(BacklinkPath(bundled)))

		summary, err := s.Unbundle(ctx, bundleDir)
		require.NoError(t, err)

		require.Len(t, summary.Failures, 1)
		assert.ErrorIs(t, summary.Failures[0].Err, common.ErrNoBacklink)
		assert.FileExists(t, bundled)
		assert.DirExists(t, bundleDir)

		info, err := os.Lstat(target)
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&os.ModeSymlink, "target symlink must survive")
	})

	t.Run("missing bundled file keeps the backlink and its directory", func(t *testing.T) {
		t.Parallel()
		s, bundleDir, bundled, target := sweepFixture(t)
		require.NoError(t, os.Remove(bundled))

		summary, err := s.Unbundle(ctx, bundleDir)
		require.NoError(t, err)

		require.Len(t, summary.Failures, 1)
		assert.ErrorIs(t, summary.Failures[0].Err, common.ErrNoBundle)
		assert.FileExists(t, BacklinkPath(bundled))
		assert.DirExists(t, bundleDir)

		info, err := os.Lstat(target)
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&os.ModeSymlink)
	})

	t.Run("failed restore keeps the backlink for a retry", func(t *testing.T) {
		t.Parallel()
		s, bundleDir, bundled, _ := sweepFixture(t)

		// Route the backlink through a regular file so the copy
		// fails while the backlink itself stays resolvable.
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
		require.NoError(t, os.Remove(BacklinkPath(bundled)))
		require.NoError(t, os.Symlink(filepath.Join(blocker, "app.conf"), BacklinkPath(bundled)))

		summary, err := s.Unbundle(ctx, bundleDir)
		require.NoError(t, err)

		require.Len(t, summary.Failures, 1)
		assert.Equal(t, bundled, summary.Failures[0].Path)
		assert.FileExists(t, bundled)
		assert.FileExists(t, BacklinkPath(bundled), "backlink must survive a failed restore")
		assert.DirExists(t, bundleDir)

		// Repair the backlink; the retry must drain the subtree.
		target := filepath.Join(t.TempDir(), "app.conf")
		require.NoError(t, os.Remove(BacklinkPath(bundled)))
		require.NoError(t, os.Symlink(target, BacklinkPath(bundled)))

		summary, err = s.Unbundle(ctx, bundleDir)
		require.NoError(t, err)
		assert.Empty(t, summary.Failures)
		assert.Equal(t, []string{target}, summary.Restored)
		assert.Equal(t, "dummy content", readFile(t, target))
		assert.NoDirExists(t, bundleDir)
	})

	t.Run("partial failure retains ancestors of the failed entry", func(t *testing.T) {
		t.Parallel()
		s := testStore(t)

		goodDir := filepath.Join(s.Repo().Root(), "good")
		badDir := filepath.Join(s.Repo().Root(), "bad", "nested")
		require.NoError(t, os.MkdirAll(goodDir, 0755))
		require.NoError(t, os.MkdirAll(badDir, 0755))

		goodTarget := testTarget(t, "good content")
		goodBundled, err := s.Bundle(goodTarget, goodDir)
		require.NoError(t, err)

		badTarget := testTarget(t, "bad content")
		badBundled, err := s.Bundle(badTarget, badDir)
		require.NoError(t, err)
		// Orphan the nested bundle so its restore fails.
		require.NoError(t, os.Remove(BacklinkPath(badBundled)))

		summary, err := s.Unbundle(ctx, s.Repo().Root())
		require.NoError(t, err)

		assert.Equal(t, []string{goodTarget}, summary.Restored)
		require.Len(t, summary.Failures, 1)
		assert.Equal(t, badBundled, summary.Failures[0].Path)

		// The good subtree is gone, the failed one fully retained.
		assert.NoDirExists(t, goodDir)
		assert.NoFileExists(t, goodBundled)
		assert.FileExists(t, badBundled)
		assert.DirExists(t, badDir)
		assert.DirExists(t, filepath.Join(s.Repo().Root(), "bad"))

		// The repository root itself is never a deletion candidate.
		assert.DirExists(t, s.Repo().Root())
	})

	t.Run("ignored entries are left alone", func(t *testing.T) {
		t.Parallel()
		s, bundleDir, _, _ := sweepFixture(t)
		gitDir := filepath.Join(s.Repo().Root(), ".git")
		require.NoError(t, os.MkdirAll(gitDir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(gitDir, "HEAD"), []byte("ref"), 0644))

		summary, err := s.Unbundle(ctx, s.Repo().Root())
		require.NoError(t, err)

		assert.Empty(t, summary.Failures)
		assert.DirExists(t, gitDir)
		assert.NoDirExists(t, bundleDir)
	})

	t.Run("rejects directories outside the repository", func(t *testing.T) {
		t.Parallel()
		s := testStore(t)
		_, err := s.Unbundle(ctx, t.TempDir())
		assert.Error(t, err)
	})

	t.Run("rejects a file argument", func(t *testing.T) {
		t.Parallel()
		s, _, bundled, _ := sweepFixture(t)
		_, err := s.Unbundle(ctx, bundled)
		assert.ErrorIs(t, err, common.ErrNotDir)
	})
}

func TestPlanUnbundle(t *testing.T) {
	t.Parallel()

	t.Run("plans restore and deletion without mutating", func(t *testing.T) {
		t.Parallel()
		s, bundleDir, bundled, target := sweepFixture(t)

		plan, err := s.PlanUnbundle(bundleDir)
		require.NoError(t, err)

		assert.Equal(t, []string{target}, plan.Restored)
		assert.Empty(t, plan.Failures)
		assert.Equal(t, []string{bundled, BacklinkPath(bundled), bundleDir}, plan.Deleted)

		assert.FileExists(t, bundled)
		assert.FileExists(t, BacklinkPath(bundled))
		info, err := os.Lstat(target)
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&os.ModeSymlink, "target symlink must be untouched")
	})

	t.Run("reports orphaned entries as failures", func(t *testing.T) {
		t.Parallel()
		s, bundleDir, bundled, _ := sweepFixture(t)
		require.NoError(t, os.Remove(BacklinkPath(bundled)))

		plan, err := s.PlanUnbundle(bundleDir)
		require.NoError(t, err)

		require.Len(t, plan.Failures, 1)
		assert.ErrorIs(t, plan.Failures[0].Err, common.ErrNoBacklink)
		assert.Empty(t, plan.Deleted)
		assert.FileExists(t, bundled)
	})
}

func TestCount(t *testing.T) {
	t.Parallel()

	s, bundleDir, _, _ := sweepFixture(t)
	require.NoError(t, os.MkdirAll(filepath.Join(s.Repo().Root(), ".git"), 0755))

	files, dirs, err := s.Count()
	require.NoError(t, err)
	// bundle_dir + bundled file + backlink; .git is ignored.
	assert.Equal(t, 2, files)
	assert.Equal(t, 1, dirs)
	assert.DirExists(t, bundleDir)
}
