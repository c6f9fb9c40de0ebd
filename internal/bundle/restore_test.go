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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"configbundle/internal/common"
)

// bundledFixture bundles a fresh target and returns the store, the
// bundled file and the original target path.
func bundledFixture(t *testing.T) (*Store, string, string) {
	t.Helper()
	s := testStore(t)
	target := testTarget(t, "dummy content\ntwo lines")
	bundled, err := s.Bundle(target, s.Repo().Root())
	require.NoError(t, err)
	return s, bundled, target
}

func TestRestoreAsCopy(t *testing.T) {
	t.Parallel()

	t.Run("overwrites the target symlink with a copy", func(t *testing.T) {
		t.Parallel()
		s, bundled, target := bundledFixture(t)

		got, err := s.RestoreAsCopy(bundled, true)
		require.NoError(t, err)
		assert.Equal(t, target, got)

		info, err := os.Lstat(target)
		require.NoError(t, err)
		assert.Zero(t, info.Mode()&os.ModeSymlink, "restored target must not be a symlink")
		assert.Equal(t, readFile(t, bundled), readFile(t, target))

		// The bundled file survives a restore.
		assert.FileExists(t, bundled)
		assert.FileExists(t, BacklinkPath(bundled))
	})

	t.Run("refuses existing target without overwrite", func(t *testing.T) {
		t.Parallel()
		s, bundled, _ := bundledFixture(t)

		_, err := s.RestoreAsCopy(bundled, false)
		assert.ErrorIs(t, err, common.ErrTargetExists)
	})

	t.Run("idempotent with overwrite", func(t *testing.T) {
		t.Parallel()
		s, bundled, target := bundledFixture(t)

		_, err := s.RestoreAsCopy(bundled, true)
		require.NoError(t, err)
		first := readFile(t, target)

		_, err = s.RestoreAsCopy(bundled, true)
		require.NoError(t, err)
		assert.Equal(t, first, readFile(t, target))
	})

	t.Run("missing target is not an overwrite conflict", func(t *testing.T) {
		t.Parallel()
		s, bundled, target := bundledFixture(t)
		require.NoError(t, os.Remove(target))

		got, err := s.RestoreAsCopy(bundled, false)
		require.NoError(t, err)
		assert.Equal(t, target, got)
		assert.FileExists(t, target)
	})

	t.Run("orphaned bundle", func(t *testing.T) {
		t.Parallel()
		s, bundled, _ := bundledFixture(t)
		require.NoError(t, os.Remove(BacklinkPath(bundled)))

		_, err := s.RestoreAsCopy(bundled, true)
		assert.ErrorIs(t, err, common.ErrNoBacklink)
	})
}

func TestRestoreAsLink(t *testing.T) {
	t.Parallel()

	t.Run("replaces a regular file with a link", func(t *testing.T) {
		t.Parallel()
		s, bundled, target := bundledFixture(t)

		// Put a regular file where the target symlink was.
		require.NoError(t, os.Remove(target))
		require.NoError(t, os.WriteFile(target, []byte("stale"), 0644))

		got, err := s.RestoreAsLink(bundled, true)
		require.NoError(t, err)
		assert.Equal(t, target, got)

		info, err := os.Lstat(target)
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&os.ModeSymlink)
		resolved, err := filepath.EvalSymlinks(target)
		require.NoError(t, err)
		wantResolved, err := filepath.EvalSymlinks(bundled)
		require.NoError(t, err)
		assert.Equal(t, wantResolved, resolved)
	})

	t.Run("refuses existing target without overwrite", func(t *testing.T) {
		t.Parallel()
		s, bundled, target := bundledFixture(t)
		require.NoError(t, os.Remove(target))
		require.NoError(t, os.WriteFile(target, []byte("stale"), 0644))

		_, err := s.RestoreAsLink(bundled, false)
		assert.ErrorIs(t, err, common.ErrTargetExists)
		assert.Equal(t, "stale", readFile(t, target))
	})

	t.Run("orphaned bundle", func(t *testing.T) {
		t.Parallel()
		s, bundled, _ := bundledFixture(t)
		require.NoError(t, os.Remove(BacklinkPath(bundled)))

		_, err := s.RestoreAsLink(bundled, true)
		assert.ErrorIs(t, err, common.ErrNoBacklink)
	})
}

func TestBundleRestoreRoundTrip(t *testing.T) {
	t.Parallel()

	s := testStore(t)
	target := testTarget(t, "round trip content")
	before := readFile(t, target)

	bundled, err := s.Bundle(target, s.Repo().Root())
	require.NoError(t, err)

	got, err := s.RestoreAsCopy(bundled, true)
	require.NoError(t, err)
	assert.Equal(t, target, got)
	assert.Equal(t, before, readFile(t, target))
}
