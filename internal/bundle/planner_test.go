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
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okResult(p string) Result[string] {
	return Result[string]{Path: p}
}

func failResult(p string) Result[string] {
	return Result[string]{Path: p, Err: errors.New("restore failed")}
}

func TestRemovable(t *testing.T) {
	t.Parallel()

	t.Run("blocks every strict ancestor of a failure", func(t *testing.T) {
		t.Parallel()
		results := []Result[string]{
			okResult("/c/subdir/file"),
			okResult("/c/subdir"),
			okResult("/c/whatadir"),
			okResult("/c/whatadir/sub"),
			failResult("/c/whatadir/sub/bad"),
		}
		assert.Equal(t,
			[]string{"/c/subdir/file", "/c/subdir"},
			Removable(results))
	})

	t.Run("multi level tree with several failures", func(t *testing.T) {
		t.Parallel()
		results := []Result[string]{
			okResult("/home/user/config/subdir/file"),
			okResult("/home/user/config/subdir/file.link"),
			okResult("/home/user/config/subdir"),
			okResult("/home/user/config/whatadir"),
			okResult("/home/user/config/whatadir/andasubdir"),
			// Blocks the two directories above:
			failResult("/home/user/config/whatadir/andasubdir/failed.man"),
			okResult("/home/user/config/anotherdir/"),
			okResult("/home/user/config/anotherdir/file"),
			okResult("/home/user/config/anotherdir/subdir/file"),
			okResult("/home/user/config/anotherdir/subdir/secondsubdirfile"),
			// Blocks anotherdir, but not its surviving files:
			failResult("/home/user/config/anotherdir/file.broken.link"),
			okResult("/home/user/config/deletethisdir"),
			okResult("/home/user/config/deletethisdir/andthisfile"),
			// Blocks no candidate:
			failResult("/home/user/config/top-level-file-which-fails"),
		}

		want := []string{
			"/home/user/config/anotherdir/subdir/file",
			"/home/user/config/anotherdir/subdir/secondsubdirfile",
			"/home/user/config/subdir/file",
			"/home/user/config/subdir/file.link",
			"/home/user/config/anotherdir/file",
			"/home/user/config/deletethisdir/andthisfile",
			"/home/user/config/subdir",
			"/home/user/config/deletethisdir",
		}
		assert.Equal(t, want, Removable(results))
	})

	t.Run("failed bundle pins its backlink", func(t *testing.T) {
		t.Parallel()
		results := []Result[string]{
			failResult("/r/dir/app.conf"),
			okResult("/r/dir/app.conf.link"),
			okResult("/r/dir/other"),
			okResult("/r/dir/other.link"),
			okResult("/r/dir"),
		}
		assert.Equal(t,
			[]string{"/r/dir/other", "/r/dir/other.link"},
			Removable(results))
	})

	t.Run("no failures keeps everything, deepest first", func(t *testing.T) {
		t.Parallel()
		results := []Result[string]{
			okResult("/r/dir"),
			okResult("/r/dir/file"),
			okResult("/r/dir/file.link"),
		}
		assert.Equal(t,
			[]string{"/r/dir/file", "/r/dir/file.link", "/r/dir"},
			Removable(results))
	})

	t.Run("all failures removes nothing", func(t *testing.T) {
		t.Parallel()
		results := []Result[string]{
			failResult("/r/dir/file"),
			failResult("/r/other"),
		}
		assert.Empty(t, Removable(results))
	})

	t.Run("never returns an ancestor of any failure", func(t *testing.T) {
		t.Parallel()
		results := []Result[string]{
			okResult("/a"),
			okResult("/a/b"),
			okResult("/a/b/c"),
			okResult("/a/x"),
			failResult("/a/b/c/d/e"),
		}
		removable := Removable(results)
		assert.Equal(t, []string{"/a/x"}, removable)
		for _, p := range removable {
			assert.False(t, strings.HasPrefix("/a/b/c/d/e", p+"/"),
				"%s is an ancestor of the failed path", p)
		}
	})
}
