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

// Package repo resolves the bundle repository root and validates the
// bundle path specifications users pass on the command line.
package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	log "github.com/sirupsen/logrus"

	"configbundle/internal/common"
)

// Repository is the root directory of the managed store. All bundle
// paths are descendants of it.
type Repository struct {
	root    string
	ignores *ignore.GitIgnore
}

// Open resolves the repository root from settings, creating it on first
// use. Fails if the root exists but is not a directory.
func Open(s *Settings) (*Repository, error) {
	root := s.Repository
	if root == "" {
		root = filepath.Join(ConfigDir(), "repo")
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(root, 0700); err != nil {
			return nil, fmt.Errorf("failed to create repository: %w", err)
		}
		log.Debugf("[repo] created repository root %s", root)
	case err != nil:
		return nil, err
	case !info.IsDir():
		return nil, fmt.Errorf("%s: %w", root, common.ErrNotDir)
	}
	return &Repository{
		root:    root,
		ignores: ignore.CompileIgnoreLines(s.Ignores...),
	}, nil
}

// Root returns the absolute repository root path.
func (r *Repository) Root() string {
	return r.root
}

// Ignored reports whether a repository entry is excluded from sweeps,
// counts and listings. Paths outside the repository are never ignored.
func (r *Repository) Ignored(path string) bool {
	rel, err := filepath.Rel(r.root, path)
	if err != nil || strings.HasPrefix(rel, "..") || rel == "." {
		return false
	}
	return r.ignores.MatchesPath(rel)
}

// Contains reports whether path lies inside the repository.
func (r *Repository) Contains(path string) bool {
	rel, err := filepath.Rel(r.root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, "../")
}

// BundleFile resolves a user-supplied file spec to an absolute path
// inside the repository.
func (r *Repository) BundleFile(spec string) (string, error) {
	rel, err := ParseFileSpec(spec)
	if err != nil {
		return "", err
	}
	return filepath.Join(r.root, rel), nil
}

// BundleDir resolves a user-supplied directory spec to an absolute path
// inside the repository.
func (r *Repository) BundleDir(spec string) (string, error) {
	rel, err := ParseDirSpec(spec)
	if err != nil {
		return "", err
	}
	return filepath.Join(r.root, rel), nil
}

// DisplayName renders path for user-facing messages: repository entries
// as "bundle path <rel>", everything else home-abbreviated.
func (r *Repository) DisplayName(path string) string {
	if rel, err := filepath.Rel(r.root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return "bundle path " + rel
	}
	return common.AbbreviateHome(path)
}

var multiSlash = regexp.MustCompile(`/{2,}`)

// sanitizeSpec collapses duplicate slashes and strips the leading
// slash. Empty or whitespace-only specs are rejected. A trailing
// slash, if present, is preserved for the caller to inspect.
func sanitizeSpec(spec string) (string, error) {
	spec = multiSlash.ReplaceAllString(spec, "/")
	spec = strings.TrimPrefix(spec, "/")
	if strings.TrimSpace(spec) == "" {
		return "", common.ErrEmptySpec
	}
	return spec, nil
}

// ParseFileSpec validates a bundle file spec. A trailing slash is an
// error, since it denotes a directory.
func ParseFileSpec(spec string) (string, error) {
	s, err := sanitizeSpec(spec)
	if err != nil {
		return "", err
	}
	if strings.HasSuffix(s, "/") {
		return "", fmt.Errorf("%q: %w", spec, common.ErrNotFileSpec)
	}
	return s, nil
}

// ParseDirSpec validates a bundle directory spec.
func ParseDirSpec(spec string) (string, error) {
	s, err := sanitizeSpec(spec)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(s, "/"), nil
}
