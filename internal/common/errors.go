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

package common

import "errors"

var (
	ErrAlreadyBundled = errors.New("file is already bundled")
	ErrSymlinkTarget  = errors.New("cannot bundle a symlink")
	ErrNoBacklink     = errors.New("no backlink")
	ErrNoBundle       = errors.New("backlink has no bundled file")
	ErrTargetExists   = errors.New("target file already exists")
	ErrNotDir         = errors.New("not a directory")
	ErrEmptySpec      = errors.New("bundle specification cannot be empty")
	ErrNotFileSpec    = errors.New("bundle path must be a file specification")
)
