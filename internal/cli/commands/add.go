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

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <file> [bundle-dir]",
	Short: "Bundle a file, replacing it with a link to the bundled copy",
	Long: `Move <file> into the repository and replace it with a symlink to the
bundled copy. A backlink next to the bundled file records the original
location.

[bundle-dir] is a path relative to the repository root and is created
on demand. Without it the file is bundled at the root.

Examples:
  cbundle add ~/.gitconfig
  cbundle add ~/.config/fish/config.fish fish`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	file, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	info, err := os.Lstat(file)
	if err != nil {
		return fmt.Errorf("%s does not exist", args[0])
	}
	if info.Mode()&os.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(file); err == nil && s.Repo().Contains(resolved) {
			return fmt.Errorf("file is already bundled in %s", s.Repo().DisplayName(resolved))
		}
	}

	dir := s.Repo().Root()
	if len(args) == 2 {
		if dir, err = s.Repo().BundleDir(args[1]); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	bundled, err := s.Bundle(file, dir)
	if err != nil {
		return err
	}
	fmt.Printf("Bundled %s as %s\n", args[0], s.Repo().DisplayName(bundled))
	return nil
}
