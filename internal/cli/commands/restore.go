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

	"github.com/spf13/cobra"
)

var (
	restoreAsLink    bool
	restoreOverwrite bool
	restoreRemove    bool
)

var restoreCmd = &cobra.Command{
	Use:   "restore <bundle-file>",
	Short: "Restore a bundled file to the location recorded in its backlink",
	Long: `Copy <bundle-file> back to the target location recorded in its
backlink. With --as-link a symlink to the bundled file is created
instead of a copy. With --remove the bundled file and its backlink are
deleted after a successful restore.

Examples:
  cbundle restore fish/config.fish
  cbundle restore fish/config.fish --as-link
  cbundle restore fish/config.fish --remove`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().BoolVar(&restoreAsLink, "as-link", false, "restore a link to the bundled file instead of a copy")
	restoreCmd.Flags().BoolVar(&restoreOverwrite, "overwrite", true, "overwrite an existing target file")
	restoreCmd.Flags().BoolVar(&restoreRemove, "remove", false, "delete the bundled file and backlink after restoring")
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	bundled, err := s.Repo().BundleFile(args[0])
	if err != nil {
		return err
	}
	if _, err := os.Lstat(bundled); err != nil {
		return fmt.Errorf("%s does not exist", s.Repo().DisplayName(bundled))
	}

	var target string
	if restoreAsLink {
		if target, err = s.RestoreAsLink(bundled, restoreOverwrite); err != nil {
			return err
		}
		fmt.Printf("%s now links to %s\n", target, s.Repo().DisplayName(bundled))
	} else {
		if target, err = s.RestoreAsCopy(bundled, restoreOverwrite); err != nil {
			return err
		}
		fmt.Printf("Restored %s\n", target)
	}

	if restoreRemove {
		if err := s.RemoveBundleAndBacklink(bundled); err != nil {
			return err
		}
		fmt.Printf("Removed %s and its backlink\n", s.Repo().DisplayName(bundled))
	}
	return nil
}
