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

	"configbundle/internal/common"
)

var rmForce bool

var rmCmd = &cobra.Command{
	Use:   "rm <bundle-file>",
	Short: "Delete a bundled file and its backlink",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func init() {
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "do not ask for confirmation")
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
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

	if !rmForce {
		question := fmt.Sprintf("Delete bundled file %s", s.Repo().DisplayName(bundled))
		if target, err := s.AssociatedTarget(bundled); err == nil {
			question += " and its backlink?"
			// Deleting the bundle breaks a target link that still resolves.
			if _, statErr := os.Stat(target); statErr == nil {
				question += fmt.Sprintf(" This will break the link stored in %s", common.AbbreviateHome(target))
			}
		} else {
			question += "?"
		}
		if !confirm(question) {
			return errAborted
		}
	}

	if err := s.RemoveBundleAndBacklink(bundled); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", s.Repo().DisplayName(bundled))
	return nil
}
