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

	"github.com/spf13/cobra"
)

var unbundleCmd = &cobra.Command{
	Use:   "unbundle [bundle-dir]",
	Short: "Restore every bundled file beneath a directory and clean up",
	Long: `Restore every bundled file beneath [bundle-dir] to its backlinked
target, overwriting the target links, then delete the repository
entries that restored cleanly. Entries that failed to restore, and
the directories above them, are kept so the operation can be retried
without losing data.

Without an argument the whole repository is unbundled after
confirmation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUnbundle,
}

var unbundleDryRun bool

func init() {
	unbundleCmd.Flags().BoolVarP(&unbundleDryRun, "dry-run", "n", false,
		"show what would be restored and deleted without changing anything")
	rootCmd.AddCommand(unbundleCmd)
}

func runUnbundle(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	dir := s.Repo().Root()
	if len(args) == 1 {
		if dir, err = s.Repo().BundleDir(args[0]); err != nil {
			return err
		}
	} else if !unbundleDryRun && !confirm("Are you sure you want to unbundle the whole repository?") {
		return errAborted
	}

	if unbundleDryRun {
		plan, err := s.PlanUnbundle(dir)
		if err != nil {
			return err
		}
		for _, target := range plan.Restored {
			fmt.Printf("Would restore %s\n", target)
		}
		for _, p := range plan.Deleted {
			fmt.Printf("Would delete %s\n", s.Repo().DisplayName(p))
		}
		for _, f := range plan.Failures {
			fmt.Printf("Would skip %s: %v\n", s.Repo().DisplayName(f.Path), f.Err)
		}
		return nil
	}

	summary, err := s.Unbundle(cmd.Context(), dir)
	if err != nil {
		return err
	}

	for _, target := range summary.Restored {
		fmt.Printf("Restored %s\n", target)
	}
	for _, f := range summary.Failures {
		fmt.Printf("Skipping %s: %v\n", s.Repo().DisplayName(f.Path), f.Err)
	}
	fmt.Printf("Restored %d files, deleted %d repository entries\n",
		len(summary.Restored), len(summary.Deleted))
	if len(summary.Failures) > 0 {
		fmt.Printf("%d entries could not be restored and were kept\n", len(summary.Failures))
	}
	return nil
}
