package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"configbundle/internal/bundle"
)

var copyCmd = &cobra.Command{
	Use:   "copy <bundle-file> <target>",
	Short: "Copy a bundled file to an arbitrary destination",
	Long: `Copy <bundle-file> out of the repository to <target>, without touching
the backlink. A directory target receives the file under its bundled
name. An existing target requires confirmation.`,
	Args: cobra.ExactArgs(2),
	RunE: runCopy,
}

func init() {
	rootCmd.AddCommand(copyCmd)
}

func runCopy(cmd *cobra.Command, args []string) error {
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

	// A directory target receives the file under its bundled name, so
	// the overwrite check must look at the resolved destination.
	target := args[1]
	resolved := bundle.CopyDest(bundled, target)
	if info, err := os.Stat(resolved); err == nil && !info.IsDir() {
		if !confirm(fmt.Sprintf("File %s already exists, overwrite?", resolved)) {
			return errAborted
		}
	}

	dest, err := s.CopyOut(bundled, target)
	if err != nil {
		return err
	}
	fmt.Printf("Copied %s to %s\n", s.Repo().DisplayName(bundled), dest)
	return nil
}
