package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"configbundle/internal/tree"
)

var lsCmd = &cobra.Command{
	Use:   "ls [bundle-dir]",
	Short: "Display the contents of a bundle directory",
	Long: `Display the contents of [bundle-dir] as a tree. Without an argument
the repository root is listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	dir := s.Repo().Root()
	if len(args) == 1 {
		if dir, err = s.Repo().BundleDir(args[0]); err != nil {
			return err
		}
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%s does not exist", s.Repo().DisplayName(dir))
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.Repo().DisplayName(dir))
	}

	n, err := tree.Build(dir, s.Repo().Ignored)
	if err != nil {
		return err
	}
	tree.Fprint(os.Stdout, n)
	return nil
}
