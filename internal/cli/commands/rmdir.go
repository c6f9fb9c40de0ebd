package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rmdirForce bool

var rmdirCmd = &cobra.Command{
	Use:   "rmdir <bundle-dir>",
	Short: "Delete a bundle directory",
	Long: `Delete <bundle-dir> and everything beneath it. A non-empty directory
requires confirmation unless --force is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runRmdir,
}

func init() {
	rmdirCmd.Flags().BoolVarP(&rmdirForce, "force", "f", false, "delete non-empty directories without asking")
	rootCmd.AddCommand(rmdirCmd)
}

func runRmdir(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	dir, err := s.Repo().BundleDir(args[0])
	if err != nil {
		return err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%s does not exist", s.Repo().DisplayName(dir))
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.Repo().DisplayName(dir))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(entries) > 0 && !rmdirForce {
		if !confirm(fmt.Sprintf("%s is not empty. Delete anyway?", s.Repo().DisplayName(dir))) {
			return errAborted
		}
	}

	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", s.Repo().DisplayName(dir))
	return nil
}
