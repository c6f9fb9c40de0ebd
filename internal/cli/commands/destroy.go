package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var destroyCmd = &cobra.Command{
	Use:   "destroy",
	Short: "Delete the whole repository",
	RunE:  runDestroy,
}

func init() {
	rootCmd.AddCommand(destroyCmd)
}

func runDestroy(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	files, dirs, err := s.Count()
	if err != nil {
		return err
	}
	if files+dirs == 0 {
		fmt.Println("Repository is empty")
		return nil
	}

	question := fmt.Sprintf("Deleting the repository would delete %d files and %d directories. Proceed?", files, dirs)
	if !confirm(question) {
		return errAborted
	}

	if err := os.RemoveAll(s.Repo().Root()); err != nil {
		return err
	}
	fmt.Println("Repository deleted")
	return nil
}
