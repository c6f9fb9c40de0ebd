package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"configbundle/internal/repo"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show resolved configuration and repository paths",
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", repo.ConfigDir())
	fmt.Printf("Settings file:    %s\n", repo.SettingsPath())
	fmt.Printf("Repository root:  %s\n", s.Repo().Root())
	if settings != nil {
		fmt.Printf("Log level:        %s\n", settings.LogLevel)
		fmt.Printf("Ignores:          %s\n", strings.Join(settings.Ignores, ", "))
	}
	return nil
}
