package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated build artifacts",
	Long:  `Remove the directory generated by "lunite build".`,
	RunE:  cleanBuild,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func cleanBuild(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(buildDir); os.IsNotExist(err) {
		fmt.Println("nothing to clean")
		return nil
	}
	if err := os.RemoveAll(buildDir); err != nil {
		return fmt.Errorf("removing %s: %w", buildDir, err)
	}
	fmt.Printf("removed %s\n", buildDir)
	return nil
}
