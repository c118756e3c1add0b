package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ingStudiosOfficial/Lunite/internal/errors"
	"github.com/ingStudiosOfficial/Lunite/pkg/lunite"
)

const buildDir = ".lunite-build"

var buildOutput string

var buildCmd = &cobra.Command{
	Use:   "build [file]",
	Short: "Compile a Lunite script to a native executable",
	Long: `Generate a small Go program that embeds the script's source and links
against this module's evaluator, then shell out to "go build" to produce a
native executable (the "external packager" spec.md describes for anything
beyond the tree-walking core).`,
	Args: cobra.MaximumNArgs(1),
	RunE: buildScript,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output binary name")
}

func buildScript(_ *cobra.Command, args []string) error {
	cfg, err := loadProjectConfig()
	if err != nil {
		return fmt.Errorf("reading lunite.yaml: %w", err)
	}

	filename := cfg.Entry
	if len(args) == 1 {
		filename = args[0]
	}
	if filename == "" {
		return fmt.Errorf("either provide a file path or set `entry` in lunite.yaml")
	}

	output := buildOutput
	if output == "" {
		output = cfg.Output
	}
	if output == "" {
		output = trimExt(filepath.Base(filename))
	}

	src, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if _, perrs := lunite.Parse(string(src), filename); len(perrs) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatAll(perrs, string(src), true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("parsing failed with %d error(s)", len(perrs))
	}

	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return fmt.Errorf("creating build directory: %w", err)
	}

	mainSrc := generateMain(string(src), filename)
	mainPath := filepath.Join(buildDir, "main.go")
	if err := os.WriteFile(mainPath, []byte(mainSrc), 0o644); err != nil {
		return fmt.Errorf("writing generated driver: %w", err)
	}

	goBuild := exec.Command("go", "build", "-o", filepath.Join("..", output), ".")
	goBuild.Dir = buildDir
	goBuild.Stdout = os.Stdout
	goBuild.Stderr = os.Stderr
	if err := goBuild.Run(); err != nil {
		return fmt.Errorf("go build failed: %w", err)
	}

	fmt.Printf("built %s\n", output)
	return nil
}

func trimExt(name string) string {
	ext := filepath.Ext(name)
	return name[:len(name)-len(ext)]
}

// generateMain renders a standalone Go program that embeds the script text
// as a Go string literal and runs it through pkg/lunite — the "compiled"
// form a Lunite script takes once `go build` links it into a binary.
func generateMain(src, filename string) string {
	return fmt.Sprintf(`package main

import (
	"fmt"
	"os"

	"github.com/ingStudiosOfficial/Lunite/pkg/lunite"
)

const embeddedSource = %q
const embeddedFile = %q

func main() {
	interp := lunite.NewStdout()
	if err := interp.RunSource(embeddedSource, embeddedFile); err != nil {
		fmt.Fprintln(os.Stderr, "Runtime error:", err.Error())
		os.Exit(1)
	}
}
`, src, filename)
}
