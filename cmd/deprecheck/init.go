package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const starterConfig = `# deprecheck configuration
# Paths are relative to this file.

[artifacts]
issues = "artifacts/issues.json"
console = "artifacts/console.json"
# bundles = "artifacts/bundles.json"

[output]
format = "pretty" # pretty|json|short|sarif
urls = "auto"     # auto|full|path|basename
max = 0           # 0 - print every finding

[trace]
level = "off"     # off|error|phase|detail|debug
mode = "stream"   # stream|ring|both
`

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter " + configFileName,
		Long: `Writes a starter ` + configFileName + ` into [dir] (the current directory when
omitted). The directory is created if needed; an existing config is never
overwritten.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	path, err := writeStarterConfig(target)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	}
	return nil
}

func writeStarterConfig(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", dir, err)
	}
	if st, err := os.Stat(abs); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory %q: %w", abs, err)
		}
	} else if !st.IsDir() {
		return "", fmt.Errorf("%q is not a directory", abs)
	}

	path := filepath.Join(abs, configFileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("already initialized: %s exists", path)
		}
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := f.WriteString(starterConfig); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
