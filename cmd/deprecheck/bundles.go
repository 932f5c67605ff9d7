package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"deprecheck/internal/bundle"
)

func newBundlesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundles",
		Short: "Inspect and convert bundle artifacts",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "pack <bundles.json> [out.mp]",
		Short: "Convert a JSON bundles artifact to msgpack",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runBundlesPack,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "stat <bundles.json|bundles.mp>",
		Short: "Summarize a bundles artifact",
		Args:  cobra.ExactArgs(1),
		RunE:  runBundlesStat,
	})
	return cmd
}

func runBundlesPack(cmd *cobra.Command, args []string) error {
	in := args[0]
	out := strings.TrimSuffix(in, filepath.Ext(in)) + ".mp"
	if len(args) == 2 {
		out = args[1]
	}
	n, err := packBundles(in, out)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "packed %d bundles into %s\n", n, out)
	return nil
}

func packBundles(in, out string) (int, error) {
	data, err := os.ReadFile(in)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", in, err)
	}
	records, err := bundle.DecodeJSON(bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", in, err)
	}
	var buf bytes.Buffer
	if err := bundle.EncodeMsgpack(&buf, records); err != nil {
		return 0, fmt.Errorf("failed to encode bundles: %w", err)
	}
	tmp := out + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", out, err)
	}
	if err := os.Rename(tmp, out); err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("failed to write %s: %w", out, err)
	}
	return len(records), nil
}

func runBundlesStat(cmd *cobra.Command, args []string) error {
	provider := &bundle.FileProvider{Path: args[0]}
	bundles, err := provider.Bundles(cmd.Context())
	if err != nil {
		return err
	}
	idx := bundle.NewIndex(bundles)
	mapped := 0
	for i := range bundles {
		if bundles[i].HasMap() {
			mapped++
		}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "bundles:    %d\n", len(bundles))
	fmt.Fprintf(out, "indexed:    %d\n", idx.Len())
	fmt.Fprintf(out, "with map:   %d\n", mapped)
	if skipped := idx.Records() - idx.Len(); skipped > 0 {
		fmt.Fprintf(out, "skipped:    %d (duplicate or missing script id)\n", skipped)
	}
	return nil
}
