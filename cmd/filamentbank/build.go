package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/filabank/filabank/bank"
	"github.com/filabank/filabank/partomatic"
	"github.com/filabank/filabank/parts"
	"github.com/spf13/cobra"
)

var partNames []string

var buildCmd = &cobra.Command{
	Use:   "build config...",
	Short: "Build the parts of one or more banks",
	Long: `Loads and validates each config file and writes every part as STL
into <out>/<config name>/. Use --part to build a subset, for example:

  filamentbank build bank.yaml --part wheel --part bearing

Available parts: ` + strings.Join(parts.Names(), ", "),
	Args: cobra.MinimumNArgs(1),
	RunE: runBuild,
}

var previewCmd = &cobra.Command{
	Use:   "preview config",
	Short: "Build the parts of a bank with PNG previews",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func runBuild(cmd *cobra.Command, args []string) error {
	return build(cmdContext(cmd), cmd.OutOrStdout(), nil, args...)
}

func runPreview(cmd *cobra.Command, args []string) error {
	preview := true
	return build(cmdContext(cmd), cmd.OutOrStdout(), &preview, args...)
}

func buildOptions(preview *bool) partomatic.Options {
	return partomatic.Options{
		OutputDir:   outDir,
		Resolution:  resolution,
		Preview:     preview,
		Concurrency: jobs,
	}
}

func catalog(cfg *bank.Config) []partomatic.Part {
	if len(partNames) == 0 {
		return parts.All(cfg)
	}
	// Names were checked by build.
	selected, _ := parts.Select(cfg, partNames...)
	return selected
}

func build(ctx context.Context, w io.Writer, preview *bool, paths ...string) error {
	if _, err := parts.Select(bank.DefaultConfig(), partNames...); err != nil {
		return err
	}
	start := time.Now()
	results, err := partomatic.BuildConfigs(ctx, getLogger(), buildOptions(preview), catalog, paths...)
	if err != nil {
		return err
	}
	printResults(w, results)
	fmt.Fprintf(w, "built %d parts in %s\n", len(results), time.Since(start).Round(time.Millisecond))
	return nil
}

func printResults(w io.Writer, results []partomatic.Result) {
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		rows = append(rows, []string{
			filepath.ToSlash(res.STLPath),
			humanize.Comma(int64(res.Triangles)),
			humanize.Bytes(uint64(res.Size)),
			res.Elapsed.Round(time.Millisecond).String(),
		})
	}
	fmt.Fprint(w, newTable([]string{"file", "triangles", "size", "elapsed"}, rows))
}
