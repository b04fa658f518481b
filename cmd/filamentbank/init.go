package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/filabank/filabank/bank"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultConfigPath = "filabank.yaml"

var force bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default config file",
	Long: `Writes the default bank configuration to path (default ` + defaultConfigPath + `).
The format follows the extension: .yaml, .yml or .toml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := defaultConfigPath
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}
	cfg := bank.DefaultConfig()
	cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := cfg.Save(path); err != nil {
		return err
	}
	getLogger().Info("wrote config", zap.String("path", path), zap.String("name", cfg.Name))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
