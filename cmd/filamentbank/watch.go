package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/filabank/filabank/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch config",
	Short: "Rebuild a bank whenever its config changes",
	Long: `Builds the bank once, then rebuilds it every time the config file is
saved. Failed builds are logged and the watch continues. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchConfig(ctx, cmd, args[0])
}

// watchConfig rebuilds path on every change until ctx is done.
func watchConfig(ctx context.Context, cmd *cobra.Command, path string) error {
	log := getLogger()
	rebuild := func(ctx context.Context) error {
		return build(ctx, cmd.OutOrStdout(), nil, path)
	}
	if err := rebuild(ctx); err != nil {
		log.Error("build failed", zap.Error(err))
	}
	w, err := watch.New(path, watch.DefaultDebounce, rebuild, log)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	log.Info("stopping watch")
	w.Stop()
	return nil
}
