package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"catalog/loader/internal/config"
	"catalog/loader/internal/logging"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configFile string
	cfg        *config.Config
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Errorf("❌ %v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "catalog-loader",
		Short:         "Reconcile a product spreadsheet with a Saleor catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configFile)
			if err != nil {
				return err
			}
			cfg = loaded
			logging.Setup(cfg.Log.Level, cfg.Log.Format)
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default ./config.yaml)")

	root.AddCommand(
		newImportCmd(),
		newPurgeCmd(),
		newCategoryCmd(),
		newProductCmd(),
		newFailuresCmd(),
		newHistoryCmd(),
	)
	return root
}
