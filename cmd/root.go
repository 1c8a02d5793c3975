package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/JPM1118/sheetcut/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	outDir  string
	limit   int

	cfg = config.Defaults()
)

var rootCmd = &cobra.Command{
	Use:   "sheetcut [image]",
	Short: "Slice a sprite sheet into numbered icon PNGs",
	Long: `sheetcut cuts one composite sprite sheet into individual sprites,
written as pokeball_01.png, pokeball_02.png, ... in an output directory.

Without a subcommand it runs the smart extractor. When no image is given,
the first existing file from the configured candidate names is used.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runSmart,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/sheetcut/config.yml)")
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "", "output directory (overrides config)")
	rootCmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of sprites to save (overrides config)")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if cfgPath == "" {
		cfg, err = config.Load()
		return err
	}
	if _, err := os.Stat(cfgPath); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg, err = config.LoadFrom(cfgPath)
	return err
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
