package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/multivar/internal/cli"
	"github.com/aretw0/multivar/internal/config"
	"github.com/aretw0/multivar/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "multivar",
	Short: "Numerical multivariable calculus from the command line",
	Long: `multivar evaluates expressions in x, y and z and approximates partial derivatives,
gradients, limits, conservative fields, critical points, surfaces, contours and
Lagrange conditions by finite differences.

Every operation is also served over HTTP (serve) and as MCP tools (mcp).`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it until SIGINT or SIGTERM.
func Execute() {
	ctx := cli.NewSignalContext(context.Background())
	defer ctx.Cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Configuration file (YAML or JSON); MULTIVAR_* variables override it")
	pf.String("log-level", "", "Log level: debug, info, warn or error (overrides the configuration)")
	pf.StringP("output", "o", cli.OutputAuto, "Output format: auto, json or markdown")
}

// loadConfig reads --config and applies --log-level.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		if _, err := logging.ParseLevel(level); err != nil {
			return config.Config{}, err
		}
		cfg.Log.Level = level
	}
	return cfg, nil
}

// loadApp builds the service described by the configuration.
func loadApp(cmd *cobra.Command) (*cli.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	level, _ := logging.ParseLevel(cfg.Log.Level)
	return cli.NewApp(cmd.Context(), cfg, logging.New(level))
}

// outputFormat resolves --output against the command's stdout.
func outputFormat(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString("output")
	return cli.ResolveOutput(format, cmd.OutOrStdout())
}

// signalName reports the signal that cancelled ctx, if any.
func signalName(ctx context.Context) string {
	if sc, ok := ctx.(*cli.SignalContext); ok && sc.Signal() != nil {
		return sc.Signal().String()
	}
	return "none"
}
