// Package cli provides the command-line interface for conveyor.
package cli

import (
	"io"
	"os"
	"strings"

	"github.com/fogfactory/conveyor/internal/config"
	"github.com/fogfactory/conveyor/internal/logger"
	"github.com/spf13/cobra"
)

const serviceName = "conveyor"

// app carries the state shared by subcommands once the root command has loaded the configuration.
type app struct {
	configFile string
	envFile    string
	logLevel   string

	cfg *config.Config
	log *logger.Logger
}

// NewRootCmd builds the conveyor command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "conveyor",
		Short: "Bounded producer/consumer pipeline with a sales analytics demo.",
		Long: `conveyor moves items from a source to a destination through a bounded blocking queue, ` +
			`one producer and one consumer, ending each run with an end of stream marker. ` +
			`The sales command streams a sales CSV through the same pipeline and prints an analytics report.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "YAML config file")
	flags.StringVar(&a.envFile, "env-file", "", ".env file loaded before reading CONVEYOR_* variables")
	flags.StringVar(&a.logLevel, "log-level", "", "log level, overrides logging.level")

	root.AddCommand(newRunCmd(a), newSalesCmd(a))
	return root
}

// Execute runs the root command and exits with status 1 on error.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	var opts []config.LoaderOption
	if a.configFile != "" {
		opts = append(opts, config.WithConfigFile(a.configFile))
	}
	if a.envFile != "" {
		opts = append(opts, config.WithEnvFile(a.envFile))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
		if err := cfg.Logging.Validate(); err != nil {
			return err
		}
	}

	a.cfg = cfg
	a.log = logger.NewWithWriter(cfg.Logging, serviceName, logOutput(cmd, cfg.Logging.Output))
	return nil
}

func logOutput(cmd *cobra.Command, output string) io.Writer {
	if strings.EqualFold(output, "stdout") {
		return cmd.OutOrStdout()
	}
	return cmd.ErrOrStderr()
}
