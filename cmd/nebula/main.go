// Command nebula is a terminal chat client for the Nebula inference API.
//
// Usage:
//
//	nebula                      # interactive chat
//	nebula send "hello"         # one-shot prompt, reply on stdout
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nebula-edge/nebula/core/config"
	"github.com/nebula-edge/nebula/kernel"
)

var (
	configFile string
	model      string
	endpoint   string
	timeout    time.Duration
	logFile    string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "nebula",
	Short: "Nebula terminal chat client",
	Long: `Nebula is a terminal chat client for the Nebula inference API.

Run without arguments to open the interactive chat. The first screen asks
for an API key; it is kept in memory for the session only.`,
	SilenceUsage: true,
	RunE:         runInteractive,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "path to a JSON or YAML config file")
	flags.StringVar(&model, "model", "", "model identifier (overrides config)")
	flags.StringVar(&endpoint, "endpoint", "", "chat completions URL (overrides config)")
	flags.DurationVar(&timeout, "timeout", 0, "per-request timeout; 0 waits indefinitely (overrides config)")
	flags.StringVar(&logFile, "log-file", "", "write structured logs to this file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(sendCmd)
}

// loadConfig resolves the kernel config from the config file and any
// explicitly set flags.
func loadConfig(cmd *cobra.Command) (*kernel.Config, error) {
	cfg := kernel.DefaultConfig()
	if configFile != "" {
		loaded, err := kernel.LoadConfig(configFile)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Agent.Model = model
	}
	if flags.Changed("endpoint") {
		cfg.Agent.Endpoint = endpoint
	}
	if flags.Changed("timeout") {
		if timeout < 0 {
			return nil, fmt.Errorf("timeout must not be negative: %s", timeout)
		}
		cfg.Agent.Timeout = config.Duration(timeout)
	}
	return &cfg, nil
}

// execute runs the command tree and flushes the logger whether or not the
// command failed.
func execute() error {
	defer syncLogger()
	return rootCmd.Execute()
}

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}
