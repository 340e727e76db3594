package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nebula-edge/nebula/kernel"
)

const apiKeyEnv = "NEBULA_API_KEY"

var apiKey string

var sendCmd = &cobra.Command{
	Use:   "send [prompt]",
	Short: "Send one prompt and print the reply",
	Long: `Send runs a single exchange without the interactive UI. The API key is
read from --api-key or, when unset, from the NEBULA_API_KEY environment
variable. Engine failures are printed like any other reply.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringVar(&apiKey, "api-key", "", "API key (defaults to $"+apiKeyEnv+")")
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := setupCLILogging(cfg); err != nil {
		return err
	}

	k, err := kernel.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := k.OnCredentialSubmit(ctx, envOr(apiKey, apiKeyEnv)); err != nil {
		return fmt.Errorf("%w (use --api-key or $%s)", err, apiKeyEnv)
	}

	reply, err := k.Send(ctx, strings.Join(args, " "))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), reply)
	return nil
}

func envOr(value, key string) string {
	if value != "" {
		return value
	}
	return os.Getenv(key)
}
