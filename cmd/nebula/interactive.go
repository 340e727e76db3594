package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nebula-edge/nebula/cmd/nebula/chat"
	"github.com/nebula-edge/nebula/kernel"
)

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := setupUILogging(cfg); err != nil {
		return err
	}

	k, err := kernel.New(cfg)
	if err != nil {
		return err
	}

	m := chat.New(cmd.Context(), k)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat exited: %w", err)
	}
	return nil
}
