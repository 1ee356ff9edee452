package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// watchCommand creates the watch command, a live grid in the terminal.
func (c *CLI) watchCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show a live grid that follows the terminal size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			applyRenderFlags(cmd, cfg, &opts)
			if err := cfg.Validate(); err != nil {
				return err
			}

			model, err := NewWatchModel(cfg)
			if err != nil {
				return err
			}
			c.Logger.Debug("starting watch", "pattern", cfg.Pattern, "debounce", cfg.Debounce())

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("watch: %w", err)
			}
			model.engine.Close()
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.pattern, "pattern", "p", "", "highlight pattern (see 'pixelgrid patterns')")
	cmd.Flags().Float64Var(&opts.rotation, "rotation", 0, "pattern rotation in degrees")
	cmd.Flags().Float64Var(&opts.cellSize, "cell-size", 0, "target cell size in pixels")

	return cmd
}
