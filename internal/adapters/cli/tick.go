package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/colonycore-go/internal/application/common"
	"github.com/andrescamacho/colonycore-go/internal/application/tick"
	"github.com/andrescamacho/colonycore-go/internal/infrastructure/config"
)

// NewTickCommand creates the bounded tick command, mainly for debugging:
// it executes a fixed number of ticks against the simulation and exits.
func NewTickCommand() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "tick",
		Short: "Execute a fixed number of ticks and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("count must be at least 1: %d", count)
			}

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			c, err := NewContainer(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			ctx := common.WithLogger(context.Background(), c.Logger)

			for i := 0; i < count; i++ {
				resp, err := c.Mediator.Send(ctx, &tick.RunTickCommand{Provider: c.Simulator})
				if err != nil {
					return fmt.Errorf("tick %d failed: %w", i+1, err)
				}
				if summary, ok := resp.(*tick.TickSummary); ok && verbose {
					fmt.Printf("tick %d: worlds=%d agents=%d spawns=%d errors=%d duration=%s\n",
						summary.Tick, summary.WorldsProcessed, summary.AgentsProcessed,
						summary.SpawnsRequested, summary.AgentErrors, summary.Duration)
				}
				c.Simulator.Advance()
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 1, "Number of ticks to execute")
	return cmd
}
