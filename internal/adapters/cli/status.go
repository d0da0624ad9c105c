package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/colonycore-go/internal/domain/colony"
	"github.com/andrescamacho/colonycore-go/internal/infrastructure/config"
)

// NewStatusCommand creates the status command: a read-only dump of the
// state store's counters, world records and agent census.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print stored counters, world records and agent census",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			c, err := NewContainer(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			ctx := context.Background()

			fmt.Println("Counters:")
			for _, name := range []string{
				colony.CounterTicksRun,
				colony.CounterAgentsProduced,
				colony.CounterOrdersCreated,
				colony.CounterAgentErrors,
			} {
				value, err := c.Counters.Get(ctx, name)
				if err != nil {
					return fmt.Errorf("failed to read counter %s: %w", name, err)
				}
				fmt.Printf("  %-18s %d\n", name, value)
			}

			worlds, err := c.WorldRepo.ListAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to list worlds: %w", err)
			}
			fmt.Printf("\nWorlds (%d):\n", len(worlds))
			for _, w := range worlds {
				fmt.Printf("  %-8s tier=%d nodes=%d relays=%d seen_at=%d\n",
					w.ID, w.Tier, len(w.ExtractionNodeIDs), len(w.Relays.ExtractorRelayIDs), w.SeenAt)
			}

			agents, err := c.AgentRepo.ListAll(ctx)
			if err != nil {
				return fmt.Errorf("failed to list agents: %w", err)
			}
			byRole := make(map[string]int)
			for _, a := range agents {
				byRole[string(a.Role)]++
			}
			fmt.Printf("\nAgents (%d):\n", len(agents))
			for role, n := range byRole {
				fmt.Printf("  %-18s %d\n", role, n)
			}
			return nil
		},
	}
}
