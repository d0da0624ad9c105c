package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/colonycore-go/internal/application/common"
	"github.com/andrescamacho/colonycore-go/internal/application/tick"
	"github.com/andrescamacho/colonycore-go/internal/infrastructure/config"
	"github.com/andrescamacho/colonycore-go/internal/infrastructure/pidfile"
)

// NewRunCommand creates the daemon run command.
func NewRunCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the tick daemon against the built-in simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			pf := pidfile.New(cfg.Daemon.PIDFile)
			if err := pf.Acquire(); err != nil {
				if !force {
					return fmt.Errorf("%w\nuse --force to kill the existing daemon", err)
				}
				if killErr := pf.KillExisting(); killErr != nil {
					return fmt.Errorf("failed to kill existing daemon: %w", killErr)
				}
				if err := pf.Acquire(); err != nil {
					return fmt.Errorf("failed to acquire PID file after kill: %w", err)
				}
			}
			defer func() { _ = pf.Release() }()

			return runDaemon(cfg)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Kill any existing daemon and start a new one")
	return cmd
}

func runDaemon(cfg *config.Config) error {
	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	if c.MetricsServer != nil {
		go func() {
			if err := c.MetricsServer.Start(); err != nil {
				c.Logger.Log("ERROR", "metrics server stopped", map[string]interface{}{"error": err.Error()})
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = c.MetricsServer.Stop(ctx)
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = common.WithLogger(ctx, c.Logger)

	c.Logger.Log("INFO", "daemon started", map[string]interface{}{
		"tick_interval": cfg.Daemon.TickInterval.String(),
		"worlds":        cfg.Simulation.WorldCount,
	})

	// pace ticks with a limiter so a slow tick never causes a burst of
	// catch-up ticks afterwards
	limiter := rate.NewLimiter(rate.Every(cfg.Daemon.TickInterval), 1)

	for {
		if err := limiter.Wait(ctx); err != nil {
			c.Logger.Log("INFO", "daemon shutting down", nil)
			return nil
		}
		if _, err := c.Mediator.Send(ctx, &tick.RunTickCommand{Provider: c.Simulator}); err != nil {
			c.Logger.Log("ERROR", "tick failed", map[string]interface{}{"error": err.Error()})
		}
		c.Simulator.Advance()
	}
}
