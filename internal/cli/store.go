package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newSyncCmd(e *env) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy the content tree into the store",
		Long: `Sync loads every article, timeline event, evidence document and category
from the content tree and upserts them into the store in one transaction.

With --interval it keeps running and resyncs on every tick.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(e.cfg, e.log, true)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.db.RunMigrations(); err != nil {
				return fmt.Errorf("failed to run database migrations: %w", err)
			}

			if interval > 0 {
				ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				return a.services.Sync.Run(ctx, interval)
			}

			report, err := a.services.Sync.Sync(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "keep running and resync at this interval")
	return cmd
}

func newMigrateCmd(e *env) *cobra.Command {
	var version uint

	cmd := &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back store migrations",
		ValidArgs: []string{"up", "down"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(e.cfg, e.log, true)
			if err != nil {
				return err
			}
			defer a.Close()

			direction := "up"
			if len(args) == 1 {
				direction = args[0]
			}

			switch {
			case cmd.Flags().Changed("version"):
				err = a.db.MigrateToVersion(version)
			case direction == "down":
				err = a.db.MigrateDown()
			default:
				err = a.db.RunMigrations()
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s, %s)\n", direction, a.db.Dialect())
			return nil
		},
	}

	cmd.Flags().UintVar(&version, "version", 0, "migrate to this exact version instead")
	return cmd
}
