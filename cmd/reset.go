package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/alefba/internal/store"
)

// snapshotsKept is how many progress snapshots survive a reset.
const snapshotsKept = 10

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Start over: every item back to level 1",
	Long:  "Reset saves a snapshot of the current progress and then puts every item back to level 1. Use 'restore' to undo.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("reset erases all progress; run again with --yes to confirm")
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		items, err := e.store.ItemRepo().ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list items: %w", err)
		}
		snaps := e.store.SnapshotRepo()
		if err := snaps.Save(ctx, &store.Snapshot{Data: store.SnapshotFromItems(items)}); err != nil {
			return fmt.Errorf("save snapshot: %w", err)
		}
		if err := snaps.Prune(ctx, snapshotsKept); err != nil {
			e.log.WithError(err).Warn("prune snapshots")
		}
		if err := e.store.ItemRepo().ResetProgress(ctx); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}

		e.log.Info("progress reset")
		fmt.Println("Progress reset. Run 'alefba restore' to bring it back.")
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Bring back the progress saved by the last reset",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		snap, err := e.store.SnapshotRepo().Latest(ctx)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		if snap == nil {
			fmt.Println("No snapshot to restore.")
			return nil
		}

		items, err := e.store.ItemRepo().ListAll(ctx)
		if err != nil {
			return fmt.Errorf("list items: %w", err)
		}
		changed := snap.Data.Apply(items)
		if err := e.store.ItemRepo().RestoreProgress(ctx, changed); err != nil {
			return fmt.Errorf("restore progress: %w", err)
		}

		e.log.WithField("items", len(changed)).Info("progress restored")
		fmt.Printf("Restored %d items from %s.\n", len(changed), snap.Timestamp.Local().Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
