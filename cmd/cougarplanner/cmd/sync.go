package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielzdev/cougarplanner/internal/fetch"
	"github.com/danielzdev/cougarplanner/internal/merge"
	"github.com/danielzdev/cougarplanner/pkg/constants"
	"github.com/danielzdev/cougarplanner/pkg/sync"
)

var (
	syncDate   string
	syncOffset int
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch one week from Canvas and merge it into the local store",
	Long: `Sync fetches the week's courses, assignments, and announcements from
Canvas and merges them into the CSV store.

Merging accumulates: records missing from a fetch stay in the store, and
difficulty ratings assigned locally survive remote updates.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncDate, "date", "", "anchor date inside the week to sync (YYYY-MM-DD, default today)")
	syncCmd.Flags().IntVar(&syncOffset, "week-offset", 0, "shift the week by N weeks (negative for past)")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	week, err := resolveWeek(syncDate, syncOffset)
	if err != nil {
		return err
	}

	canvasClient, err := client()
	if err != nil {
		return err
	}

	courses, assignments, announcements := stores()
	syncer := sync.New(
		fetch.New(canvasClient),
		merge.New(courses, assignments, announcements),
	)

	ctx, cancel := context.WithTimeout(cmd.Context(), constants.SyncTimeout)
	defer cancel()

	result, err := syncer.Sync(ctx, week)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
	return nil
}
