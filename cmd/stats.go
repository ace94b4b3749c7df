package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/alefba/internal/content"
	"github.com/abhisek/alefba/internal/report"
	"github.com/abhisek/alefba/internal/spacedrep"
	"github.com/abhisek/alefba/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning progress for parents",
	RunE: func(cmd *cobra.Command, args []string) error {
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
		r := report.Build(items, time.Now())

		fmt.Println(r.Narrative)
		fmt.Println()
		fmt.Printf("%-10s  %6s  %8s  %9s  %5s\n", "Category", "Items", "Started", "Mastered", "Due")
		fmt.Println(strings.Repeat("─", 48))
		for _, cr := range r.Categories {
			fmt.Printf("%-10s  %6d  %8d  %8d%%  %5d\n",
				cr.Category.Label(), cr.Total, cr.Started, cr.Percent(), cr.Due)
		}
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("%-10s  %6d  %8d  %8d%%  %5d\n",
			"TOTAL", r.Overall.Total, r.Overall.Started, r.Overall.Percent(), r.Overall.Due)

		sessions, err := e.store.EventRepo().RecentSessions(ctx, store.QueryOpts{Limit: 5})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) > 0 {
			fmt.Println()
			fmt.Println("Recent Sessions")
			fmt.Println(strings.Repeat("─", 48))
			for _, s := range sessions {
				mode := "learn"
				if s.Review {
					mode = "review"
				}
				c := content.Category(s.Category)
				fmt.Printf("%s  %-8s %-6s  %d/%d items  %d flawless\n",
					s.Timestamp.Local().Format("2006-01-02 15:04"),
					c.Label(), mode, s.ItemsCompleted, s.ItemsPlanned, s.Flawless)
			}
		}
		return nil
	},
}

var islandsCmd = &cobra.Command{
	Use:   "islands",
	Short: "Print the island map",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		items, err := e.store.ItemRepo().ListAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("list items: %w", err)
		}
		now := time.Now()
		for _, c := range content.Categories {
			fmt.Println(c.Label())
			fmt.Println(strings.Repeat("─", 40))
			for _, isl := range content.Islands(content.FilterCategory(items, c)) {
				fmt.Println(islandLine(isl, now))
			}
			fmt.Println()
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add missing catalog items to the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		// openEnv seeds; this only reports the result.
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		items, err := e.store.ItemRepo().ListAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("list items: %w", err)
		}
		fmt.Printf("%d items in %s\n", len(items), e.cfg.Database.Path)
		return nil
	},
}

func islandLine(isl content.Island, now time.Time) string {
	it := isl.Item
	if isl.Locked {
		return fmt.Sprintf("  %-4s %s  locked", it.ID, it.Character)
	}
	stars := strings.Repeat("★", it.Level) + strings.Repeat("☆", content.MaxLevel-it.Level)
	status := spacedrep.StatusOf(it, now)
	line := fmt.Sprintf("  %-4s %s  %s  %-8s", it.ID, it.Character, stars, status)
	if status == spacedrep.StatusLearning {
		line += "  review in " + spacedrep.UntilReview(it, now).Round(time.Minute).String()
	}
	return line
}
