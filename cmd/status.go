package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/WatsonMLDev/codele-backend/internal/timeline"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show scheduling health: buffer depth, next open date, recent themes",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()

		occupied, err := s.TimelineRepo().OccupiedDates(ctx)
		if err != nil {
			return fmt.Errorf("load occupied dates: %w", err)
		}

		now := time.Now().UTC()
		today := timeline.FormatDate(now)
		buffer := 0
		for _, d := range occupied {
			if d > today {
				buffer++
			}
		}

		fmt.Printf("Today:            %s\n", today)
		fmt.Printf("Total problems:   %d\n", len(occupied))
		fmt.Printf("Buffer depth:     %d days beyond today\n", buffer)
		fmt.Printf("Next open date:   %s\n", timeline.NextOpenDate(occupied, now))
		if len(occupied) > 0 {
			fmt.Printf("Latest scheduled: %s\n", occupied[len(occupied)-1])
		}

		recent, err := s.ThemeRepo().RecentThemes(ctx, 10)
		if err != nil {
			return fmt.Errorf("load recent themes: %w", err)
		}
		if len(recent) > 0 {
			fmt.Println("\nRecent themes:")
			for i, name := range recent {
				fmt.Printf("  %d. %s\n", i+1, name)
			}
		}
		return nil
	},
}
