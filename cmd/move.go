package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WatsonMLDev/codele-backend/internal/timeline"
)

var moveCmd = &cobra.Command{
	Use:   "move <from-date> <to-date>",
	Short: "Move a scheduled problem to another date",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to := args[0], args[1]
		if _, err := timeline.ParseDate(from); err != nil {
			return err
		}
		if _, err := timeline.ParseDate(to); err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		if err := s.TimelineRepo().Move(cmd.Context(), from, to); err != nil {
			return err
		}
		fmt.Printf("Moved %s -> %s\n", from, to)
		return nil
	},
}
