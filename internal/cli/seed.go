package cli

import (
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Reset storage to the seed dataset (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SeedResult

			if err := client.Post("/api/v1/seed", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
