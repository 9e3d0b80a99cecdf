package commands

import (
	"context"
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func addSync(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "reconcile the local cache with the entry service",
		Example: `
daybook sync
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			if !svc.Store.LoadCredentials().SignedIn() {
				return output.HandleError(errors.New("not signed in, run: daybook login"))
			}

			set, err := svc.Startup(context.Background())
			if err != nil {
				return output.HandleError(err)
			}
			f := color.New(color.Faint)
			_, _ = f.Printf("synced, %d entries\n", len(set))
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
