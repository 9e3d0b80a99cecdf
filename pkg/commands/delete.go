package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
)

func addDelete(topLevel *cobra.Command) {
	do := &options.DateOptions{}

	cmd := &cobra.Command{
		Use:     "delete [date]",
		Aliases: []string{"rm"},
		Short:   "delete a day's page",
		Example: `
daybook delete 2026-02-28
daybook delete --on yesterday
`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return dateCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := do.GetKey(args)
			if err != nil {
				return output.HandleError(err)
			}
			svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()
			return output.HandleError(svc.Delete(context.Background(), key))
		},
	}

	options.AddDateArgs(cmd, do)
	topLevel.AddCommand(cmd)
}
