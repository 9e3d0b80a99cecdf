package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/tui/editor"
)

func addOpen(topLevel *cobra.Command) {
	do := &options.DateOptions{}

	cmd := &cobra.Command{
		Use:   "open [date]",
		Short: "open the full-screen editor for a day's page",
		Example: `
daybook open
daybook open yesterday
daybook open 2026-02-28
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
			if _, err := svc.Startup(context.Background()); err != nil {
				return output.HandleError(err)
			}
			return output.HandleError(editor.Run(svc, key))
		},
	}

	options.AddDateArgs(cmd, do)
	topLevel.AddCommand(cmd)
}
