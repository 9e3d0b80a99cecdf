package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/printers"
)

func addShow(topLevel *cobra.Command) {
	do := &options.DateOptions{}
	width := 0

	cmd := &cobra.Command{
		Use:   "show [date]",
		Short: "print a day's page to the terminal",
		Example: `
daybook show
daybook show yesterday --plain
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

			e, err := svc.Open(context.Background(), key)
			if err != nil {
				return output.HandleError(err)
			}
			pp := printers.PrettyPrint{Plain: output.Plain}
			pp.Document(e, width)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Wrap width, 0 for the default.")
	options.AddDateArgs(cmd, do)
	topLevel.AddCommand(cmd)
}
