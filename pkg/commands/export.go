package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
)

func addExport(topLevel *cobra.Command) {
	do := &options.DateOptions{}
	out := ""

	cmd := &cobra.Command{
		Use:   "export [date]",
		Short: "export a day's page as plain text",
		Example: `
daybook export
daybook export 2026-02-28 --out page.txt
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

			text, err := svc.Export(context.Background(), key)
			if err != nil {
				return output.HandleError(err)
			}
			if out == "" {
				fmt.Println(text)
				return nil
			}
			return output.HandleError(os.WriteFile(out, []byte(text+"\n"), 0o644))
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to a file instead of stdout.")
	options.AddDateArgs(cmd, do)
	topLevel.AddCommand(cmd)
}
