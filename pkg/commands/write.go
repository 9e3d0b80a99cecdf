package commands

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/richtext"
)

func addWrite(topLevel *cobra.Command) {
	do := &options.DateOptions{}
	appendText := false

	cmd := &cobra.Command{
		Use:   "write [text]",
		Short: "write a day's page from the command line",
		Long: `Write replaces the day's page with the given text; use --append to add to
the end instead. With no text argument the page is read from stdin.`,
		Example: `
daybook write "Slept in. Worth it."
daybook write --on yesterday --append "PS: the cat forgave me"
cat draft.txt | daybook write
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := do.GetKey(nil)
			if err != nil {
				return output.HandleError(err)
			}

			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return output.HandleError(err)
				}
				text = strings.TrimRight(string(data), "\n")
			}

			svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			ctx := context.Background()
			doc := richtext.FromText(text)
			if appendText {
				e, err := svc.Open(ctx, key)
				if err != nil {
					return output.HandleError(err)
				}
				doc = e.Content
				if doc.Len() > 0 {
					text = "\n" + text
				}
				if err := doc.InsertText(doc.Len(), text); err != nil {
					return output.HandleError(err)
				}
			}
			_, err = svc.SaveDocument(ctx, key, doc)
			return output.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&appendText, "append", false, "Append instead of replacing the page.")
	options.AddDateArgs(cmd, do)
	topLevel.AddCommand(cmd)
}
