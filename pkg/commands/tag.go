package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/entry"
)

func addTag(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "manage a day's tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTagMutation(cmd, "add", "tag a day's page",
		func(svc *app.Service, ctx context.Context, key, tag string) (*entry.Entry, error) {
			return svc.AddTag(ctx, key, tag)
		})
	addTagMutation(cmd, "rm", "remove a tag from a day's page",
		func(svc *app.Service, ctx context.Context, key, tag string) (*entry.Entry, error) {
			return svc.RemoveTag(ctx, key, tag)
		})

	topLevel.AddCommand(cmd)
}

func addTagMutation(parent *cobra.Command, verb, short string, do func(svc *app.Service, ctx context.Context, key, tag string) (*entry.Entry, error)) {
	dop := &options.DateOptions{}

	cmd := &cobra.Command{
		Use:   verb + " TAG...",
		Short: short,
		Example: `
daybook tag ` + verb + ` travel
daybook tag ` + verb + ` travel food --on yesterday
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("at least one tag is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := dop.GetKey(nil)
			if err != nil {
				return output.HandleError(err)
			}
			svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			ctx := context.Background()
			for _, tag := range args {
				if _, err := do(svc, ctx, key, tag); err != nil {
					return output.HandleError(err)
				}
			}
			return nil
		},
	}

	options.AddDateArgs(cmd, dop)
	parent.AddCommand(cmd)
}
