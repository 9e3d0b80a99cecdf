package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/entry"
	"tableflip.dev/daybook/pkg/printers"
	"tableflip.dev/daybook/pkg/timeutil"
)

func addList(topLevel *cobra.Command) {
	lo := &options.ListOptions{}
	do := &options.DateOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "list journal entries",
		Example: `
daybook list
daybook list --since 2w
daybook list --calendar
daybook list --calendar --year
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			entries, err := svc.List(context.Background())
			if err != nil {
				return output.HandleError(err)
			}

			window, err := lo.Window()
			if err != nil {
				return output.HandleError(err)
			}
			if window > 0 {
				cutoff := time.Now().Add(-window).UnixMilli()
				kept := make([]*entry.Entry, 0, len(entries))
				for _, e := range entries {
					if e.UpdatedAt >= cutoff {
						kept = append(kept, e)
					}
				}
				entries = kept
			}

			pp := printers.PrettyPrint{Plain: output.Plain}
			if lo.Calendar {
				on := time.Now()
				if do.OnString != "" {
					key, err := do.GetKey(nil)
					if err != nil {
						return output.HandleError(err)
					}
					on, err = time.ParseInLocation(timeutil.LayoutISO, key, time.Local)
					if err != nil {
						return output.HandleError(err)
					}
				}
				if lo.Year {
					pp.CalendarYear(on, entries...)
				} else {
					pp.Calendar(on, entries...)
				}
				return nil
			}

			pp.Title("daybook")
			pp.Entries(entries...)
			return nil
		},
	}

	options.AddListArgs(cmd, lo)
	options.AddDateArgs(cmd, do)
	topLevel.AddCommand(cmd)
}
