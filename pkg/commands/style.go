package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/mark"
)

func addStyle(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "style",
		Short: "style a stretch of a day's page",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addStyleSize(cmd)
	addStyleMark(cmd)
	topLevel.AddCommand(cmd)
}

func addStyleSize(parent *cobra.Command) {
	do := &options.DateOptions{}
	so := &options.SpanOptions{}

	cmd := &cobra.Command{
		Use:   "size PX",
		Short: "set the font size over a text range",
		Long: `Set the font size in pixels over --from/--to. Without a range the size
becomes the sticky default for the next text typed in the editor.`,
		Example: `
daybook style size 24 --from 6 --to 11
daybook style size 18 --on yesterday
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := strconv.Atoi(args[0])
			if err != nil || size <= 0 {
				return output.HandleError(fmt.Errorf("invalid size %q", args[0]))
			}
			key, err := do.GetKey(nil)
			if err != nil {
				return output.HandleError(err)
			}
			svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			ctx := context.Background()
			e, err := svc.Open(ctx, key)
			if err != nil {
				return output.HandleError(err)
			}
			res, err := svc.ApplyFontSize(ctx, key, size, so.Selection(e.Content.Len()))
			if err != nil {
				return output.HandleError(err)
			}
			if res.SetDefault {
				f := color.New(color.Faint)
				_, _ = f.Printf("default size is now %dpx\n", size)
			}
			return nil
		},
	}

	options.AddDateArgs(cmd, do)
	options.AddSpanArgs(cmd, so)
	parent.AddCommand(cmd)
}

func addStyleMark(parent *cobra.Command) {
	do := &options.DateOptions{}
	so := &options.SpanOptions{}

	long := strings.Builder{}
	long.WriteString("Toggle an inline mark over --from/--to.\n\nMarks:\n")
	validArgs := make([]string, 0, len(mark.All()))
	for _, m := range mark.All() {
		long.WriteString("  " + m.String() + "\n")
		validArgs = append(validArgs, m.String())
	}

	cmd := &cobra.Command{
		Use:   "mark NAME",
		Short: "toggle bold, italic, underline or highlight over a text range",
		Long:  long.String(),
		Example: `
daybook style mark bold --from 0 --to 5
daybook style mark hl --from 12 --to 20 --on 2026-02-28
`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: validArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mark.ForAlias(args[0])
			if err != nil {
				return output.HandleError(err)
			}
			if !so.HasRange() {
				return output.HandleError(errors.New("marks need a range, set --from and --to"))
			}
			key, err := do.GetKey(nil)
			if err != nil {
				return output.HandleError(err)
			}
			svc, err := loadService()
			if err != nil {
				return output.HandleError(err)
			}
			defer svc.Close()

			ctx := context.Background()
			e, err := svc.Open(ctx, key)
			if err != nil {
				return output.HandleError(err)
			}
			_, err = svc.ToggleMark(ctx, key, m, so.Selection(e.Content.Len()))
			return output.HandleError(err)
		},
	}

	options.AddDateArgs(cmd, do)
	options.AddSpanArgs(cmd, so)
	parent.AddCommand(cmd)
}
