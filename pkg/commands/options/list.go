package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/timeutil"
)

// ListOptions filter and shape entry listings.
type ListOptions struct {
	Since    string
	All      bool
	Calendar bool
	Year     bool
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().StringVar(&o.Since, "since", "",
		`Only entries updated within the window, example: --since=2w or --since="3 days".`)
	cmd.Flags().BoolVarP(&o.All, "all", "a", false,
		"List every entry regardless of age.")
	cmd.Flags().BoolVar(&o.Calendar, "calendar", false,
		"Render the month calendar instead of a table.")
	cmd.Flags().BoolVar(&o.Year, "year", false,
		"With --calendar, render the whole year.")
}

// Window resolves the --since filter. Zero duration means unfiltered.
func (o *ListOptions) Window() (time.Duration, error) {
	if o.All || o.Since == "" {
		return 0, nil
	}
	d, _, err := timeutil.ParseWindow(o.Since)
	return d, err
}
