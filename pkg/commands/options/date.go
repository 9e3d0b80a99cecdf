package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/timeutil"
)

// DateOptions resolves the date key a command operates on. The key comes
// either from positional args or the --on flag; empty means today.
type DateOptions struct {
	OnString string
}

func AddDateArgs(cmd *cobra.Command, o *DateOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2026-02-28" or --on=yesterday.`)
}

// GetKey resolves the effective date key, positional args winning over --on.
func (o *DateOptions) GetKey(args []string) (string, error) {
	in := o.OnString
	if len(args) > 0 {
		in = strings.Join(args, " ")
	}
	return timeutil.ParseKey(in)
}
