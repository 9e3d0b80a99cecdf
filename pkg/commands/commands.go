package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/daybook/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "daybook",
		Short: base.Wrap80("A personal journal, one page per day."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddOutputArgs(cmd, output)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addOpen(topLevel)
	addList(topLevel)
	addShow(topLevel)
	addWrite(topLevel)
	addTag(topLevel)
	addStyle(topLevel)
	addDelete(topLevel)
	addSync(topLevel)
	addExport(topLevel)
	addSettings(topLevel)
	addLogin(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}
