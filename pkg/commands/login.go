package commands

import (
	"context"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/daybook/pkg/commands/options"
	"tableflip.dev/daybook/pkg/remote"
	"tableflip.dev/daybook/pkg/store"
)

func addLogin(topLevel *cobra.Command) {
	ro := &options.RemoteOptions{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "sign in to the entry service",
		Example: `
daybook login --endpoint https://db.example.com --token s3cr3t
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Load(nil)
			if err != nil {
				return output.HandleError(err)
			}

			// Probe before persisting so a typo'd endpoint is caught here.
			client := remote.NewClient(ro.Endpoint, ro.Token)
			if _, err := client.ListAll(context.Background()); err != nil {
				return output.HandleError(err)
			}

			creds := store.Credentials{Endpoint: ro.Endpoint, Token: ro.Token}
			if err := st.SaveCredentials(creds); err != nil {
				return output.HandleError(err)
			}
			f := color.New(color.Faint)
			_, _ = f.Println("signed in")
			return nil
		},
	}

	options.AddRemoteArgs(cmd, ro)
	topLevel.AddCommand(cmd)
	addLogout(topLevel)
}

func addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "sign out and go local-only",
		Example: `
daybook logout
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Load(nil)
			if err != nil {
				return output.HandleError(err)
			}
			if err := st.ClearCredentials(); err != nil {
				return output.HandleError(err)
			}
			f := color.New(color.Faint)
			_, _ = f.Println("signed out, entries stay on this device")
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
