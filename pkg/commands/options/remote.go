package options

import (
	"github.com/spf13/cobra"
)

// RemoteOptions identify the hosted entry service for sign-in.
type RemoteOptions struct {
	Endpoint string
	Token    string
}

func AddRemoteArgs(cmd *cobra.Command, o *RemoteOptions) {
	cmd.Flags().StringVar(&o.Endpoint, "endpoint", "",
		"Base URL of the entry service.")
	cmd.Flags().StringVar(&o.Token, "token", "",
		"Bearer token for the entry service.")
	_ = cmd.MarkFlagRequired("endpoint")
	_ = cmd.MarkFlagRequired("token")
}
