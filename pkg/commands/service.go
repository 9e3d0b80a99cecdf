package commands

import (
	"strings"

	"tableflip.dev/daybook/pkg/app"
	"tableflip.dev/daybook/pkg/reconcile"
	"tableflip.dev/daybook/pkg/remote"
	"tableflip.dev/daybook/pkg/store"
)

// loadService opens the local cache and, when credentials are stored, wires
// the remote mirror behind it. Callers must Close the service to drain
// pending remote writes.
func loadService() (*app.Service, error) {
	st, err := store.Load(nil)
	if err != nil {
		return nil, err
	}

	var svc remote.Service
	if creds := st.LoadCredentials(); creds.SignedIn() {
		svc = remote.NewClient(creds.Endpoint, creds.Token)
	}
	return app.New(st, reconcile.NewSession(st, svc)), nil
}

// dateCompletions offers the known entry date keys for shell completion.
func dateCompletions(toComplete string) []string {
	st, err := store.Load(nil)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range st.Entries().Sorted() {
		if strings.HasPrefix(e.ID, toComplete) {
			out = append(out, e.ID)
		}
	}
	return out
}
