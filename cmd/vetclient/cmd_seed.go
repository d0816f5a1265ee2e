package main

import (
	"context"
	"fmt"

	"github.com/jessevdk/go-flags"
	"go.vetclinic.dev/vetclient/clients"
	mbp "go.vetclinic.dev/vetclient/mainboilerplate"
	"go.vetclinic.dev/vetclient/store"
)

type cmdSeed struct{}

func init() {
	RegisterCommands = append(RegisterCommands, AddCmdSeed)
}

func AddCmdSeed(cmd *flags.Command) error {
	_, err := cmd.AddCommand("seed", "Seed the sample client", `
Add the sample client having ID 50 to the store, if it doesn't already exist.
An existing client having ID 50 is left as-is.
`, &cmdSeed{})
	return err
}

func (cmd *cmdSeed) Execute([]string) error {
	defer startup()()
	var ctx = context.Background()

	var st, err = store.Open(ctx, baseCfg.Store)
	mbp.Must(err, "failed to open client store", "path", baseCfg.Store.Path)
	defer st.Close()

	inserted, err := st.SeedDefault(ctx)
	if err != nil {
		return err
	}

	if inserted {
		fmt.Fprintf(stdout, "Seeded client %d.\n", clients.DefaultID)
	} else {
		fmt.Fprintf(stdout, "Client %d already exists.\n", clients.DefaultID)
	}
	return nil
}
