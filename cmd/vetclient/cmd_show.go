package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jessevdk/go-flags"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"go.vetclinic.dev/vetclient/clients"
	mbp "go.vetclinic.dev/vetclient/mainboilerplate"
	"go.vetclinic.dev/vetclient/store"
	"gopkg.in/yaml.v2"
)

type cmdShow struct {
	ClientID int64  `long:"client-id" env:"CLIENT_ID" default:"50" description:"ID of the client to show"`
	Format   string `long:"format" short:"o" choice:"text" choice:"table" choice:"yaml" choice:"json" default:"text" description:"Output format"`
}

func init() {
	RegisterCommands = append(RegisterCommands, AddCmdShow)
}

func AddCmdShow(cmd *flags.Command) error {
	_, err := cmd.AddCommand("show", "Show a client", `
Show a client record and exit.

Results can be output in a variety of --format options:
text:  Prints the client as it's displayed by "edit"
table: Prints the client fields as a table
yaml:  Prints the client in YAML form
json:  Prints the client encoded as JSON
`, &cmdShow{})
	return err
}

func (cmd *cmdShow) Execute([]string) error {
	defer startup()()
	var ctx = context.Background()

	var st, err = store.Open(ctx, baseCfg.Store)
	mbp.Must(err, "failed to open client store", "path", baseCfg.Store.Path)
	defer st.Close()

	r, err := st.Fetch(ctx, cmd.ClientID)
	if err != nil {
		return err
	}
	return writeRecord(stdout, r, cmd.Format)
}

func writeRecord(w io.Writer, r clients.Record, format string) error {
	switch format {
	case "text":
		return r.Display(w)
	case "table":
		var table = tablewriter.NewWriter(w)
		table.Header("Field", "Value")

		if err := table.Append([]string{"ID", fmt.Sprint(r.ID)}); err != nil {
			return err
		}
		for _, f := range clients.Fields {
			if err := table.Append([]string{f.Label(), r.Get(f)}); err != nil {
				return err
			}
		}
		return table.Render()
	case "yaml":
		var b, err = yaml.Marshal(r)
		if err == nil {
			_, err = w.Write(b)
		}
		return err
	case "json":
		var enc = json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	default:
		return errors.Errorf("unknown format %q", format)
	}
}
