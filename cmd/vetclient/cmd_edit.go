package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	mbp "go.vetclinic.dev/vetclient/mainboilerplate"
	"go.vetclinic.dev/vetclient/session"
	"go.vetclinic.dev/vetclient/store"
)

type cmdEdit struct {
	session.Config

	clearer session.Clearer
}

var editCfg = &cmdEdit{clearer: session.TerminalClearer{}}

func init() {
	RegisterCommands = append(RegisterCommands, AddCmdEdit)
}

func AddCmdEdit(cmd *flags.Command) error {
	_, err := cmd.AddCommand("edit", "Interactively edit a client", `
Interactively edit the fields of a client record.

The client is displayed with a menu of choices. Choices A through G prompt for
a new value of a client field, which is written to the store as soon as it's
entered. Choice I acknowledges the current information, and Q quits.

Unless --no-seed is given, a sample client having ID 50 is first added to the
store if it doesn't exist.

Edit a client other than the sample client:
>    vetclient edit --client-id 1234
`, editCfg)
	return err
}

func (cmd *cmdEdit) Execute([]string) error {
	defer startup()()

	var ctx, cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var st, err = store.Open(ctx, baseCfg.Store)
	mbp.Must(err, "failed to open client store", "path", baseCfg.Store.Path)

	log.WithFields(log.Fields{
		"id":   cmd.ClientID,
		"path": baseCfg.Store.Path,
	}).Info("starting edit session")

	err = session.New(cmd.Config, st, stdin, stdout, cmd.clearer).Run(ctx)
	if errors.Cause(err) == context.Canceled {
		log.Info("edit session interrupted")
		return nil
	}
	return err
}
