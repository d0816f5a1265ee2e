package main

import (
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"go.vetclinic.dev/vetclient/clients"
	mbp "go.vetclinic.dev/vetclient/mainboilerplate"
	"go.vetclinic.dev/vetclient/metrics"
	"go.vetclinic.dev/vetclient/store"
)

const iniFilename = "vetclient.ini"

var (
	baseCfg = new(struct {
		Store       store.Config          `group:"Store" namespace:"store" env-namespace:"STORE"`
		Log         mbp.LogConfig         `group:"Logging" namespace:"log" env-namespace:"LOG"`
		Diagnostics mbp.DiagnosticsConfig `group:"Diagnostics" namespace:"diagnostics" env-namespace:"DIAGNOSTICS"`
	})

	// RegisterCommands are functions which add sub-commands to the root command.
	RegisterCommands []RegisterCommandFunc

	// Operator input and display.
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

// RegisterCommandFunc adds a sub-command to a parent command.
type RegisterCommandFunc func(*flags.Command) error

// startup initializes logging and diagnostics. The returned closure should
// be deferred by the running command.
func startup() func() {
	mbp.InitLog(baseCfg.Log)
	return mbp.InitDiagnostics(baseCfg.Diagnostics, metrics.VetclientCollectors()...)
}

func newParser() *flags.Parser {
	var parser = flags.NewParser(baseCfg, flags.Default)
	parser.SubcommandsOptional = true

	mbp.AddPrintConfigCmd(parser, iniFilename)
	parser.LongDescription = `vetclient edits the client records of a veterinary clinic.

	Run without a command, vetclient starts an interactive editing session of
	client 50 (see "edit --help"). See --help pages of each sub-command for
	documentation and usage examples.

	Optionally configure vetclient with a '` + iniFilename + `' file in the current working directory,
	or with '~/.config/vetclient/` + iniFilename + `'. Use the 'print-config' sub-command to inspect
	the tool's current configuration.
	`

	for _, addSubCommand := range RegisterCommands {
		mbp.Must(addSubCommand(parser.Command), "could not add subcommand")
	}
	return parser
}

func main() {
	var parser = newParser()
	mbp.MustParseConfig(parser, iniFilename)
	mbp.Must(runDefault(parser), "edit session failed")
}

// runDefault runs an edit session if the Parser didn't run a command.
func runDefault(parser *flags.Parser) error {
	if parser.Active != nil {
		return nil
	}
	if editCfg.ClientID == 0 {
		editCfg.ClientID = clients.DefaultID
	}
	return editCfg.Execute(nil)
}
