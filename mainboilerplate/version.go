// Package mainboilerplate contains shared boilerplate for vetclient programs:
// logging, configuration parsing, diagnostics and fatal-error helpers.
package mainboilerplate

// Version and BuildDate are populated at build time, eg with:
//
//	go build -ldflags "-X go.vetclinic.dev/vetclient/mainboilerplate.Version=v1.2.3"
var (
	Version   = "development"
	BuildDate = "unknown"
)
