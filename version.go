package remit

import "fmt"

// Release of the remit node and client.
const (
	Maj    = 0
	Min    = 1
	Fix    = 0
	Suffix = "-dev"
)

// GitCommit is set at build time with
// -ldflags "-X github.com/remitchain/remit.GitCommit=<hash>".
var GitCommit = ""

// Version returns the release, followed by the commit when known. It is
// reported to tendermint in the Info handshake and by both binaries.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)
	if GitCommit != "" {
		v += " " + GitCommit
	}
	return v
}
