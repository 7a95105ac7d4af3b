// Command vaultctl drives the vault from scripts: it logs in once, keeps
// the session in the local session database and then lists, uploads,
// downloads or destroys without a terminal UI.
package main

import (
	"errors"
	"fmt"
	"os"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := newRootCmd(openClient).Execute(); err != nil {
		// flag and argument errors come from cobra and are not printed yet
		if !errors.As(err, new(reportedError)) {
			fmt.Fprintln(os.Stderr, failMark()+" "+err.Error())
		}
		os.Exit(1)
	}
}
