// Command library runs the lending engine against a memory or postgres journal.
//
//	library demo                  run the lending walkthrough and journal it
//	library replay [--as-of DATE] restore the library from the journal and report on it
//	library history MEMBER_ID     list the journaled activity of one member
//	library migrate               create the events table of the postgres journal
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
