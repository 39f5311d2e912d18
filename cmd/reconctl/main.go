// Command reconctl runs debt calculations and drift checks from the shell, either
// in-process against the database (or a demo ledger) or against a running server.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
