// Command frontierctl is the operator CLI for the frontier: it talks
// directly to the same Postgres store the daemon uses, for submitting
// job configurations and inspecting job/site/page state.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
