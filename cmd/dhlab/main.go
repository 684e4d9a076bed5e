// Copyright © 2021 Io FinNet Group, Inc.

// Command dhlab runs the Diffie-Hellman teaching service and exposes every exchange
// operation offline on the command line.
package main

import (
	"fmt"
	"os"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "dhlab:", err)
		os.Exit(1)
	}
}
