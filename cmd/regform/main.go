// Command regform serves, prompts for, renders and validates the
// registration form.
package main

import (
	"errors"
	"fmt"
	"os"
)

// Build information injected via ldflags at build time.
var version = "dev"

func main() {
	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := newRootCmd(a).Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "regform:", err)
		}
		os.Exit(1)
	}
}
