// main is the entry point for the opendxi CLI.
package main

import (
	"fmt"
	"os"

	"github.com/opendxi/opendxi/cmd"
)

func main() {
	err := cmd.Execute()
	cmd.CloseStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
