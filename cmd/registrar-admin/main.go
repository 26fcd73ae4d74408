// Command registrar-admin is the operations CLI: schema bootstrap, basic
// environment management, and token issuance for testing HTTP adapters.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
