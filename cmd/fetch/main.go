// Command fetch sends one request through fetchkit and prints the decoded
// response body.
//
//	fetch --base-url https://api.example.com /api/users -d page=2
//	fetch -X POST --json -d username=a -d password=b /api/login
//	fetch login --username a --password b
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fetch:", err)
		os.Exit(exitCode(err))
	}
}
