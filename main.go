// SPDX-License-Identifier: MPL-2.0

// Command clpconfig reports the build capabilities of the Clp LP library.
package main

import cmd "github.com/clp-go/clp/cmd/clpconfig"

func main() {
	cmd.Execute()
}
