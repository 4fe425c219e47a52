// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/rauletaveras/zettel/cmd/zettel"

func main() {
	cmd.Execute()
}
