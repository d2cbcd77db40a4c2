// SPDX-License-Identifier: MPL-2.0

package main

import cmd "pixelrun-cli/cmd/pixelrun"

func main() {
	cmd.Execute()
}
