// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"multiasset/cli"
)

func main() {
	cli.Execute()
}
