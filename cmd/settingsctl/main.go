/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command settingsctl inspects and edits settings from the command line.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "settingsctl:", err)
		os.Exit(1)
	}
}
