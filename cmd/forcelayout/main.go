// Command forcelayout settles graph layouts in batch mode and manages stored layouts.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
