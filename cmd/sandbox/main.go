package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/sandbox/internal/cli"
	"github.com/arthur-debert/sandbox/pkg/display"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		styled := display.DetectFormat(os.Stderr) == display.FormatTerminal
		fmt.Fprintln(os.Stderr, display.FormatError(err, styled))
		os.Exit(1)
	}
}
