// Package main is the entry point for the fileripper CLI.
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/fileripper/internal/cli"
)

func main() {
	// UTF-8 fallback keeps non-ASCII file names readable on minimal terminals.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fileripper: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}
