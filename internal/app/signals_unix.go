//go:build !windows

package app

import (
	"os"
	"syscall"
)

// contSignals lists the signals after which the screen must be redrawn.
func contSignals() []os.Signal {
	return []os.Signal{syscall.SIGCONT}
}
