//go:build windows

package app

// There is no SIGTSTP on Windows; suspending is a no-op.
func (app *Application) suspendToShell() {
}

func (app *Application) resumeAfterStop() bool {
	return false
}
