//go:build windows

package ptyhost

import (
	"syscall"

	gopty "github.com/aymanbagabas/go-pty"
)

// hideConsole sets CREATE_NO_WINDOW so child processes spawned via ConPTY
// don't flash a visible console window when the host is a GUI app.
func hideConsole(cmd *gopty.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.CreationFlags |= 0x08000000 // CREATE_NO_WINDOW
}
