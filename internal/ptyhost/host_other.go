//go:build !windows

package ptyhost

import gopty "github.com/aymanbagabas/go-pty"

// hideConsole is a no-op on non-Windows platforms.
func hideConsole(_ *gopty.Cmd) {}
