package ptyhost

import (
	"os"
	"runtime"
)

// DefaultShell returns the default shell command for the current OS,
// consulting SHELL/COMSPEC first.
func DefaultShell() []string {
	if runtime.GOOS == "windows" {
		if comspec := os.Getenv("COMSPEC"); comspec != "" {
			return []string{comspec}
		}
		return []string{"cmd.exe"}
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		return []string{shell}
	}
	return []string{"/bin/bash"}
}

// ShellIntegrationEnv returns the environment additions spec.md §6 requires
// every child to see: TERM and the SPELLCASTER_SHELL_INTEGRATION marker
// that gates the shell-side integration scripts.
func ShellIntegrationEnv() []string {
	return []string{
		"TERM=xterm-256color",
		"COLORTERM=truecolor",
		"SPELLCASTER_SHELL_INTEGRATION=1",
	}
}
