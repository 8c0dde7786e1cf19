//go:build darwin

package keychain

import (
	"bytes"
	"os/exec"
	"strings"
)

// DarwinStore shells out to /usr/bin/security, the standard macOS keychain
// CLI, the same way the rest of this codebase uses os/exec for OS
// integration rather than a cgo binding.
type DarwinStore struct{}

// NewStore returns the platform Store for darwin.
func NewStore() Store { return DarwinStore{} }

func (DarwinStore) Get(provider string) (string, error) {
	cmd := exec.Command("security", "find-generic-password",
		"-s", Service, "-a", AccountFor(provider), "-w")
	var out, errOut bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errOut
	if err := cmd.Run(); err != nil {
		return "", &KeychainError{Op: "get", Err: errorFrom(err, errOut.String())}
	}
	return strings.TrimRight(out.String(), "\n"), nil
}

func (DarwinStore) Set(provider, apiKey string) error {
	// add-generic-password -U updates in place if the item already exists.
	cmd := exec.Command("security", "add-generic-password",
		"-U", "-s", Service, "-a", AccountFor(provider), "-w", apiKey)
	var errOut bytes.Buffer
	cmd.Stderr = &errOut
	if err := cmd.Run(); err != nil {
		return &KeychainError{Op: "set", Err: errorFrom(err, errOut.String())}
	}
	return nil
}

func (DarwinStore) Delete(provider string) error {
	cmd := exec.Command("security", "delete-generic-password",
		"-s", Service, "-a", AccountFor(provider))
	var errOut bytes.Buffer
	cmd.Stderr = &errOut
	if err := cmd.Run(); err != nil {
		return &KeychainError{Op: "delete", Err: errorFrom(err, errOut.String())}
	}
	return nil
}

func errorFrom(err error, stderr string) error {
	if stderr == "" {
		return err
	}
	return &stderrError{msg: stderr, cause: err}
}

type stderrError struct {
	msg   string
	cause error
}

func (e *stderrError) Error() string { return e.msg }
func (e *stderrError) Unwrap() error { return e.cause }
