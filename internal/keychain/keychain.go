// Package keychain wraps the OS credential store for AI provider API keys
// (spec.md §6, §9 "Singletons ... model as process-wide services with
// explicit construction"). It is an external collaborator specified only
// at its interface; the core engine never depends on a concrete backend,
// only on the Store interface below.
package keychain

import "fmt"

// Service and AccountPrefix match spec.md §6's persisted-state contract.
const (
	Service      = "com.spellcaster.terminal"
	AccountPrefix = "api-key-"
)

// KeychainError wraps any backend failure (spec.md §7); it is surfaced to
// the preferences UI and never crashes the terminal engine.
type KeychainError struct {
	Op  string
	Err error
}

func (e *KeychainError) Error() string {
	return fmt.Sprintf("keychain: %s failed: %v", e.Op, e.Err)
}
func (e *KeychainError) Unwrap() error { return e.Err }

// Store persists provider API keys. Callers construct exactly one Store at
// startup and pass it down by reference (Design Notes §9), rather than
// reaching it through a global.
type Store interface {
	Get(provider string) (string, error)
	Set(provider, apiKey string) error
	Delete(provider string) error
}

// AccountFor returns the keychain account name for a provider, per
// spec.md §6 ("account api-key-<provider>").
func AccountFor(provider string) string {
	return AccountPrefix + provider
}
