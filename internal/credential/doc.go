// Package credential resolves API keys stored in the system keyring, so the
// bundle configuration can reference a secret instead of holding it.
package credential
