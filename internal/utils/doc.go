// Package utils provides shared low-level helpers for the provider adapters:
// [DoPostSync] for synchronous JSON round-trips, [NewHTTPClient] for the
// TLS-configurable client they use, [ParseStringAs] for tolerant decoding,
// and small string and pointer helpers.
package utils
