package ai

import "errors"

var (
	// ErrNetwork marks failures to reach the provider: transport errors and
	// non-2xx HTTP statuses.
	ErrNetwork = errors.New("network error")

	// ErrResponseShape marks provider responses that decoded but lack the
	// fields a reply is read from, or that could not be decoded at all.
	ErrResponseShape = errors.New("unexpected response shape")

	// ErrMissingAPIKey is returned by adapters asked to send without a key.
	ErrMissingAPIKey = errors.New("API key is not set")
)

// ErrorType returns a short machine-readable label for err, used to tag log
// entries. Unknown errors are labelled "unexpected".
func ErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNetwork):
		return "network"
	case errors.Is(err, ErrResponseShape):
		return "response_shape"
	case errors.Is(err, ErrMissingAPIKey):
		return "configuration"
	default:
		return "unexpected"
	}
}
