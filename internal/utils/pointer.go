package utils

// Ptr returns a pointer to a copy of v, for optional wire fields such as
// max_tokens:
//
//	req.MaxTokens = utils.Ptr(cfg.MaxTokens)
func Ptr[T any](v T) *T {
	return &v
}
