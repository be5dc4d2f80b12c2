package ai

import "errors"

var (
	ErrProviderUnavailable = errors.New("ai provider unavailable")
	ErrInferenceTimeout    = errors.New("ai inference timeout")
	ErrInvalidResponse     = errors.New("ai provider returned invalid response")
	ErrEmptyContent        = errors.New("content is required")
	ErrCorpusTooLong       = errors.New("content exceeds the analysis word limit")
	ErrTooManyVoices       = errors.New("too many voices in comparison")
	ErrTooFewVoices        = errors.New("comparison requires at least two voices")
)
