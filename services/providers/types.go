package providers

// SourceNone identifies the terminal "no provider succeeded" result.
const SourceNone = "none"

// Result is the standardized result from any lyrics provider.
//
// When Synced is true, Lyrics carries the raw timed-text blob exactly as the
// provider returned it; parsing into timed lines happens on the consuming
// side (lrc.Parse), not in the wire payload. When Synced is false, Lyrics is
// plain text — which for the terminal result is a human-readable not-found
// message rendered in place of content.
type Result struct {
	// Source is the identifier of the provider that produced these lyrics,
	// or SourceNone for the terminal result.
	Source string `json:"source"`

	// Synced indicates Lyrics is timed text with per-line timestamps.
	Synced bool `json:"synced"`

	// Lyrics is the raw timed-text blob or plain lyrics text.
	Lyrics string `json:"lyrics"`
}

// ProviderError represents an error from a provider with additional context
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Provider + ": " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a new ProviderError
func NewProviderError(provider, message string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Message:  message,
		Err:      err,
	}
}
