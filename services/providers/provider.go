package providers

import "context"

// Provider defines the interface that all lyrics providers must implement.
// A provider fully encapsulates its transport, query normalization mode, and
// extraction strategy behind one uniform fetch call.
type Provider interface {
	// Name returns the provider's identifier (e.g., "lrclib", "azlyrics", "genius")
	Name() string

	// Fetch resolves lyrics for the given artist and title.
	//
	// Expected failures (nothing found, credential missing, upstream layout
	// change, transport trouble) come back as a tagged Outcome, never as a
	// panic or a Go error: "not found" is a normal branch of control flow
	// here, and the kinds drive different resolver behavior.
	Fetch(ctx context.Context, artist, title string) Outcome
}

// OutcomeKind classifies a single provider invocation.
type OutcomeKind int

const (
	// OutcomeSuccess means the provider produced a usable Result.
	OutcomeSuccess OutcomeKind = iota

	// OutcomeNotFound means the content is genuinely absent upstream.
	// This is the expected "try the next provider" signal.
	OutcomeNotFound

	// OutcomeAuthMissing means the provider's credential is not configured.
	// Operator misconfiguration; logged distinctly, chain continues.
	OutcomeAuthMissing

	// OutcomeNetworkError means the transport failed (timeout, connection
	// refused, unexpected status). Transient; chain continues.
	OutcomeNetworkError

	// OutcomeParseError means the upstream responded but its page structure
	// did not match any known extraction pattern. Worth surfacing in logs
	// since it usually means the site changed; chain continues.
	OutcomeParseError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeAuthMissing:
		return "auth_missing"
	case OutcomeNetworkError:
		return "network_error"
	case OutcomeParseError:
		return "parse_error"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of one provider invocation. Result is non-nil
// only for OutcomeSuccess; Err carries diagnostic detail for the failure
// kinds that have any.
type Outcome struct {
	Kind   OutcomeKind
	Result *Result
	Err    error
}

// Success wraps a result in a successful outcome.
func Success(r *Result) Outcome {
	return Outcome{Kind: OutcomeSuccess, Result: r}
}

// NotFound reports content genuinely absent upstream.
func NotFound() Outcome {
	return Outcome{Kind: OutcomeNotFound}
}

// AuthMissing reports a missing provider credential.
func AuthMissing(err error) Outcome {
	return Outcome{Kind: OutcomeAuthMissing, Err: err}
}

// NetworkError reports a transport-level failure.
func NetworkError(err error) Outcome {
	return Outcome{Kind: OutcomeNetworkError, Err: err}
}

// ParseError reports an extraction/compatibility failure.
func ParseError(err error) Outcome {
	return Outcome{Kind: OutcomeParseError, Err: err}
}
