package logcolors

// ANSI color codes for log prefixes
const (
	Reset  = "\033[0m"
	Green  = "\033[32m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"

	// Bright variants for more color variety
	BrightGreen   = "\033[92m"
	BrightBlue    = "\033[94m"
	BrightMagenta = "\033[95m"
	BrightCyan    = "\033[96m"

	Red       = "\033[31m"
	BrightRed = "\033[91m"
)

// Cache-related log prefixes
const (
	LogCacheInit    = Blue + "[Cache:Init]" + Reset
	LogCache        = Blue + "[Cache]" + Reset
	LogCacheBackup  = Blue + "[Cache:Backup]" + Reset
	LogCacheClear   = Blue + "[Cache:Clear]" + Reset
	LogCacheLyrics  = Green + "[Cache:Lyrics]" + Reset
)

// Resolution chain log prefixes
const (
	LogResolve = BrightGreen + "[Resolve]" + Reset
	LogSearch  = BrightCyan + "[Search]" + Reset
	LogLyrics  = Green + "[Lyrics]" + Reset
	LogScrape  = BrightMagenta + "[Scrape]" + Reset
)

// Rate limiting log prefixes
const (
	LogRateLimit = Purple + "[RateLimit]" + Reset
)

// CircuitBreakerPrefix returns a colored circuit breaker prefix with the given name
func CircuitBreakerPrefix(name string) string {
	return BrightBlue + "[CircuitBreaker:" + name + "]" + Reset
}

// ProviderPrefix returns a colored prefix for a provider's log lines
func ProviderPrefix(name string) string {
	return BrightCyan + "[Provider:" + name + "]" + Reset
}
