package middleware

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"lyricsync/logcolors"
)

// ResponseRecorder wraps http.ResponseWriter to capture the status code and
// body size for access logging.
type ResponseRecorder struct {
	http.ResponseWriter
	StatusCode int
	BodySize   int
}

// NewResponseRecorder creates a recorder defaulting to 200 OK, since handlers
// that never call WriteHeader implicitly respond with 200.
func NewResponseRecorder(w http.ResponseWriter) *ResponseRecorder {
	return &ResponseRecorder{ResponseWriter: w, StatusCode: http.StatusOK}
}

func (r *ResponseRecorder) WriteHeader(statusCode int) {
	r.StatusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *ResponseRecorder) Write(data []byte) (int, error) {
	n, err := r.ResponseWriter.Write(data)
	r.BodySize += n
	return n, err
}

// getStatusColor maps a status code class to an ANSI color for log lines.
func getStatusColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return logcolors.Green
	case statusCode >= 300 && statusCode < 400:
		return logcolors.Cyan
	case statusCode >= 400 && statusCode < 500:
		return "\033[33m" // yellow
	case statusCode >= 500:
		return logcolors.Red
	default:
		return logcolors.Reset
	}
}

// LoggingMiddleware logs one line per request: method, path, status, size,
// and elapsed time.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := NewResponseRecorder(w)

		next.ServeHTTP(rec, r)

		log.Infof("%s %s %s%d%s %dB %s",
			r.Method,
			r.URL.RequestURI(),
			getStatusColor(rec.StatusCode),
			rec.StatusCode,
			logcolors.Reset,
			rec.BodySize,
			time.Since(start),
		)
	})
}
