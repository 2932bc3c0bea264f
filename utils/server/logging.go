package server

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/processforge/bpmn-architect/utils/config"
)

// logger is a custom logger for HTTP requests, shared across the package
var logger = log.New(os.Stdout, "", log.LstdFlags)

// responseWriter captures the status code and bytes written for logging
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int
}

func (w *responseWriter) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) Write(data []byte) (int, error) {
	n, err := w.ResponseWriter.Write(data)
	w.written += n
	return n, err
}

func logRequest(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		config.VerboseLog("Incoming request: %s %s", r.Method, r.URL.String())
		config.DebugLog("Request from %s, content length %d", r.RemoteAddr, r.ContentLength)

		handler(wrapped, r)

		duration := time.Since(start)

		if wrapped.statusCode >= 400 {
			config.DebugLog("Error response: status=%d path=%s duration=%v",
				wrapped.statusCode, r.URL.Path, duration)
		}

		logger.Printf("Request: method=%s path=%s status=%d bytes=%d duration=%v",
			r.Method, r.URL.Path, wrapped.statusCode, wrapped.written, duration)
	}
}
