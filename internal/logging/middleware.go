// ABOUTME: HTTP request logging middleware.
// ABOUTME: Captures method, path, status, duration and bodies, then records them and writes an access log line.

package logging

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/2389/realty/internal/auth"
	"github.com/2389/realty/internal/logger"
	"github.com/2389/realty/internal/store"
	"github.com/sirupsen/logrus"
)

const maxBodySize = 10 * 1024 // 10KB limit for body capture

// Recorder persists request logs. *store.Store satisfies it.
type Recorder interface {
	LogRequest(log *store.RequestLog) error
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
	body       *bytes.Buffer
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.statusCode = http.StatusOK
		rw.written = true
	}
	// Capture response body (up to maxBodySize)
	if rw.body.Len() < maxBodySize {
		toCopy := len(b)
		if rw.body.Len()+toCopy > maxBodySize {
			toCopy = maxBodySize - rw.body.Len()
		}
		rw.body.Write(b[:toCopy])
	}
	return rw.ResponseWriter.Write(b)
}

// Middleware logs every request outside the admin console and health check.
func Middleware(rec Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthz" || r.URL.Path == "/admin" || strings.HasPrefix(r.URL.Path, "/admin/") {
				next.ServeHTTP(w, r)
				return
			}

			// Capture the head of the request body, then hand the handler
			// the captured bytes followed by whatever was not read.
			var requestBody string
			if r.Body != nil {
				head, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
				if err == nil {
					requestBody = string(head)
					r.Body = readCloser{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}
				}
			}

			start := time.Now()
			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     200,
				body:           &bytes.Buffer{},
			}

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)

			ip := r.RemoteAddr
			if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
				ip = strings.TrimSpace(strings.Split(forwarded, ",")[0])
			}

			entry := &store.RequestLog{
				Timestamp:    start,
				Resource:     ResourceFromPath(r.URL.Path),
				Method:       r.Method,
				Path:         r.URL.Path,
				StatusCode:   wrapped.statusCode,
				DurationMs:   int(duration.Milliseconds()),
				UserID:       auth.UserFromContext(r.Context()),
				IPAddress:    ip,
				UserAgent:    r.Header.Get("User-Agent"),
				RequestBody:  requestBody,
				ResponseBody: wrapped.body.String(),
			}
			if entry.StatusCode >= 400 {
				entry.Error = http.StatusText(entry.StatusCode)
			}

			logger.Log.WithFields(logrus.Fields{
				"method":   entry.Method,
				"path":     entry.Path,
				"status":   entry.StatusCode,
				"duration": duration.String(),
				"user":     entry.UserID,
			}).Info("request")

			// Fire and forget
			go func() {
				if err := rec.LogRequest(entry); err != nil {
					logger.Log.WithError(err).Warn("failed to record request log")
				}
			}()
		})
	}
}

type readCloser struct {
	io.Reader
	io.Closer
}
