package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// at most this much of a request body is read for the log
const maxLoggedBody = 2048

const redacted = "[redacted]"

var secretHeaders = []string{"Authorization", "Set-Cookie"}

type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *loggingResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *loggingResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

type replayBody struct {
	io.Reader
	io.Closer
}

// secretBody reports requests whose body carries passwords or security codes.
func secretBody(r *http.Request) bool {
	path := r.URL.Path
	return strings.HasPrefix(path, "/api/auth/") ||
		strings.HasPrefix(path, "/api/admin/") ||
		strings.HasSuffix(path, "/complete")
}

// peekBody returns the head of the request body and leaves the full body
// readable for the handler.
func peekBody(r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	head, err := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody))
	r.Body = replayBody{Reader: io.MultiReader(bytes.NewReader(head), r.Body), Closer: r.Body}
	return head, err
}

func loggedHeaders(h http.Header) http.Header {
	out := h.Clone()
	for _, name := range secretHeaders {
		if out.Get(name) != "" {
			out.Set(name, redacted)
		}
	}
	return out
}

// LogMiddleware logs every request with the answer status and the response
// headers. Request bodies are logged truncated unless they are compressed or
// carry credentials.
func LogMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			body := "-"
			switch {
			case secretBody(r):
				body = redacted
			case r.Header.Get("Content-Encoding") != "":
				body = "(" + r.Header.Get("Content-Encoding") + ")"
			default:
				head, err := peekBody(r)
				if err != nil {
					logger.Warnf("read request body: %v", err)
				}
				if len(head) > 0 {
					body = string(head)
				}
			}

			lw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lw, r)

			logger.Infof("method=%s uri=%s status=%d size=%d duration=%s body=%s outputheaders=%v",
				r.Method, r.RequestURI, lw.status, lw.size, time.Since(start), body, loggedHeaders(lw.Header()))
		})
	}
}
