package api

import (
	"context"
	"net/http"
	"time"

	"github.com/YuminosukeSato/scorecast/pkg/errors"
	"github.com/YuminosukeSato/scorecast/pkg/log"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request ID in requests and responses.
const RequestIDHeader = "X-Request-ID"

type middleware func(http.Handler) http.Handler

// chain wraps h so that mws[0] is the outermost handler.
func chain(h http.Handler, mws ...middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

type ctxKey struct{}

// RequestIDFrom returns the request ID stored by the server, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// recoverPanics turns a handler panic into a 500 JSON response.
func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w}
		err := errors.SafeExecute(r.Method+" "+r.URL.Path, func() error {
			next.ServeHTTP(rec, r)
			return nil
		})
		if err == nil {
			return
		}
		s.logger.Error("Handler panicked", err,
			log.MethodKey, r.Method,
			log.PathKey, r.URL.Path,
		)
		if !rec.wrote {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		}
	})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		s.logger.Info("HTTP request",
			log.RequestIDKey, RequestIDFrom(r.Context()),
			log.MethodKey, r.Method,
			log.PathKey, r.URL.Path,
			log.StatusKey, rec.Status(),
			log.RemoteAddrKey, r.RemoteAddr,
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		s.metrics.observeRequest(r.URL.Path, rec.Status())
	})
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wrote {
		r.status = code
		r.wrote = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if !r.wrote {
		r.status = http.StatusOK
		r.wrote = true
	}
	return r.ResponseWriter.Write(b)
}

// Status returns the written status, 200 when nothing was written.
func (r *statusRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
