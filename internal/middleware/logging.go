package middleware

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	handlers "autoClassifieds/internal/handler"
	"autoClassifieds/internal/models"
)

// StatusRecorder receives the status code of every response.
type StatusRecorder interface {
	RecordHTTPStatus(statusCode int)
}

type statusWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if !sw.written {
		sw.statusCode = code
		sw.written = true
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.written {
		sw.statusCode = http.StatusOK
		sw.written = true
	}
	return sw.ResponseWriter.Write(b)
}

// requestState is shared by the middlewares of one request. Inner handlers see
// a derived request, so values they learn are written back here.
type requestState struct {
	identity models.Identity
}

type requestStateKey struct{}

func stateFromContext(ctx context.Context) *requestState {
	state, _ := ctx.Value(requestStateKey{}).(*requestState)
	return state
}

// Logging logs every request and reports its status to recorder when set.
func Logging(recorder StatusRecorder) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
			state := &requestState{}

			next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), requestStateKey{}, state)))

			level := zerolog.InfoLevel
			if sw.statusCode >= 500 {
				level = zerolog.ErrorLevel
			} else if sw.statusCode >= 400 {
				level = zerolog.WarnLevel
			}

			event := log.WithLevel(level).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", sw.statusCode).
				Dur("duration", time.Since(start)).
				Str("remote_addr", r.RemoteAddr)

			if state.identity.Authenticated() {
				event = event.Str("account_id", state.identity.AccountID)
			}

			event.Msg("http request")

			if recorder != nil {
				recorder.RecordHTTPStatus(sw.statusCode)
			}
		})
	}
}

// Recovery turns a panic into a JSON 500 response. It runs inside Logging so
// the failed request is still logged and counted.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				handlers.WriteError(w, fmt.Errorf("panic: %v: %w", rec, models.ErrInternal))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
