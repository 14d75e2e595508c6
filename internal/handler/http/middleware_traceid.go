package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// traceIDHeader carries the request trace id in and out. Dashboard
// requests that already carry one (a retried record save, a batched
// catalog edit) keep it end to end.
const traceIDHeader = "X-Trace-ID"

// withTraceID attaches a trace id to every request. The incoming header
// value is reused when present; otherwise a fresh UUID is generated. The
// id is stamped on a child logger stored in the request context, so every
// catalog and record log line downstream carries the same trace_id field,
// and echoed back on the response.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(traceIDHeader)
		if traceID == "" {
			traceID = uuid.NewString()
		}

		l := h.logger.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("trace_id", traceID)
		})
		r = r.WithContext(l.WithContext(r.Context()))

		w.Header().Set(traceIDHeader, traceID)
		next.ServeHTTP(w, r)
	})
}
