package middleware

import (
	"net/http"
	"time"

	"github.com/0x0FACED/northwind/internal/pkg/httpcommon"
	"github.com/0x0FACED/zlog"
)

type LoggerMiddleware struct {
	log *zlog.ZerologLogger
}

func NewLoggerMiddleware(log *zlog.ZerologLogger) *LoggerMiddleware {
	return &LoggerMiddleware{
		log: log,
	}
}

func (m *LoggerMiddleware) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		queryParams := r.URL.Query()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logEvent := m.log.Info()
		if rec.status >= http.StatusInternalServerError {
			logEvent = m.log.Error()
		}

		logEvent = logEvent.
			Str("method", r.Method).
			Str("addr", r.RemoteAddr).
			Str("client_id", httpcommon.ClientIDFromRequest(r)).
			Str("request_uri", r.RequestURI).
			Int("status", rec.status).
			Int("bytes", rec.bytes).
			TimeDiff("duration(ms)", time.Now(), start)

		if len(queryParams) > 0 {
			logEvent = logEvent.Interface("query_params", queryParams)
		}

		logEvent.Msg("Request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}
