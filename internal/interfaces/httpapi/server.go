package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tennis-roundrobin/internal/platform/logging"
)

// maxRequestBodyBytes bounds request bodies; a full 500-result import stays
// well below it.
const maxRequestBodyBytes = 1 << 20

func NewRouter(handler *Handler, logger *logging.Logger, corsAllowedOrigins []string) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerRosterRoutes(mux, handler)
	registerMatchRoutes(mux, handler)
	registerStandingsRoutes(mux, handler)

	var h http.Handler = http.MaxBytesHandler(mux, maxRequestBodyBytes)
	h = recoverPanic(logger, h)
	h = CORS(corsAllowedOrigins, h)
	h = RequestLogging(logger, h)
	return RequestTracing(h)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "path", r.URL.Path)
			writeInternalError(r.Context(), w)
		}()
		next.ServeHTTP(w, r)
	})
}
