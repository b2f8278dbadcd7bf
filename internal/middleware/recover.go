package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"wildlife-sightings/internal/platform/logger"
)

// Recover reemplaza a chimw.Recoverer: loguea el panic con el logger del
// request y responde 500 en texto plano, igual que el resto de errores internos.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContext(r.Context()).Error("panic recovered",
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())),
			)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}
