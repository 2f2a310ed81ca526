package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"ca-backend/pkg/utils"
)

// PanicRecovery turns a handler panic into a 500 instead of killing the
// connection. The stack goes to the log, never to the client.
func PanicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[API] Panic on %s %s: %v\n%s", r.Method, r.URL.Path, err, debug.Stack())
				utils.Error(w, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
