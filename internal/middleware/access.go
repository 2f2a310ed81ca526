package middleware

import (
	"context"
	"log"
	"net/http"

	"ca-backend/pkg/utils"
)

// ModuleChecker resolves whether a role may use a module or one of its
// features. The admin role is allowed implicitly by the implementation
// behind this interface.
type ModuleChecker interface {
	CheckModule(ctx context.Context, role, moduleKey string) (bool, error)
	CheckFeature(ctx context.Context, role, moduleKey, featureKey string) (bool, error)
}

type AccessMiddleware struct {
	checker ModuleChecker
}

func NewAccessMiddleware(checker ModuleChecker) *AccessMiddleware {
	return &AccessMiddleware{checker: checker}
}

// RequireModule gates a route subtree on a module grant for the
// authenticated user's role. Must run after Authenticate.
func (m *AccessMiddleware) RequireModule(moduleKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				utils.Error(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			allowed, err := m.checker.CheckModule(r.Context(), role, moduleKey)
			if err != nil {
				log.Printf("[Access] module check failed for role=%s module=%s: %v", role, moduleKey, err)
				utils.Error(w, http.StatusInternalServerError, "Access check failed")
				return
			}
			if !allowed {
				utils.Error(w, http.StatusForbidden, "You do not have access to this module")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireFeature gates a single route on a feature grant inside a module.
func (m *AccessMiddleware) RequireFeature(moduleKey, featureKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetRoleFromContext(r.Context())
			if !ok {
				utils.Error(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			allowed, err := m.checker.CheckFeature(r.Context(), role, moduleKey, featureKey)
			if err != nil {
				log.Printf("[Access] feature check failed for role=%s module=%s feature=%s: %v", role, moduleKey, featureKey, err)
				utils.Error(w, http.StatusInternalServerError, "Access check failed")
				return
			}
			if !allowed {
				utils.Error(w, http.StatusForbidden, "You do not have access to this feature")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
