package middleware

import (
	"context"
	"net/http"

	"furniture-store/internal/apperror"
	"furniture-store/pkg/utils"

	"go.uber.org/zap"
)

// Authorizer resolves an Authorization header value to a principal.
type Authorizer interface {
	Authorize(ctx context.Context, header string) (*utils.Principal, error)
}

// Authenticate rejects requests without a valid bearer token and stores the
// resolved principal in the request context.
func Authenticate(gate Authorizer, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := utils.LoggerFromContext(r.Context(), logger)

			principal, err := gate.Authorize(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				appErr := utils.ResponseAppError(w, err)
				if appErr.Kind == apperror.KindPersistence {
					log.Error("Authorization failed", zap.Error(appErr))
				} else {
					log.Debug("Request not authorized",
						zap.String("path", r.URL.Path),
						zap.String("reason", appErr.Message))
				}
				return
			}

			ctx := utils.SetPrincipalContext(r.Context(), principal)
			ctx = utils.WithLogger(ctx, log.With(zap.String("user_id", principal.UserID.String())))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
