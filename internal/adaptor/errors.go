package adaptor

import (
	"errors"
	"net/http"

	"furniture-store/internal/apperror"
	"furniture-store/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError writes the envelope for err. Storage failures were
// already logged with their cause by the service; here they are tagged with
// the operation that surfaced them.
func handleServiceError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error, operation string) {
	appErr := utils.ResponseAppError(w, err)

	l := utils.LoggerFromContext(r.Context(), log)
	switch appErr.Kind {
	case apperror.KindPersistence:
		l.Error("Request failed",
			zap.String("operation", operation),
			zap.Bool("retryable", appErr.Retryable),
			zap.Error(appErr))
	default:
		l.Debug("Request rejected",
			zap.String("operation", operation),
			zap.String("kind", string(appErr.Kind)),
			zap.String("reason", appErr.Message))
	}
}

func badBody(w http.ResponseWriter, err error) {
	msg := "invalid request body"
	if errors.Is(err, errEmptyBody) {
		msg = err.Error()
	}
	utils.ResponseBadRequest(w, msg, nil)
}
