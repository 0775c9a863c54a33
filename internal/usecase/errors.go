package usecase

import (
	"context"

	"furniture-store/internal/apperror"
	"furniture-store/pkg/utils"

	"go.uber.org/zap"
)

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperror.Validation("validation failed", errs)
	}
	return nil
}

// storageFailure logs the cause with the request-scoped logger and returns a
// persistence error carrying a caller-safe message.
func storageFailure(ctx context.Context, log *zap.Logger, message string, err error) error {
	utils.LoggerFromContext(ctx, log).Error(message, zap.Error(err))
	return apperror.Persistence(message, err)
}
