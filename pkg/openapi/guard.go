package openapi

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/orchestrator"
)

// Guard checks each payload against the contract before passing it to next.
// Rejected payloads never reach next; the error wraps ErrPayloadRejected.
func Guard(contract *Contract, next orchestrator.Sink, logger *zap.Logger) orchestrator.Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return orchestrator.SinkFunc(func(ctx context.Context, payload model.Payload) error {
		if contract == nil {
			return fmt.Errorf("openapi: guard: contract is nil")
		}
		if err := contract.ValidatePayload(ctx, payload); err != nil {
			logger.Warn("payload rejected by contract", zap.Error(err))
			return err
		}
		if next == nil {
			return nil
		}
		return next.Send(ctx, payload)
	})
}
