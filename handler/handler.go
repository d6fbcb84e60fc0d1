package handler

import (
	"catalog-service/dto"
	"catalog-service/service"
	"context"
	"encoding/json"
	"errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

type ServiceDependencies struct {
	CatalogService service.CatalogService
}

// TranscodeResultHandler applies one transcoding.completed message. Messages
// that can never succeed are logged and acked so they do not loop through
// the retry policy.
func TranscodeResultHandler(ctx context.Context, msg amqp.Delivery, deps ServiceDependencies) error {
	var result dto.TranscodeResultMessage
	if err := json.Unmarshal(msg.Body, &result); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("message_id", msg.MessageId).Msg("failed to unmarshal transcode result")
		return nil
	}

	zerolog.Ctx(ctx).Info().
		Str("job_id", result.JobId.String()).
		Str("status", result.Status).
		Msg("received transcode result")

	err := deps.CatalogService.CompleteTranscode(ctx, result)
	if errors.Is(err, service.ErrNonRetryable) {
		zerolog.Ctx(ctx).Warn().Err(err).Str("job_id", result.JobId.String()).Msg("dropping transcode result")
		return nil
	}
	return err
}
