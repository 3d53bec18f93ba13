package processor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/snosratiershad/avasho-go/redis"
)

func (sp *SpeechProcessor) storeJob(ctx context.Context, job redis.Job) error {
	if err := sp.jobStore.SaveJob(ctx, job); err != nil {
		log.Error().
			Err(err).
			Str("job_token", job.Token).
			Msg("Error storing long speech job")
		return fmt.Errorf("failed to store job: %w", err)
	}
	return nil
}

func (sp *SpeechProcessor) getJob(ctx context.Context, token string) (*redis.Job, error) {
	if sp.jobStore == nil {
		return nil, ErrNoJobStore
	}
	return sp.jobStore.GetJob(ctx, token)
}

func (sp *SpeechProcessor) deleteJob(ctx context.Context, token string) error {
	if sp.jobStore == nil {
		return ErrNoJobStore
	}
	if err := sp.jobStore.DeleteJob(ctx, token); err != nil {
		return err
	}
	log.Info().Str("job_token", token).Msg("Long speech job deleted")
	return nil
}
