package processor

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/snosratiershad/avasho-go/avasho"
	"github.com/snosratiershad/avasho-go/metrics"
	"github.com/snosratiershad/avasho-go/redis"
)

var ErrNoJobStore = errors.New("job store is not configured")

type SpeechProcessor struct {
	synthesizer Synthesizer
	archive     AudioArchive
	jobStore    JobStore
	now         func() time.Time
}

// NewSpeechProcessor wires the gateway client to the optional archive and job store.
// archive and jobStore may be nil.
func NewSpeechProcessor(synthesizer Synthesizer, archive AudioArchive, jobStore JobStore) *SpeechProcessor {
	return &SpeechProcessor{
		synthesizer: synthesizer,
		archive:     archive,
		jobStore:    jobStore,
		now:         time.Now,
	}
}

// NewLocalSpeechProcessor wires the in-memory mocks in place of the gateway, S3 and Redis.
func NewLocalSpeechProcessor() *SpeechProcessor {
	return NewSpeechProcessor(&MockSynthesizer{}, &MockAudioArchive{}, NewMockJobStore())
}

func (sp *SpeechProcessor) ArchiveEnabled() bool {
	return sp.archive != nil
}

func (sp *SpeechProcessor) JobsEnabled() bool {
	return sp.jobStore != nil
}

// ProcessShort synthesizes req and, when an archive is configured, uploads the returned audio.
// Archive failures are logged and leave ArchiveURL empty; they never fail the synthesis.
func (sp *SpeechProcessor) ProcessShort(ctx context.Context, req avasho.ShortSpeechRequest) (*ShortSpeechOutcome, error) {
	result, err := sp.synthesizer.SynthesizeShort(ctx, req)
	if err != nil {
		return nil, err
	}

	outcome := &ShortSpeechOutcome{ShortSpeechResult: result}

	if sp.archive == nil || result.Base64Audio == nil || *result.Base64Audio == "" {
		return outcome, nil
	}

	archiveURL, err := sp.archiveAudio(ctx, *result.Base64Audio, req.Speaker)
	if err != nil {
		metrics.ArchiveUploads.WithLabelValues("failed").Inc()
		log.Warn().
			Err(err).
			Str("speaker", req.Speaker.String()).
			Msg("Failed to archive synthesized audio")
		return outcome, nil
	}

	metrics.ArchiveUploads.WithLabelValues("ok").Inc()
	outcome.ArchiveURL = &archiveURL

	return outcome, nil
}

func (sp *SpeechProcessor) archiveAudio(ctx context.Context, encoded string, speaker avasho.Speaker) (string, error) {
	audioData, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64 audio: %w", err)
	}

	return sp.archive.UploadAudio(ctx, audioData, speaker.String())
}

// ProcessLong submits req and records the resulting job. A job that cannot be stored is
// reported as an error, since its token would otherwise be lost to later status queries.
func (sp *SpeechProcessor) ProcessLong(ctx context.Context, req avasho.LongSpeechRequest) (*redis.Job, error) {
	result, err := sp.synthesizer.SynthesizeLong(ctx, req)
	if err != nil {
		return nil, err
	}

	metrics.JobsSubmitted.Inc()

	submittedAt := sp.now().UTC()
	job := redis.Job{
		Token:                   result.JobToken,
		Speaker:                 req.Speaker.String(),
		Speed:                   req.Speed,
		TextLength:              utf8.RuneCountInString(req.Text),
		EstimatedProcessSeconds: result.EstimatedProcessTimeSeconds,
		SubmittedAt:             submittedAt,
		ReadyAt:                 submittedAt.Add(result.EstimatedDuration()),
	}

	if sp.jobStore == nil {
		return &job, nil
	}

	if err := sp.storeJob(ctx, job); err != nil {
		return &job, err
	}

	return &job, nil
}

func (sp *SpeechProcessor) JobStatus(ctx context.Context, token string) (*JobStatus, error) {
	job, err := sp.getJob(ctx, token)
	if err != nil {
		return nil, err
	}

	return sp.statusOf(*job), nil
}

// DeleteJob forgets a tracked job. The gateway side of the job is not affected.
func (sp *SpeechProcessor) DeleteJob(ctx context.Context, token string) error {
	return sp.deleteJob(ctx, token)
}

func (sp *SpeechProcessor) ListJobs(ctx context.Context) ([]JobStatus, error) {
	if sp.jobStore == nil {
		return nil, ErrNoJobStore
	}

	jobs, err := sp.jobStore.ListJobs(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]JobStatus, 0, len(jobs))
	for _, job := range jobs {
		statuses = append(statuses, *sp.statusOf(job))
	}

	return statuses, nil
}

func (sp *SpeechProcessor) statusOf(job redis.Job) *JobStatus {
	remaining := job.ReadyAt.Sub(sp.now())
	if remaining < 0 {
		remaining = 0
	}

	return &JobStatus{
		Job:              job,
		Ready:            remaining == 0,
		RemainingSeconds: int(math.Ceil(remaining.Seconds())),
	}
}
