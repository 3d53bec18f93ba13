package processor

import (
	"context"

	"github.com/snosratiershad/avasho-go/avasho"
	"github.com/snosratiershad/avasho-go/redis"
)

// Synthesizer is the subset of avasho.Client used by the processor.
type Synthesizer interface {
	SynthesizeShort(ctx context.Context, req avasho.ShortSpeechRequest) (*avasho.ShortSpeechResult, error)
	SynthesizeLong(ctx context.Context, req avasho.LongSpeechRequest) (*avasho.LongSpeechResult, error)
}

// AudioArchive stores decoded audio and returns where it can be fetched.
type AudioArchive interface {
	UploadAudio(ctx context.Context, audioData []byte, speaker string) (string, error)
}

// JobStore keeps track of submitted long-speech jobs.
type JobStore interface {
	SaveJob(ctx context.Context, job redis.Job) error
	GetJob(ctx context.Context, token string) (*redis.Job, error)
	ListJobs(ctx context.Context) ([]redis.Job, error)
	DeleteJob(ctx context.Context, token string) error
}
