package processor

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/snosratiershad/avasho-go/avasho"
	"github.com/snosratiershad/avasho-go/redis"
)

// MockSynthesizer implements Synthesizer for local tests.
// Unset results fall back to a small canned response.
type MockSynthesizer struct {
	ShortResult *avasho.ShortSpeechResult
	LongResult  *avasho.LongSpeechResult
	Err         error

	mu         sync.Mutex
	ShortCalls []avasho.ShortSpeechRequest
	LongCalls  []avasho.LongSpeechRequest
}

func (m *MockSynthesizer) SynthesizeShort(ctx context.Context, req avasho.ShortSpeechRequest) (*avasho.ShortSpeechResult, error) {
	log.Debug().Str("text", req.Text).Msg("MOCK: short speech synthesis")

	m.mu.Lock()
	m.ShortCalls = append(m.ShortCalls, req)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.ShortResult != nil {
		return m.ShortResult, nil
	}

	audio := "SUQzBA=="
	fileURL := "https://mock-gateway.local/audio.mp3"
	return &avasho.ShortSpeechResult{
		Base64Audio: &audio,
		FileURL:     &fileURL,
	}, nil
}

func (m *MockSynthesizer) SynthesizeLong(ctx context.Context, req avasho.LongSpeechRequest) (*avasho.LongSpeechResult, error) {
	log.Debug().Int("text_length", len(req.Text)).Msg("MOCK: long speech synthesis")

	m.mu.Lock()
	m.LongCalls = append(m.LongCalls, req)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.LongResult != nil {
		return m.LongResult, nil
	}

	return &avasho.LongSpeechResult{
		EstimatedProcessTimeSeconds: 30,
		JobToken:                    "mock-job-token",
	}, nil
}

// MockAudioArchive implements AudioArchive and keeps uploads in memory.
type MockAudioArchive struct {
	Err error

	mu      sync.Mutex
	Uploads map[string][]byte
}

func (m *MockAudioArchive) UploadAudio(ctx context.Context, audioData []byte, speaker string) (string, error) {
	log.Debug().Str("speaker", speaker).Int("size", len(audioData)).Msg("MOCK: archiving audio")

	if m.Err != nil {
		return "", m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Uploads == nil {
		m.Uploads = make(map[string][]byte)
	}
	url := "https://mock-archive.local/audio/" + speaker + ".mp3"
	m.Uploads[url] = audioData

	return url, nil
}

// MockJobStore implements JobStore in memory.
type MockJobStore struct {
	SaveErr error

	mu   sync.Mutex
	jobs map[string]redis.Job
}

func NewMockJobStore() *MockJobStore {
	return &MockJobStore{
		jobs: make(map[string]redis.Job),
	}
}

func (m *MockJobStore) SaveJob(ctx context.Context, job redis.Job) error {
	log.Debug().Str("job_token", job.Token).Msg("MOCK: saving job")

	if m.SaveErr != nil {
		return m.SaveErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[job.Token] = job

	return nil
}

func (m *MockJobStore) GetJob(ctx context.Context, token string) (*redis.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[token]
	if !ok {
		return nil, redis.ErrJobNotFound
	}
	return &job, nil
}

func (m *MockJobStore) ListJobs(ctx context.Context) ([]redis.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	jobs := make([]redis.Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].SubmittedAt.After(jobs[j].SubmittedAt)
	})

	return jobs, nil
}

func (m *MockJobStore) DeleteJob(ctx context.Context, token string) error {
	log.Debug().Str("job_token", token).Msg("MOCK: deleting job")

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.jobs[token]; !ok {
		return redis.ErrJobNotFound
	}
	delete(m.jobs, token)

	return nil
}
