package processor

import (
	"github.com/snosratiershad/avasho-go/avasho"
	"github.com/snosratiershad/avasho-go/redis"
)

// ShortSpeechOutcome is the gateway result plus the archive location of its audio, if any.
type ShortSpeechOutcome struct {
	*avasho.ShortSpeechResult
	ArchiveURL *string `json:"archive_url,omitempty"`
}

// JobStatus describes a stored job against its estimated completion time.
// Ready is an estimate only; the gateway is the authority on job state.
type JobStatus struct {
	redis.Job
	Ready            bool `json:"ready"`
	RemainingSeconds int  `json:"remaining_seconds"`
}
