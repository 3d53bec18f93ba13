package avasho

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Speaker is one of the gateway's fixed voices. It is sent on the wire as its integer code.
type Speaker int

const (
	Afra   Speaker = 1
	Garsha Speaker = 2
	Sara   Speaker = 3
	Dara   Speaker = 4
	Poneh  Speaker = 5
	Bahar  Speaker = 6
)

var speakerNames = map[Speaker]string{
	Afra:   "afra",
	Garsha: "garsha",
	Sara:   "sara",
	Dara:   "dara",
	Poneh:  "poneh",
	Bahar:  "bahar",
}

// Speakers returns every known speaker in code order.
func Speakers() []Speaker {
	return []Speaker{Afra, Garsha, Sara, Dara, Poneh, Bahar}
}

func (s Speaker) Valid() bool {
	_, ok := speakerNames[s]
	return ok
}

func (s Speaker) String() string {
	if name, ok := speakerNames[s]; ok {
		return name
	}
	return fmt.Sprintf("speaker(%d)", int(s))
}

// ParseSpeaker accepts a speaker name (case-insensitive) or its decimal code.
func ParseSpeaker(value string) (Speaker, error) {
	value = strings.ToLower(strings.TrimSpace(value))

	if code, err := strconv.Atoi(value); err == nil {
		if s := Speaker(code); s.Valid() {
			return s, nil
		}
		return 0, fmt.Errorf("unknown speaker code %d", code)
	}

	for s, name := range speakerNames {
		if name == value {
			return s, nil
		}
	}

	return 0, fmt.Errorf("unknown speaker %q", value)
}

// ShortSpeechRequest describes a synchronous synthesis of at most MaxShortTextLength characters.
// The Want* flags ask the gateway to include the matching field in its response.
type ShortSpeechRequest struct {
	Text           string
	WantFilePath   bool
	WantBase64     bool
	WantChecksum   bool
	WantTimestamps bool
	Speaker        Speaker
	Speed          int
}

// NewShortSpeechRequest returns a request with every response field enabled, Afra and speed 1.
func NewShortSpeechRequest(text string) ShortSpeechRequest {
	return ShortSpeechRequest{
		Text:           text,
		WantFilePath:   true,
		WantBase64:     true,
		WantChecksum:   true,
		WantTimestamps: true,
		Speaker:        Afra,
		Speed:          1,
	}
}

// LongSpeechRequest describes a background synthesis. There is no length limit.
type LongSpeechRequest struct {
	Text    string
	Speaker Speaker
	Speed   int
}

func NewLongSpeechRequest(text string) LongSpeechRequest {
	return LongSpeechRequest{
		Text:    text,
		Speaker: Afra,
		Speed:   1,
	}
}

// Timestamp marks where a piece of text is spoken in the synthesized audio.
type Timestamp struct {
	Text        string `json:"text"`
	BeginTimeMs int64  `json:"begin_time"`
	EndTimeMs   int64  `json:"end_time"`
}

// ShortSpeechResult holds the fields returned for a short synthesis.
// A nil field was absent from the gateway response; it is never replaced by a zero value.
// Timestamps is nil when absent and an empty, non-nil slice when the gateway sent [].
//
// FileURL policy: when the request asked for the file path and the gateway returned a bare
// host and path, FileURL is that value prefixed with "https://". Values that already carry an
// http or https scheme are kept as they are.
type ShortSpeechResult struct {
	Base64Audio *string     `json:"base64,omitempty"`
	Checksum    *string     `json:"checksum,omitempty"`
	FileURL     *string     `json:"file_url,omitempty"`
	Timestamps  []Timestamp `json:"timestamps"`
}

// LongSpeechResult is the gateway's acknowledgement of a long synthesis job.
// JobToken is used to poll the gateway's status endpoint.
type LongSpeechResult struct {
	EstimatedProcessTimeSeconds int    `json:"estimated_process_time_seconds"`
	JobToken                    string `json:"job_token"`
}

func (r LongSpeechResult) EstimatedDuration() time.Duration {
	return time.Duration(r.EstimatedProcessTimeSeconds) * time.Second
}

// shortSpeechPayload is the body of the short route. Every value is a string:
// flags are "1"/"0", speaker and speed are decimal.
type shortSpeechPayload struct {
	Data      string `json:"data"`
	FilePath  string `json:"filePath"`
	Base64    string `json:"base64"`
	Checksum  string `json:"checksum"`
	Timestamp string `json:"timestamp"`
	Speaker   string `json:"speaker"`
	Speed     string `json:"speed"`
}

// longSpeechPayload is the body of the long route. Speaker and speed are JSON numbers.
type longSpeechPayload struct {
	Data    string `json:"data"`
	Speaker int    `json:"speaker"`
	Speed   int    `json:"speed"`
}

// envelope matches the gateway's {"data": {"data": {...}}} response shape.
type envelope[T any] struct {
	Data *struct {
		Data *T `json:"data"`
	} `json:"data"`
}

func (e envelope[T]) inner() *T {
	if e.Data == nil {
		return nil
	}
	return e.Data.Data
}

type shortSpeechData struct {
	Base64     *string     `json:"base64"`
	Checksum   *string     `json:"checksum"`
	FilePath   *string     `json:"filePath"`
	Timestamps []Timestamp `json:"timestamps"`
}

type longSpeechData struct {
	EstimatedProcessTime *string `json:"estimatedProcessTime"`
	Token                *string `json:"token"`
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
