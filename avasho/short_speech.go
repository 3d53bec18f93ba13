package avasho

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/snosratiershad/avasho-go/metrics"
)

// SynthesizeShort converts up to MaxShortTextLength characters of text to speech in a single
// request. Arguments are validated before anything is sent.
//
// Fields the gateway leaves out stay nil in the result. When req.WantFilePath is set, a bare
// file path returned by the gateway is turned into an https URL (see ShortSpeechResult).
func (c *Client) SynthesizeShort(ctx context.Context, req ShortSpeechRequest) (*ShortSpeechResult, error) {
	if err := validateShort(req); err != nil {
		metrics.GatewayErrors.WithLabelValues(ShortSpeechRoute, "invalid").Inc()
		return nil, err
	}

	log.Info().
		Int("text_length", utf8.RuneCountInString(req.Text)).
		Str("speaker", req.Speaker.String()).
		Int("speed", req.Speed).
		Msg("Requesting short speech synthesis")

	payload := shortSpeechPayload{
		Data:      req.Text,
		FilePath:  flag(req.WantFilePath),
		Base64:    flag(req.WantBase64),
		Checksum:  flag(req.WantChecksum),
		Timestamp: flag(req.WantTimestamps),
		Speaker:   strconv.Itoa(int(req.Speaker)),
		Speed:     strconv.Itoa(req.Speed),
	}

	var resp envelope[shortSpeechData]
	raw, err := c.post(ctx, ShortSpeechRoute, payload, &resp)
	if err != nil {
		return nil, err
	}

	data := resp.inner()
	if data == nil {
		metrics.GatewayErrors.WithLabelValues(ShortSpeechRoute, "protocol").Inc()
		return nil, ProtocolError{Reason: "response has no data.data object", Body: string(raw)}
	}

	result := &ShortSpeechResult{
		Base64Audio: data.Base64,
		Checksum:    data.Checksum,
		FileURL:     data.FilePath,
		Timestamps:  data.Timestamps,
	}

	if req.WantFilePath && data.FilePath != nil {
		fileURL := toFileURL(*data.FilePath)
		result.FileURL = &fileURL
	}

	log.Info().
		Bool("has_audio", result.Base64Audio != nil).
		Bool("has_file_url", result.FileURL != nil).
		Int("timestamp_count", len(result.Timestamps)).
		Msg("Short speech synthesis completed")

	return result, nil
}

func validateShort(req ShortSpeechRequest) error {
	if n := utf8.RuneCountInString(req.Text); n > MaxShortTextLength {
		return InvalidArgumentError{
			Field:  "text",
			Reason: fmt.Sprintf("short speech allows at most %d characters, got %d", MaxShortTextLength, n),
		}
	}
	return validateVoice(req.Speaker, req.Speed)
}

func validateVoice(speaker Speaker, speed int) error {
	if speed <= 0 {
		return InvalidArgumentError{
			Field:  "speed",
			Reason: fmt.Sprintf("must be a positive number, got %d", speed),
		}
	}
	if !speaker.Valid() {
		return InvalidArgumentError{
			Field:  "speaker",
			Reason: fmt.Sprintf("unknown speaker code %d", int(speaker)),
		}
	}
	return nil
}

// toFileURL prefixes a scheme-less host/path with https://.
func toFileURL(filePath string) string {
	if filePath == "" {
		return filePath
	}
	lower := strings.ToLower(filePath)
	if strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") {
		return filePath
	}
	return "https://" + strings.TrimPrefix(filePath, "//")
}
