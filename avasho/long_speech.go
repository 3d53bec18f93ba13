package avasho

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/snosratiershad/avasho-go/metrics"
)

// SynthesizeLong submits text for background synthesis. The gateway answers with a job token
// and an estimate of how long processing will take; fetching the audio is done separately
// with the token.
func (c *Client) SynthesizeLong(ctx context.Context, req LongSpeechRequest) (*LongSpeechResult, error) {
	if err := validateVoice(req.Speaker, req.Speed); err != nil {
		metrics.GatewayErrors.WithLabelValues(LongSpeechRoute, "invalid").Inc()
		return nil, err
	}

	log.Info().
		Int("text_length", utf8.RuneCountInString(req.Text)).
		Str("speaker", req.Speaker.String()).
		Int("speed", req.Speed).
		Msg("Submitting long speech synthesis")

	payload := longSpeechPayload{
		Data:    req.Text,
		Speaker: int(req.Speaker),
		Speed:   req.Speed,
	}

	var resp envelope[longSpeechData]
	raw, err := c.post(ctx, LongSpeechRoute, payload, &resp)
	if err != nil {
		return nil, err
	}

	result, err := parseLongSpeech(resp.inner())
	if err != nil {
		metrics.GatewayErrors.WithLabelValues(LongSpeechRoute, "protocol").Inc()
		var protocolErr ProtocolError
		if errors.As(err, &protocolErr) {
			protocolErr.Body = string(raw)
			return nil, protocolErr
		}
		return nil, err
	}

	log.Info().
		Str("job_token", result.JobToken).
		Int("estimated_seconds", result.EstimatedProcessTimeSeconds).
		Msg("Long speech job accepted")

	return result, nil
}

func parseLongSpeech(data *longSpeechData) (*LongSpeechResult, error) {
	if data == nil {
		return nil, ProtocolError{Reason: "response has no data.data object"}
	}
	if data.Token == nil || *data.Token == "" {
		return nil, ProtocolError{Reason: "response has no job token"}
	}
	if data.EstimatedProcessTime == nil {
		return nil, ProtocolError{Reason: "response has no estimated process time"}
	}

	seconds, err := parseEstimatedProcessTime(*data.EstimatedProcessTime)
	if err != nil {
		return nil, err
	}

	return &LongSpeechResult{
		EstimatedProcessTimeSeconds: seconds,
		JobToken:                    *data.Token,
	}, nil
}

// parseEstimatedProcessTime reads the integer before the first space, e.g. "30 seconds" -> 30.
func parseEstimatedProcessTime(value string) (int, error) {
	head, _, _ := strings.Cut(strings.TrimSpace(value), " ")

	seconds, err := strconv.Atoi(head)
	if err != nil || seconds < 0 {
		return 0, ProtocolError{Reason: fmt.Sprintf("unparseable estimated process time %q", value)}
	}

	return seconds, nil
}
