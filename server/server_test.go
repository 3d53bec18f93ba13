package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/snosratiershad/avasho-go/avasho"
	"github.com/snosratiershad/avasho-go/processor"
	"github.com/snosratiershad/avasho-go/redis"
	"github.com/stretchr/testify/require"
)

func newTestServer(synth *processor.MockSynthesizer, jobs processor.JobStore) *Server {
	return New(processor.NewSpeechProcessor(synth, nil, jobs), avasho.Garsha)
}

func doRequest(t *testing.T, s *Server, method, path, body string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, respBody
}

func decodeError(t *testing.T, body []byte) ErrorDetail {
	t.Helper()

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	return errResp.Error
}

func TestShortSpeechHandlerDefaults(t *testing.T) {
	synth := &processor.MockSynthesizer{}
	s := newTestServer(synth, nil)

	status, body := doRequest(t, s, http.MethodPost, "/speech/short", `{"text":"سلام","base64":false}`)
	require.Equal(t, http.StatusOK, status)

	require.Len(t, synth.ShortCalls, 1)
	req := synth.ShortCalls[0]
	require.Equal(t, "سلام", req.Text)
	require.Equal(t, avasho.Garsha, req.Speaker)
	require.Equal(t, 1, req.Speed)
	require.True(t, req.WantFilePath)
	require.False(t, req.WantBase64)
	require.True(t, req.WantChecksum)
	require.True(t, req.WantTimestamps)

	var outcome map[string]any
	require.NoError(t, json.Unmarshal(body, &outcome))
	require.Equal(t, "https://mock-gateway.local/audio.mp3", outcome["file_url"])
	require.NotContains(t, outcome, "archive_url")
}

func TestShortSpeechHandlerSpeakerAndSpeed(t *testing.T) {
	synth := &processor.MockSynthesizer{}
	s := newTestServer(synth, nil)

	status, _ := doRequest(t, s, http.MethodPost, "/speech/short", `{"text":"hi","speaker":"Poneh","speed":3}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, avasho.Poneh, synth.ShortCalls[0].Speaker)
	require.Equal(t, 3, synth.ShortCalls[0].Speed)
}

func TestShortSpeechHandlerBadInput(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"text":`},
		{name: "missing text", body: `{"speaker":"afra"}`},
		{name: "unknown speaker", body: `{"text":"hi","speaker":"nobody"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			synth := &processor.MockSynthesizer{}
			s := newTestServer(synth, nil)

			status, body := doRequest(t, s, http.MethodPost, "/speech/short", tc.body)
			require.Equal(t, http.StatusBadRequest, status)
			require.Equal(t, "INVALID_PARAMETER", decodeError(t, body).Code)
			require.Empty(t, synth.ShortCalls)
		})
	}
}

func TestShortSpeechHandlerErrorMapping(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		status   int
		code     string
		upstream int
	}{
		{name: "invalid argument", err: avasho.InvalidArgumentError{Field: "text", Reason: "too long"}, status: http.StatusBadRequest, code: "INVALID_PARAMETER"},
		{name: "gateway error", err: avasho.GatewayError{StatusCode: 500, Body: "boom"}, status: http.StatusBadGateway, code: "GATEWAY_ERROR", upstream: 500},
		{name: "protocol error", err: avasho.ProtocolError{Reason: "bad envelope"}, status: http.StatusBadGateway, code: "PROTOCOL_ERROR"},
		{name: "transport error", err: avasho.TransportError{Op: "send request", Err: errors.New("refused")}, status: http.StatusGatewayTimeout, code: "TRANSPORT_ERROR"},
		{name: "other error", err: errors.New("unexpected"), status: http.StatusInternalServerError, code: "INTERNAL_ERROR"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(&processor.MockSynthesizer{Err: tc.err}, nil)

			status, body := doRequest(t, s, http.MethodPost, "/speech/short", `{"text":"hi"}`)
			require.Equal(t, tc.status, status)

			detail := decodeError(t, body)
			require.Equal(t, tc.code, detail.Code)
			require.Equal(t, tc.upstream, detail.GatewayStatus)
		})
	}
}

func TestLongSpeechHandlerStoresJob(t *testing.T) {
	synth := &processor.MockSynthesizer{
		LongResult: &avasho.LongSpeechResult{EstimatedProcessTimeSeconds: 45, JobToken: "tok-123"},
	}
	store := processor.NewMockJobStore()
	s := newTestServer(synth, store)

	status, body := doRequest(t, s, http.MethodPost, "/speech/long", `{"text":"a long story","speaker":"2"}`)
	require.Equal(t, http.StatusAccepted, status)

	var job redis.Job
	require.NoError(t, json.Unmarshal(body, &job))
	require.Equal(t, "tok-123", job.Token)
	require.Equal(t, "garsha", job.Speaker)
	require.Equal(t, 45, job.EstimatedProcessSeconds)
	require.Equal(t, 45*time.Second, job.ReadyAt.Sub(job.SubmittedAt))

	status, body = doRequest(t, s, http.MethodGet, "/speech/jobs/tok-123", "")
	require.Equal(t, http.StatusOK, status)

	var jobStatus processor.JobStatus
	require.NoError(t, json.Unmarshal(body, &jobStatus))
	require.Equal(t, "tok-123", jobStatus.Token)
	require.False(t, jobStatus.Ready)

	status, body = doRequest(t, s, http.MethodGet, "/speech/jobs", "")
	require.Equal(t, http.StatusOK, status)

	var statuses []processor.JobStatus
	require.NoError(t, json.Unmarshal(body, &statuses))
	require.Len(t, statuses, 1)
}

func TestJobStatusHandlerErrors(t *testing.T) {
	s := newTestServer(&processor.MockSynthesizer{}, processor.NewMockJobStore())

	status, body := doRequest(t, s, http.MethodGet, "/speech/jobs/missing", "")
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "NOT_FOUND", decodeError(t, body).Code)

	s = newTestServer(&processor.MockSynthesizer{}, nil)

	status, body = doRequest(t, s, http.MethodGet, "/speech/jobs/any", "")
	require.Equal(t, http.StatusNotImplemented, status)
	require.Equal(t, "NOT_CONFIGURED", decodeError(t, body).Code)
}

func TestDeleteJobHandler(t *testing.T) {
	store := processor.NewMockJobStore()
	s := newTestServer(&processor.MockSynthesizer{}, store)

	status, _ := doRequest(t, s, http.MethodPost, "/speech/long", `{"text":"a long story"}`)
	require.Equal(t, http.StatusAccepted, status)

	status, _ = doRequest(t, s, http.MethodDelete, "/speech/jobs/mock-job-token", "")
	require.Equal(t, http.StatusNoContent, status)

	status, body := doRequest(t, s, http.MethodGet, "/speech/jobs/mock-job-token", "")
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "NOT_FOUND", decodeError(t, body).Code)

	status, body = doRequest(t, s, http.MethodDelete, "/speech/jobs/mock-job-token", "")
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "NOT_FOUND", decodeError(t, body).Code)

	s = newTestServer(&processor.MockSynthesizer{}, nil)

	status, body = doRequest(t, s, http.MethodDelete, "/speech/jobs/any", "")
	require.Equal(t, http.StatusNotImplemented, status)
	require.Equal(t, "NOT_CONFIGURED", decodeError(t, body).Code)
}

func TestSpeakersHandler(t *testing.T) {
	s := newTestServer(&processor.MockSynthesizer{}, nil)

	status, body := doRequest(t, s, http.MethodGet, "/speech/speakers", "")
	require.Equal(t, http.StatusOK, status)

	var speakers []SpeakerInfo
	require.NoError(t, json.Unmarshal(body, &speakers))
	require.Len(t, speakers, 6)
	require.Equal(t, SpeakerInfo{Name: "afra", Code: 1}, speakers[0])
	require.Equal(t, SpeakerInfo{Name: "bahar", Code: 6}, speakers[5])
}

func TestSchemaHandler(t *testing.T) {
	s := newTestServer(&processor.MockSynthesizer{}, nil)

	status, body := doRequest(t, s, http.MethodGet, "/schema/short", "")
	require.Equal(t, http.StatusOK, status)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(body, &schema))
	properties, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, properties, "text")
	require.Contains(t, properties, "timestamps")
	require.Contains(t, schema["required"], "text")

	speaker, ok := properties["speaker"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, speaker["enum"], "poneh")
	require.Contains(t, speaker["enum"], "2")

	status, _ = doRequest(t, s, http.MethodGet, "/schema/unknown", "")
	require.Equal(t, http.StatusNotFound, status)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(&processor.MockSynthesizer{}, processor.NewMockJobStore())

	status, body := doRequest(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, status)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	require.Equal(t, HealthResponse{Status: "ok", Archive: false, Jobs: true}, health)

	status, body = doRequest(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(body), "avasho_jobs_submitted_total")
}
