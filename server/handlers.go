package server

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"github.com/snosratiershad/avasho-go/avasho"
)

func (s *Server) shortSpeechHandler(c fiber.Ctx) error {
	var body ShortSpeechBody
	if err := c.Bind().JSON(&body); err != nil {
		log.Error().Err(err).Msg("Error parsing short speech body")
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if strings.TrimSpace(body.Text) == "" {
		return badRequest(c, "text field is required")
	}

	speaker, err := s.resolveSpeaker(body.Speaker)
	if err != nil {
		return badRequest(c, err.Error())
	}

	req := avasho.NewShortSpeechRequest(body.Text)
	req.Speaker = speaker
	req.Speed = intOr(body.Speed, 1)
	req.WantFilePath = boolOr(body.FilePath, true)
	req.WantBase64 = boolOr(body.Base64, true)
	req.WantChecksum = boolOr(body.Checksum, true)
	req.WantTimestamps = boolOr(body.Timestamps, true)

	outcome, err := s.speechProcessor.ProcessShort(c.Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(outcome)
}

func (s *Server) longSpeechHandler(c fiber.Ctx) error {
	var body LongSpeechBody
	if err := c.Bind().JSON(&body); err != nil {
		log.Error().Err(err).Msg("Error parsing long speech body")
		return badRequest(c, "Invalid request body: "+err.Error())
	}

	if strings.TrimSpace(body.Text) == "" {
		return badRequest(c, "text field is required")
	}

	speaker, err := s.resolveSpeaker(body.Speaker)
	if err != nil {
		return badRequest(c, err.Error())
	}

	req := avasho.NewLongSpeechRequest(body.Text)
	req.Speaker = speaker
	req.Speed = intOr(body.Speed, 1)

	job, err := s.speechProcessor.ProcessLong(c.Context(), req)
	if err != nil {
		if job != nil {
			log.Error().Err(err).Str("job_token", job.Token).Msg("Long speech job accepted by gateway but not stored")
		}
		return writeError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(job)
}

func (s *Server) listJobsHandler(c fiber.Ctx) error {
	statuses, err := s.speechProcessor.ListJobs(c.Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(statuses)
}

func (s *Server) jobStatusHandler(c fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return badRequest(c, "token parameter is required")
	}

	status, err := s.speechProcessor.JobStatus(c.Context(), token)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(status)
}

func (s *Server) deleteJobHandler(c fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return badRequest(c, "token parameter is required")
	}

	if err := s.speechProcessor.DeleteJob(c.Context(), token); err != nil {
		return writeError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) speakersHandler(c fiber.Ctx) error {
	speakers := avasho.Speakers()
	infos := make([]SpeakerInfo, 0, len(speakers))
	for _, speaker := range speakers {
		infos = append(infos, SpeakerInfo{Name: speaker.String(), Code: int(speaker)})
	}

	return c.JSON(infos)
}

func (s *Server) healthCheckHandler(c fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "ok",
		Archive: s.speechProcessor.ArchiveEnabled(),
		Jobs:    s.speechProcessor.JobsEnabled(),
	})
}

func (s *Server) resolveSpeaker(value string) (avasho.Speaker, error) {
	if value == "" {
		return s.defaultSpeaker, nil
	}
	return avasho.ParseSpeaker(value)
}

func intOr(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
