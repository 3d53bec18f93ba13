package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) setupRoutes() {
	s.app.Post("/speech/short", s.shortSpeechHandler)
	s.app.Post("/speech/long", s.longSpeechHandler)
	s.app.Get("/speech/jobs", s.listJobsHandler)
	s.app.Get("/speech/jobs/:token", s.jobStatusHandler)
	s.app.Delete("/speech/jobs/:token", s.deleteJobHandler)
	s.app.Get("/speech/speakers", s.speakersHandler)

	s.app.Get("/schema/:name", s.schemaHandler)
	s.app.Get("/health", s.healthCheckHandler)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
